package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ytools/pdf-formtag/internal/pdf/formtag"
	"github.com/a11ytools/pdf-formtag/internal/pdf/synth"
)

func writeChunk(t *testing.T, dir, name string, fields []synth.FieldSpec) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, synth.WriteFormPDF(path, fields))
	return path
}

func TestProcessorMerge(t *testing.T) {
	processor := NewProcessor(false)
	dir := t.TempDir()

	first := writeChunk(t, dir, "first.pdf", []synth.FieldSpec{{Name: "a"}})
	second := writeChunk(t, dir, "second.pdf", []synth.FieldSpec{{Name: "b"}})
	output := filepath.Join(dir, "merged.pdf")

	require.NoError(t, processor.Merge([]string{first, second}, output))

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestProcessorMergeErrors(t *testing.T) {
	processor := NewProcessor(false)
	dir := t.TempDir()

	tests := []struct {
		name   string
		inputs []string
	}{
		{
			name:   "no inputs",
			inputs: nil,
		},
		{
			name:   "missing input",
			inputs: []string{filepath.Join(dir, "missing.pdf")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := processor.Merge(tt.inputs, filepath.Join(dir, "out.pdf"))
			require.Error(t, err)
		})
	}
}

func TestProcessorCompressNeverGrowsFile(t *testing.T) {
	processor := NewProcessor(false)
	dir := t.TempDir()

	path := writeChunk(t, dir, "doc.pdf", []synth.FieldSpec{
		{Name: "Field_1", Tooltip: "Enter your name", AltText: "Name input"},
	})

	info, err := os.Stat(path)
	require.NoError(t, err)
	sizeBefore := info.Size()

	finalSize, _, err := processor.Compress(path)
	require.NoError(t, err)

	// Whether the optimized copy was kept or not, the file on disk must
	// never be larger than it was.
	assert.LessOrEqual(t, finalSize, sizeBefore)
	onDisk, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, finalSize, onDisk.Size())

	// The sidecar file must be gone on every path.
	_, err = os.Stat(path + ".optimized")
	assert.True(t, os.IsNotExist(err))
}

func TestProcessorCompressMissingFile(t *testing.T) {
	processor := NewProcessor(false)

	_, _, err := processor.Compress(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
}

func TestProcessorProcessPreservesTags(t *testing.T) {
	processor := NewProcessor(false)
	dir := t.TempDir()

	first := writeChunk(t, dir, "chunk_1.pdf", []synth.FieldSpec{
		{Name: "name", Tooltip: "Enter your name", AltText: "Name input"},
	})
	second := writeChunk(t, dir, "chunk_2.pdf", []synth.FieldSpec{
		{Name: "email", Tooltip: "Enter your email", MappingName: "email_export"},
	})
	output := filepath.Join(dir, "merged.pdf")

	result, err := processor.Process([]string{first, second}, output)
	require.NoError(t, err)

	assert.Equal(t, output, result.OutputPath)
	assert.Equal(t, 2, result.InputCount)
	assert.Positive(t, result.TotalInputSize)
	assert.Positive(t, result.MergedSize)
	assert.Positive(t, result.FinalSize)
	assert.Equal(t, 2, result.FieldsRestored)

	tagger := formtag.NewTagger(false)
	tags, err := tagger.Extract(output)
	require.NoError(t, err)

	require.Contains(t, tags, "name")
	assert.Equal(t, "Enter your name", tags["name"].Tooltip)
	assert.Equal(t, "Name input", tags["name"].AltText)

	require.Contains(t, tags, "email")
	assert.Equal(t, "Enter your email", tags["email"].Tooltip)
	assert.Equal(t, "email_export", tags["email"].MappingName)
}

func TestProcessorProcessNoInputs(t *testing.T) {
	processor := NewProcessor(false)

	_, err := processor.Process(nil, filepath.Join(t.TempDir(), "out.pdf"))
	require.Error(t, err)
}

func TestProcessorProcessUntaggedInputs(t *testing.T) {
	processor := NewProcessor(false)
	dir := t.TempDir()

	first := writeChunk(t, dir, "a.pdf", nil)
	second := writeChunk(t, dir, "b.pdf", nil)
	output := filepath.Join(dir, "merged.pdf")

	result, err := processor.Process([]string{first, second}, output)
	require.NoError(t, err)
	assert.Zero(t, result.FieldsRestored)

	_, err = os.Stat(output)
	require.NoError(t, err)
}
