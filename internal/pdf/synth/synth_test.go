package synth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, path string) *model.Context {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	require.NoError(t, err)
	require.NoError(t, ctx.EnsurePageCount())
	return ctx
}

func TestFormPDFBytesParses(t *testing.T) {
	tests := []struct {
		name   string
		fields []FieldSpec
	}{
		{
			name:   "no fields",
			fields: nil,
		},
		{
			name:   "single bare field",
			fields: []FieldSpec{{Name: "Field_1"}},
		},
		{
			name: "field with all properties",
			fields: []FieldSpec{{
				Name:        "Field_1",
				Tooltip:     "Enter your name",
				MappingName: "name_export",
				AltText:     "Name input",
			}},
		},
		{
			name: "multiple fields",
			fields: []FieldSpec{
				{Name: "first", Tooltip: "one"},
				{Name: "second", AltText: "two"},
			},
		},
		{
			name: "values needing escapes",
			fields: []FieldSpec{{
				Name:    "tricky",
				Tooltip: `contains (parens) and a \ backslash`,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.pdf")
			require.NoError(t, WriteFormPDF(path, tt.fields))

			ctx := parseDoc(t, path)

			pages := ctx.PageCount
			assert.Equal(t, 1, pages)
		})
	}
}

func TestFormPDFBytesFieldsAreIndirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, WriteFormPDF(path, []FieldSpec{
		{Name: "first", Tooltip: "one"},
		{Name: "second"},
	}))

	ctx := parseDoc(t, path)

	rootDict, err := ctx.Catalog()
	require.NoError(t, err)

	acroObj, found := rootDict.Find("AcroForm")
	require.True(t, found)
	acroDict, err := ctx.DereferenceDict(acroObj)
	require.NoError(t, err)
	require.NotNil(t, acroDict)

	fieldsObj, found := acroDict.Find("Fields")
	require.True(t, found)
	fields, err := ctx.DereferenceArray(fieldsObj)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	// Merge validation rejects field dictionaries placed inline in the
	// Fields array, so every entry must be an indirect reference.
	for _, entry := range fields {
		_, ok := entry.(types.IndirectRef)
		assert.True(t, ok, "Fields entry %v is not an indirect reference", entry)
	}
}

func TestRewriteKeepsDocumentParseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, WriteFormPDF(path, []FieldSpec{{Name: "Field_1", Tooltip: "hint"}}))

	require.NoError(t, Rewrite(path))

	// The rewritten file must still be a one-page document with the
	// AcroForm carried over.
	ctx := parseDoc(t, path)
	assert.Equal(t, 1, ctx.PageCount)

	rootDict, err := ctx.Catalog()
	require.NoError(t, err)
	_, found := rootDict.Find("AcroForm")
	assert.True(t, found)
}

func TestRewriteMissingFile(t *testing.T) {
	err := Rewrite(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with (parens)", `with \(parens\)`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeString(tt.in))
	}
}
