package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/a11ytools/pdf-formtag/internal/pdf/synth"
)

func TestNewStats(t *testing.T) {
	maxFileSize := int64(2 * 1024 * 1024)
	stats := NewStats(maxFileSize)

	if stats == nil {
		t.Fatal("NewStats returned nil")
	}
	if stats.maxFileSize != maxFileSize {
		t.Errorf("expected maxFileSize=%d but got %d", maxFileSize, stats.maxFileSize)
	}
	if stats.validator == nil {
		t.Error("validator component should not be nil")
	}
}

func TestStats_GetFileStats(t *testing.T) {
	stats := NewStats(1024 * 1024)
	tempDir := t.TempDir()

	docPath := filepath.Join(tempDir, "form.pdf")
	if err := synth.WriteFormPDF(docPath, []synth.FieldSpec{{Name: "surname"}}); err != nil {
		t.Fatalf("failed to write form PDF: %v", err)
	}

	result, err := stats.GetFileStats(PDFStatsFileRequest{Path: docPath})
	if err != nil {
		t.Fatalf("GetFileStats failed: %v", err)
	}

	if result.Path != docPath {
		t.Errorf("expected Path=%s but got %s", docPath, result.Path)
	}
	if result.Size <= 0 {
		t.Errorf("expected positive Size, got %d", result.Size)
	}
	if result.Pages != 1 {
		t.Errorf("expected Pages=1 but got %d", result.Pages)
	}
	if result.ModifiedDate == "" {
		t.Error("expected ModifiedDate to be set")
	}
}

func TestStats_GetFileStats_Errors(t *testing.T) {
	stats := NewStats(1024 * 1024)
	tempDir := t.TempDir()

	notPDF := filepath.Join(tempDir, "plain.txt")
	if err := os.WriteFile(notPDF, []byte("just text"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{
			name: "empty path",
			path: "",
		},
		{
			name: "non-existent file",
			path: filepath.Join(tempDir, "missing.pdf"),
		},
		{
			name: "not a PDF",
			path: notPDF,
		},
		{
			name: "directory instead of file",
			path: tempDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := stats.GetFileStats(PDFStatsFileRequest{Path: tt.path}); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}
