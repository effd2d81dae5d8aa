// Package synth fabricates minimal PDF documents with form fields. It
// exists for the verification harness: round-trip tests need documents
// whose field dictionaries are known byte for byte, without depending on
// binary fixtures.
package synth

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// FieldSpec describes a single text form field to place in a generated
// document. Empty optional properties are omitted from the field
// dictionary entirely.
type FieldSpec struct {
	Name        string
	Tooltip     string
	MappingName string
	AltText     string
}

// FormPDFBytes assembles a one-page PDF carrying the given form fields
// in its AcroForm Fields array. Offsets in the cross-reference table are
// computed while the body is built so the output is a valid document.
//
// String values are written as literal strings, so callers should stick
// to printable ASCII; the PDF escape characters are handled here.
func FormPDFBytes(fields []FieldSpec) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	// Offsets indexed by object number; slot 0 is the free-list head.
	offsets := make([]int, 5+len(fields))

	// Object 1 - Catalog
	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<<\n/Type /Catalog\n/Pages 2 0 R\n/AcroForm 4 0 R\n>>\nendobj\n")

	// Object 2 - Pages
	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<<\n/Type /Pages\n/Kids [3 0 R]\n/Count 1\n>>\nendobj\n")

	// Object 3 - Page
	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<<\n/Type /Page\n/Parent 2 0 R\n/MediaBox [0 0 612 792]\n/Resources <<>>\n>>\nendobj\n")

	// Object 4 - AcroForm. Entries in the Fields array must be indirect
	// references, so the field dictionaries get their own objects below.
	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<<\n/Fields [")
	for i := range fields {
		fmt.Fprintf(&b, "%d 0 R ", 5+i)
	}
	b.WriteString("]\n>>\nendobj\n")

	// Objects 5..N - one per field
	for i, f := range fields {
		num := 5 + i
		offsets[num] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", num, fieldDict(f))
	}

	// Cross-reference table
	xrefStart := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(offsets))
	for _, offset := range offsets[1:] {
		fmt.Fprintf(&b, "%010d 00000 n \n", offset)
	}

	// Trailer
	fmt.Fprintf(&b, "trailer\n<<\n/Size %d\n/Root 1 0 R\n>>\nstartxref\n", len(offsets))
	fmt.Fprintf(&b, "%d\n", xrefStart)
	b.WriteString("%%EOF")

	return []byte(b.String())
}

// WriteFormPDF writes a generated form document to path.
func WriteFormPDF(path string, fields []FieldSpec) error {
	if err := os.WriteFile(path, FormPDFBytes(fields), 0o600); err != nil {
		return fmt.Errorf("failed to write generated PDF: %w", err)
	}
	return nil
}

// Rewrite parses the document and writes it back through pdfcpu,
// carrying the existing AcroForm over unchanged. This stands in for an
// independent processing pass that rebuilds the file.
func Rewrite(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF file: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close PDF file: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("failed to ensure page count: %w", err)
	}

	if err := api.WriteContextFile(ctx, path); err != nil {
		return fmt.Errorf("failed to rewrite PDF file: %w", err)
	}

	return nil
}

// fieldDict renders one text field dictionary, omitting optional
// entries whose values are empty.
func fieldDict(f FieldSpec) string {
	var b strings.Builder
	b.WriteString("<< /T (")
	b.WriteString(escapeString(f.Name))
	b.WriteString(") /FT /Tx")
	if f.Tooltip != "" {
		b.WriteString(" /TU (")
		b.WriteString(escapeString(f.Tooltip))
		b.WriteString(")")
	}
	if f.MappingName != "" {
		b.WriteString(" /TM (")
		b.WriteString(escapeString(f.MappingName))
		b.WriteString(")")
	}
	if f.AltText != "" {
		b.WriteString(" /Alt (")
		b.WriteString(escapeString(f.AltText))
		b.WriteString(")")
	}
	b.WriteString(" >> ")
	return b.String()
}

// escapeString escapes the characters with special meaning inside a PDF
// literal string.
func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
