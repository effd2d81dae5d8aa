// Package formtag extracts and restores form field accessibility
// properties (tooltip, mapping name, alternate text) so they survive
// processing steps that rewrite a PDF.
package formtag

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FieldRecord holds the accessibility properties of a single form field.
// An optional property is carried only when the source field had a
// non-empty value for it; empty values are treated as absent.
type FieldRecord struct {
	FieldName   string `json:"field_name"`
	Tooltip     string `json:"tooltip,omitempty"`
	MappingName string `json:"mapping_name,omitempty"`
	AltText     string `json:"alt_text,omitempty"`
}

// HasTooltip reports whether the record carries a tooltip.
func (r FieldRecord) HasTooltip() bool { return r.Tooltip != "" }

// HasMappingName reports whether the record carries a mapping name.
func (r FieldRecord) HasMappingName() bool { return r.MappingName != "" }

// HasAltText reports whether the record carries alternate text.
func (r FieldRecord) HasAltText() bool { return r.AltText != "" }

// FieldTags maps field names to their accessibility records. It is the
// in-memory handoff between Extract and Restore and has no persistence
// format of its own.
type FieldTags map[string]FieldRecord

// Tagger reads and writes form field accessibility tags using pdfcpu.
type Tagger struct {
	debugMode bool
}

// NewTagger creates a new form tag extractor/restorer.
func NewTagger(debugMode bool) *Tagger {
	return &Tagger{
		debugMode: debugMode,
	}
}

// Extract walks the document's form field collection and returns one
// record per named field. A document without form fields, without an
// AcroForm dictionary, or that cannot be parsed at all yields an empty
// map: missing accessibility metadata is expected, not an error.
func (t *Tagger) Extract(filePath string) (FieldTags, error) {
	tags := FieldTags{}

	file, err := os.Open(filePath)
	if err != nil {
		if t.debugMode {
			fmt.Printf("Cannot open %s for tag extraction: %v\n", filePath, err)
		}
		return tags, nil
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		if t.debugMode {
			fmt.Printf("Cannot parse %s for tag extraction: %v\n", filePath, err)
		}
		return tags, nil
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return tags, nil
	}

	fields, err := formFields(ctx)
	if err != nil || fields == nil {
		if t.debugMode && err != nil {
			fmt.Printf("No usable form field collection in %s: %v\n", filePath, err)
		}
		return tags, nil
	}

	for _, fieldRef := range fields {
		fieldDict, err := ctx.DereferenceDict(fieldRef)
		if err != nil || fieldDict == nil {
			continue
		}

		name := textEntry(ctx, fieldDict, "T")
		if name == "" {
			// Unnamed fields have no stable key to match on later.
			continue
		}

		record := FieldRecord{
			FieldName:   name,
			Tooltip:     textEntry(ctx, fieldDict, "TU"),
			MappingName: textEntry(ctx, fieldDict, "TM"),
			AltText:     textEntry(ctx, fieldDict, "Alt"),
		}

		if t.debugMode {
			fmt.Printf("Extracted tags for field: %s\n", name)
		}

		tags[name] = record
	}

	return tags, nil
}

// Restore matches the document's form fields by name against tags and
// writes back every property present in the matching record, overwriting
// existing values. Fields absent from tags are left untouched; tags for
// fields no longer in the document are skipped. The document is saved in
// place when at least one field was modified. Unlike Extract, failures
// here are fatal: a dropped write would lose accessibility data.
func (t *Tagger) Restore(filePath string, tags FieldTags) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF file: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("failed to close PDF file: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("failed to ensure page count: %w", err)
	}

	fields, err := formFields(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve form fields: %w", err)
	}
	if fields == nil || len(tags) == 0 {
		// Nothing to restore onto, or nothing to restore. Restore never
		// creates fields, so the document stays as it is.
		return 0, nil
	}

	restored := 0
	for _, fieldRef := range fields {
		fieldDict, err := ctx.DereferenceDict(fieldRef)
		if err != nil || fieldDict == nil {
			continue
		}

		name := textEntry(ctx, fieldDict, "T")
		if name == "" {
			continue
		}

		record, ok := tags[name]
		if !ok {
			continue
		}

		modified := false
		if record.HasTooltip() {
			if err := setTextEntry(fieldDict, "TU", record.Tooltip); err != nil {
				return restored, fmt.Errorf("failed to set tooltip on %q: %w", name, err)
			}
			modified = true
		}
		if record.HasMappingName() {
			if err := setTextEntry(fieldDict, "TM", record.MappingName); err != nil {
				return restored, fmt.Errorf("failed to set mapping name on %q: %w", name, err)
			}
			modified = true
		}
		if record.HasAltText() {
			if err := setTextEntry(fieldDict, "Alt", record.AltText); err != nil {
				return restored, fmt.Errorf("failed to set alt text on %q: %w", name, err)
			}
			modified = true
		}

		if modified {
			restored++
			if t.debugMode {
				fmt.Printf("Restored tags for field: %s\n", name)
			}
		}
	}

	if restored == 0 {
		return 0, nil
	}

	if err := api.WriteContextFile(ctx, filePath); err != nil {
		return restored, fmt.Errorf("failed to write PDF file: %w", err)
	}

	return restored, nil
}

// formFields resolves the AcroForm Fields array from the document
// catalog. A nil array with a nil error means the document simply has no
// form field collection.
func formFields(ctx *model.Context) (types.Array, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, nil
	}

	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return nil, nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		return nil, nil
	}

	fields, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	return fields, nil
}

// textEntry reads a text string entry from a field dictionary, returning
// "" when the entry is missing or not a string.
func textEntry(ctx *model.Context, fieldDict types.Dict, key string) string {
	obj, found := fieldDict.Find(key)
	if !found {
		return ""
	}
	s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return ""
	}
	return s
}

// setTextEntry writes a text string entry onto a field dictionary.
func setTextEntry(fieldDict types.Dict, key, value string) error {
	s, err := types.EscapedUTF16String(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	fieldDict[key] = types.StringLiteral(*s)
	return nil
}
