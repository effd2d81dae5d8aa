// Package pipeline merges and compresses PDF documents while keeping
// form field accessibility tags intact across the rewrite.
package pipeline

import (
	"fmt"
	"log"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/a11ytools/pdf-formtag/internal/pdf/formtag"
)

// Result summarizes a completed processing run.
type Result struct {
	OutputPath     string `json:"output_path"`
	InputCount     int    `json:"input_count"`
	TotalInputSize int64  `json:"total_input_size"`
	MergedSize     int64  `json:"merged_size"`
	FinalSize      int64  `json:"final_size"`
	Compressed     bool   `json:"compressed"`
	FieldsRestored int    `json:"fields_restored"`
}

// Processor runs merge and compression passes over PDF files.
type Processor struct {
	conf      *model.Configuration
	tagger    *formtag.Tagger
	debugMode bool
}

// NewProcessor creates a processor with relaxed validation, matching the
// tolerance used elsewhere for real-world documents.
func NewProcessor(debugMode bool) *Processor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Processor{
		conf:      conf,
		tagger:    formtag.NewTagger(debugMode),
		debugMode: debugMode,
	}
}

// Merge combines the input files into a single document at outputPath.
func (p *Processor) Merge(inputPaths []string, outputPath string) error {
	if len(inputPaths) == 0 {
		return fmt.Errorf("no input files to merge")
	}

	for _, path := range inputPaths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot access input file %s: %w", path, err)
		}
	}

	if err := api.MergeCreateFile(inputPaths, outputPath, false, p.conf); err != nil {
		return fmt.Errorf("failed to merge PDF files: %w", err)
	}

	return nil
}

// Compress rewrites the document through pdfcpu's optimizer. The
// optimized copy replaces the original only when it is not larger;
// otherwise the uncompressed file is kept, so compression can never grow
// the document. Returns the final size and whether the optimized copy
// was kept.
func (p *Processor) Compress(path string) (int64, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, fmt.Errorf("cannot access file: %w", err)
	}
	sizeBefore := info.Size()

	tmpPath := path + ".optimized"
	if err := api.OptimizeFile(path, tmpPath, p.conf); err != nil {
		// Optimization failure falls back to the uncompressed file.
		if p.debugMode {
			log.Printf("Compression failed for %s, keeping uncompressed: %v", path, err)
		}
		os.Remove(tmpPath)
		return sizeBefore, false, nil
	}

	tmpInfo, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return sizeBefore, false, nil
	}

	if tmpInfo.Size() > sizeBefore {
		if p.debugMode {
			log.Printf("Compression grew %s (%d -> %d bytes), keeping uncompressed",
				path, sizeBefore, tmpInfo.Size())
		}
		if err := os.Remove(tmpPath); err != nil {
			return sizeBefore, false, fmt.Errorf("failed to remove optimized copy: %w", err)
		}
		return sizeBefore, false, nil
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return sizeBefore, false, fmt.Errorf("failed to replace file with optimized copy: %w", err)
	}

	if p.debugMode {
		log.Printf("Compressed %s: %d -> %d bytes", path, sizeBefore, tmpInfo.Size())
	}

	return tmpInfo.Size(), true, nil
}

// Process runs the full pipeline: extract tags from every input, merge,
// compress, then restore the tags onto the output. When two inputs carry
// a field with the same name, the first input wins.
func (p *Processor) Process(inputPaths []string, outputPath string) (*Result, error) {
	if len(inputPaths) == 0 {
		return nil, fmt.Errorf("no input files to process")
	}

	var totalInputSize int64
	tags := formtag.FieldTags{}

	for _, path := range inputPaths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access input file %s: %w", path, err)
		}
		totalInputSize += info.Size()

		extracted, err := p.tagger.Extract(path)
		if err != nil {
			return nil, fmt.Errorf("failed to extract form tags from %s: %w", path, err)
		}
		for name, record := range extracted {
			if _, exists := tags[name]; !exists {
				tags[name] = record
			}
		}
	}

	if err := p.Merge(inputPaths, outputPath); err != nil {
		return nil, err
	}

	mergedInfo, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access merged file: %w", err)
	}
	mergedSize := mergedInfo.Size()

	finalSize, compressed, err := p.Compress(outputPath)
	if err != nil {
		return nil, err
	}

	restored, err := p.tagger.Restore(outputPath, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to restore form tags: %w", err)
	}

	if restored > 0 {
		// Restoration rewrote the file.
		if info, err := os.Stat(outputPath); err == nil {
			finalSize = info.Size()
		}
	}

	if p.debugMode {
		log.Printf("Processed %d file(s) into %s: input %d bytes, merged %d bytes, final %d bytes, %d field(s) restored",
			len(inputPaths), outputPath, totalInputSize, mergedSize, finalSize, restored)
	}

	return &Result{
		OutputPath:     outputPath,
		InputCount:     len(inputPaths),
		TotalInputSize: totalInputSize,
		MergedSize:     mergedSize,
		FinalSize:      finalSize,
		Compressed:     compressed,
		FieldsRestored: restored,
	}, nil
}
