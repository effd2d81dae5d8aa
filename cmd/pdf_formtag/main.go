// Command pdf_formtag is a one-shot CLI around the form tag library:
// extract tags to JSON, restore them from JSON, or run the full
// merge/compress/restore pipeline.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/a11ytools/pdf-formtag/internal/pdf/formtag"
	"github.com/a11ytools/pdf-formtag/internal/pipeline"
)

var (
	tagsFile     = flag.String("tags", "", "Path to a JSON tags file (restore command)")
	outputPath   = flag.String("out", "", "Output path for the merged PDF (process command)")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: command required\n\n")
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch command {
	case "extract":
		err = runExtract(args)
	case "restore":
		err = runRestore(args)
	case "process":
		err = runProcess(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExtract(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("extract requires exactly one PDF file argument")
	}
	pdfPath := args[0]
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", pdfPath)
	}

	tagger := formtag.NewTagger(*verbose)
	tags, err := tagger.Extract(pdfPath)
	if err != nil {
		return fmt.Errorf("extracting form tags: %w", err)
	}

	if *outputFormat == "json" {
		return printJSON(tags)
	}

	fmt.Printf("Extracted accessibility tags from %s (%d field(s))\n", pdfPath, len(tags))
	for name, record := range tags {
		fmt.Printf("• %s\n", name)
		if record.HasTooltip() {
			fmt.Printf("    tooltip: %s\n", record.Tooltip)
		}
		if record.HasMappingName() {
			fmt.Printf("    mapping name: %s\n", record.MappingName)
		}
		if record.HasAltText() {
			fmt.Printf("    alt text: %s\n", record.AltText)
		}
	}
	return nil
}

func runRestore(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("restore requires exactly one PDF file argument")
	}
	if *tagsFile == "" {
		return fmt.Errorf("restore requires -tags pointing to a JSON tags file")
	}

	data, err := os.ReadFile(*tagsFile)
	if err != nil {
		return fmt.Errorf("reading tags file: %w", err)
	}

	var tags formtag.FieldTags
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("parsing tags file: %w", err)
	}

	tagger := formtag.NewTagger(*verbose)
	restored, err := tagger.Restore(args[0], tags)
	if err != nil {
		return fmt.Errorf("restoring form tags: %w", err)
	}

	if *outputFormat == "json" {
		return printJSON(map[string]any{"path": args[0], "fields_restored": restored})
	}

	fmt.Printf("Restored accessibility tags on %d field(s) in %s\n", restored, args[0])
	return nil
}

func runProcess(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("process requires at least one input PDF file")
	}
	if *outputPath == "" {
		return fmt.Errorf("process requires -out for the merged output path")
	}

	processor := pipeline.NewProcessor(*verbose)
	result, err := processor.Process(args, *outputPath)
	if err != nil {
		return fmt.Errorf("processing files: %w", err)
	}

	if *outputFormat == "json" {
		return printJSON(result)
	}

	fmt.Printf("Processed %d file(s) into %s\n", result.InputCount, result.OutputPath)
	fmt.Printf("Input size:  %d bytes\n", result.TotalInputSize)
	fmt.Printf("Merged size: %d bytes\n", result.MergedSize)
	fmt.Printf("Final size:  %d bytes\n", result.FinalSize)
	fmt.Printf("Fields with restored tags: %d\n", result.FieldsRestored)
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printHelp() {
	fmt.Println("PDF Form Tag - preserve form field accessibility tags across PDF processing")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("COMMANDS:")
	fmt.Println("  extract <pdf>            Extract tags (field name, tooltip, mapping name, alt text)")
	fmt.Println("  restore -tags <json> <pdf>")
	fmt.Println("                           Restore tags from a JSON file onto matching fields")
	fmt.Println("  process -out <pdf> <pdfs...>")
	fmt.Println("                           Merge and compress inputs, preserving tags")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -tags          JSON tags file produced by 'extract -format json'")
	fmt.Println("  -out           Output path for the merged PDF")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -verbose       Enable verbose output")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdf_formtag extract form.pdf")
	fmt.Println("  pdf_formtag -format json extract form.pdf > tags.json")
	fmt.Println("  pdf_formtag -tags tags.json restore processed.pdf")
	fmt.Println("  pdf_formtag -out merged.pdf process chunk1.pdf chunk2.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  pdf_formtag [OPTIONS] <command> [arguments]")
}
