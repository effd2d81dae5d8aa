package pdf

import (
	"fmt"

	"github.com/a11ytools/pdf-formtag/internal/pdf/formtag"
	"github.com/a11ytools/pdf-formtag/internal/pdf/security"
	"github.com/a11ytools/pdf-formtag/internal/pipeline"
)

// Service handles PDF file operations by orchestrating the form tag,
// validation and processing components
type Service struct {
	maxFileSize   int64
	validator     *Validator
	stats         *Stats
	tagger        *formtag.Tagger
	processor     *pipeline.Processor
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service with all components
func NewService(maxFileSize int64, configuredDirectory string, debugMode bool) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		validator:     NewValidator(maxFileSize),
		stats:         NewStats(maxFileSize),
		tagger:        formtag.NewTagger(debugMode),
		processor:     pipeline.NewProcessor(debugMode),
		pathValidator: pathValidator,
	}, nil
}

// PDFExtractFormTags extracts form field accessibility tags from a PDF file
func (s *Service) PDFExtractFormTags(req PDFExtractFormTagsRequest) (*PDFExtractFormTagsResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	tags, err := s.tagger.Extract(req.Path)
	if err != nil {
		return nil, err
	}

	return &PDFExtractFormTagsResult{
		Path:       req.Path,
		FieldCount: len(tags),
		Tags:       tags,
	}, nil
}

// PDFRestoreFormTags restores previously extracted accessibility tags
// onto the form fields of a PDF file
func (s *Service) PDFRestoreFormTags(req PDFRestoreFormTagsRequest) (*PDFRestoreFormTagsResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	restored, err := s.tagger.Restore(req.Path, req.Tags)
	if err != nil {
		return nil, err
	}

	return &PDFRestoreFormTagsResult{
		Path:           req.Path,
		FieldsRestored: restored,
	}, nil
}

// PDFProcessFiles merges and compresses the input files while preserving
// their form field accessibility tags
func (s *Service) PDFProcessFiles(req PDFProcessFilesRequest) (*PDFProcessFilesResult, error) {
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("paths cannot be empty")
	}
	if req.OutputPath == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}

	for _, path := range req.Paths {
		if err := s.pathValidator.ValidatePath(path); err != nil {
			return nil, fmt.Errorf("security validation failed: %w", err)
		}
	}
	if err := s.pathValidator.ValidatePath(req.OutputPath); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	result, err := s.processor.Process(req.Paths, req.OutputPath)
	if err != nil {
		return nil, err
	}

	return &PDFProcessFilesResult{
		OutputPath:     result.OutputPath,
		InputCount:     result.InputCount,
		TotalInputSize: result.TotalInputSize,
		MergedSize:     result.MergedSize,
		FinalSize:      result.FinalSize,
		Compressed:     result.Compressed,
		FieldsRestored: result.FieldsRestored,
	}, nil
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// PDFStatsFile returns detailed statistics about a single PDF file
func (s *Service) PDFStatsFile(req PDFStatsFileRequest) (*PDFStatsFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetFileStats(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// PDFServerInfo returns server information and usage guidance
func (s *Service) PDFServerInfo(_ PDFServerInfoRequest, serverName, version,
	defaultDirectory string,
) (*PDFServerInfoResult, error) {
	validatedDir := defaultDirectory
	if err := s.pathValidator.ValidateDirectory(defaultDirectory); err != nil {
		validatedDir = s.pathValidator.GetConfiguredDirectory()
	}

	availableTools := []ToolInfo{
		{
			Name:        "pdf_extract_form_tags",
			Description: "Extract form field accessibility tags (tooltip, mapping name, alt text) from a PDF file",
			Usage: "Use this tool before running a PDF through a processing step that rewrites the file, " +
				"so the tags can be restored afterwards.",
			Parameters: "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "pdf_restore_form_tags",
			Description: "Restore previously extracted accessibility tags onto the form fields of a PDF file",
			Usage: "Use this tool after processing, with the JSON produced by pdf_extract_form_tags. " +
				"Fields are matched by name; fields removed during processing are skipped.",
			Parameters: "path (required): Full absolute path to the PDF file, " +
				"tags (required): JSON mapping of field names to records",
		},
		{
			Name:        "pdf_process_files",
			Description: "Merge and compress PDF files while preserving form field accessibility tags",
			Usage: "Use this tool to combine several PDFs into one output. Tags are extracted up front " +
				"and restored onto the merged result automatically.",
			Parameters: "paths (required): Comma-separated absolute paths to the input PDF files, " +
				"output_path (required): Absolute path for the merged output",
		},
		{
			Name:        "pdf_validate_file",
			Description: "Validate if a file is a readable PDF",
			Usage:       "Use this tool to check if a file is a valid PDF before attempting to process it.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "pdf_stats_file",
			Description: "Get detailed statistics about a PDF file",
			Usage:       "Use this tool to get metadata, page count, file size, and document properties of a PDF.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
	}

	usageGuidance := `PDF Form Tag Server Usage Guide:

1. PRESERVE TAGS ACROSS PROCESSING:
   - Use 'pdf_extract_form_tags' before any step that rewrites the PDF
   - Run your processing (merge, compression, re-tagging)
   - Use 'pdf_restore_form_tags' with the extracted JSON afterwards

2. ONE-SHOT PIPELINE:
   - Use 'pdf_process_files' to merge and compress several PDFs in one call;
     tag extraction and restoration happen automatically

3. VALIDATE FILES:
   - Use 'pdf_validate_file' to check if a file is readable before processing

4. GET METADATA:
   - Use 'pdf_stats_file' to get page count, document properties, and sizes

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB
- A PDF without form fields yields an empty tag mapping; that is not an error
- Restoration never creates form fields, it only rewrites existing ones`

	return &PDFServerInfoResult{
		ServerName:       serverName,
		Version:          version,
		DefaultDirectory: validatedDir,
		MaxFileSize:      s.maxFileSize,
		AvailableTools:   availableTools,
		UsageGuidance:    usageGuidance,
	}, nil
}

// ValidateConfiguration validates the service configuration
func (s *Service) ValidateConfiguration() error {
	if s.maxFileSize <= 0 {
		return fmt.Errorf("maxFileSize must be greater than 0")
	}

	if s.maxFileSize > 1024*1024*1024 { // 1GB limit
		return fmt.Errorf("maxFileSize cannot exceed 1GB")
	}

	return nil
}
