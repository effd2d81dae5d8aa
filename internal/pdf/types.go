package pdf

import "github.com/a11ytools/pdf-formtag/internal/pdf/formtag"

// Request Types

// PDFExtractFormTagsRequest represents a request to extract form field
// accessibility tags from a PDF file
type PDFExtractFormTagsRequest struct {
	Path string `json:"path"`
}

// PDFRestoreFormTagsRequest represents a request to restore previously
// extracted form field accessibility tags onto a PDF file
type PDFRestoreFormTagsRequest struct {
	Path string            `json:"path"`
	Tags formtag.FieldTags `json:"tags"`
}

// PDFProcessFilesRequest represents a request to merge and compress PDF
// files while preserving their form field accessibility tags
type PDFProcessFilesRequest struct {
	Paths      []string `json:"paths"`
	OutputPath string   `json:"output_path"`
}

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFStatsFileRequest represents a request to get stats about a PDF file
type PDFStatsFileRequest struct {
	Path string `json:"path"`
}

// PDFServerInfoRequest represents a request for server information
type PDFServerInfoRequest struct{}

// Response Types

// PDFExtractFormTagsResult represents the result of a tag extraction
type PDFExtractFormTagsResult struct {
	Path       string            `json:"path"`
	FieldCount int               `json:"field_count"`
	Tags       formtag.FieldTags `json:"tags"`
}

// PDFRestoreFormTagsResult represents the result of a tag restoration
type PDFRestoreFormTagsResult struct {
	Path           string `json:"path"`
	FieldsRestored int    `json:"fields_restored"`
}

// PDFProcessFilesResult represents the result of a processing run
type PDFProcessFilesResult struct {
	OutputPath     string `json:"output_path"`
	InputCount     int    `json:"input_count"`
	TotalInputSize int64  `json:"total_input_size"`
	MergedSize     int64  `json:"merged_size"`
	FinalSize      int64  `json:"final_size"`
	Compressed     bool   `json:"compressed"`
	FieldsRestored int    `json:"fields_restored"`
}

// PDFValidateFileResult represents the result of a PDF validation
type PDFValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// PDFStatsFileResult represents statistics about a single PDF file
type PDFStatsFileResult struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Pages        int    `json:"pages"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreatedDate  string `json:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date,omitempty"`
}

// ToolInfo describes an available MCP tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// PDFServerInfoResult represents server information and usage guidance
type PDFServerInfoResult struct {
	ServerName       string     `json:"server_name"`
	Version          string     `json:"version"`
	DefaultDirectory string     `json:"default_directory"`
	MaxFileSize      int64      `json:"max_file_size"`
	AvailableTools   []ToolInfo `json:"available_tools"`
	UsageGuidance    string     `json:"usage_guidance"`
}
