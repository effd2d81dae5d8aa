package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a11ytools/pdf-formtag/internal/config"
	"github.com/a11ytools/pdf-formtag/internal/descriptions"
	"github.com/a11ytools/pdf-formtag/internal/pdf"
	"github.com/a11ytools/pdf-formtag/internal/pdf/formtag"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register form tag extraction tool
	extractFormTagsTool := mcp.NewTool(
		"pdf_extract_form_tags",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_extract_form_tags")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(extractFormTagsTool, s.handlePDFExtractFormTags)

	// Register form tag restoration tool
	restoreFormTagsTool := mcp.NewTool(
		"pdf_restore_form_tags",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_restore_form_tags")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("tags",
			mcp.Required(),
			mcp.Description("JSON mapping of field names to tag records, as produced by pdf_extract_form_tags"),
		),
	)
	s.mcpServer.AddTool(restoreFormTagsTool, s.handlePDFRestoreFormTags)

	// Register processing pipeline tool
	processFilesTool := mcp.NewTool(
		"pdf_process_files",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_process_files")),
		mcp.WithString("paths",
			mcp.Required(),
			mcp.Description("Comma-separated full paths to the input PDF files"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Full path for the merged output PDF"),
		),
	)
	s.mcpServer.AddTool(processFilesTool, s.handlePDFProcessFiles)

	// Register PDF validate file tool
	validateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handlePDFValidateFile)

	// Register PDF stats file tool
	statsFileTool := mcp.NewTool(
		"pdf_stats_file",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_stats_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(statsFileTool, s.handlePDFStatsFile)

	// Register server info tool
	serverInfoTool := mcp.NewTool(
		"pdf_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handlePDFServerInfo)
}

// Handler functions
func (s *Server) handlePDFExtractFormTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFExtractFormTagsRequest{Path: path}
	result, err := s.pdfService.PDFExtractFormTags(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatPDFExtractFormTagsResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFRestoreFormTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tagsJSON, err := request.RequireString("tags")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var tags formtag.FieldTags
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid tags JSON: %v", err)), nil
	}

	req := pdf.PDFRestoreFormTagsRequest{Path: path, Tags: tags}
	result, err := s.pdfService.PDFRestoreFormTags(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Restored accessibility tags on %d field(s) in %s",
		result.FieldsRestored, result.Path)
	if result.FieldsRestored == 0 {
		responseText = fmt.Sprintf("No matching form fields found in %s; document left unchanged", result.Path)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFProcessFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pathsArg, err := request.RequireString("paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, p := range strings.Split(pathsArg, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}

	req := pdf.PDFProcessFilesRequest{Paths: paths, OutputPath: outputPath}
	result, err := s.pdfService.PDFProcessFiles(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatPDFProcessFilesResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFValidateFileRequest{Path: path}
	result, err := s.pdfService.PDFValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFStatsFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFStatsFileRequest{Path: path}
	result, err := s.pdfService.PDFStatsFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatPDFStatsFileResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := pdf.PDFServerInfoRequest{}
	result, err := s.pdfService.PDFServerInfo(req, s.config.ServerName, s.config.Version, s.config.PDFDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatPDFServerInfoResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods
func (s *Server) formatPDFExtractFormTagsResult(result *pdf.PDFExtractFormTagsResult) string {
	text := fmt.Sprintf("Extracted accessibility tags from: %s\n", result.Path)
	text += fmt.Sprintf("Tagged fields: %d\n", result.FieldCount)

	if result.FieldCount == 0 {
		text += "\nNo named form fields with accessibility tags were found. " +
			"This is expected for documents without interactive forms.\n"
		return text
	}

	tagsJSON, err := json.MarshalIndent(result.Tags, "", "  ")
	if err != nil {
		text += fmt.Sprintf("\nFailed to encode tags: %v\n", err)
		return text
	}

	text += "\nTags (pass this JSON to pdf_restore_form_tags):\n"
	text += string(tagsJSON)
	return text
}

func (s *Server) formatPDFProcessFilesResult(result *pdf.PDFProcessFilesResult) string {
	text := fmt.Sprintf("Processed %d file(s) into: %s\n", result.InputCount, result.OutputPath)
	text += fmt.Sprintf("Total input size: %d bytes\n", result.TotalInputSize)
	text += fmt.Sprintf("Merged size: %d bytes\n", result.MergedSize)
	text += fmt.Sprintf("Final size: %d bytes\n", result.FinalSize)
	if result.Compressed {
		text += "Compression: applied\n"
	} else {
		text += "Compression: skipped (would not reduce file size)\n"
	}
	text += fmt.Sprintf("Form fields with restored tags: %d\n", result.FieldsRestored)
	return text
}

func (s *Server) formatPDFStatsFileResult(result *pdf.PDFStatsFileResult) string {
	text := "PDF File Statistics\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Modified: %s\n", result.ModifiedDate)

	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	if result.Author != "" {
		text += fmt.Sprintf("Author: %s\n", result.Author)
	}
	if result.Subject != "" {
		text += fmt.Sprintf("Subject: %s\n", result.Subject)
	}
	if result.Producer != "" {
		text += fmt.Sprintf("Producer: %s\n", result.Producer)
	}
	if result.CreatedDate != "" {
		text += fmt.Sprintf("Created: %s\n", result.CreatedDate)
	}

	return text
}

func (s *Server) formatPDFServerInfoResult(result *pdf.PDFServerInfoResult) string {
	text := fmt.Sprintf("%s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	text += "Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	} else {
		return s.runStdioMode(ctx)
	}
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting PDF form tag server in stdio mode")
		log.Printf("Working directory: %s", s.config.PDFDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
