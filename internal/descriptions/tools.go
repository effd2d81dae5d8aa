package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Form Tag Tools
	PDFExtractFormTagsDescription = `Extract form field accessibility tags from PDF documents.

**When to use:** Before any processing step that rewrites a PDF (merging, compression, re-tagging) so the form fields' accessibility metadata can be restored afterwards.

**Why it's useful:** Processing tools routinely drop tooltips, mapping names, and alternate text from form fields, breaking assistive technology. Extracting the tags up front makes the loss recoverable.

**Examples:**
• Pre-processing snapshot: "Extract form tags from application-form.pdf before sending it through the autotagger"
• Accessibility audit: "List which fields in tax-form.pdf carry tooltips and alt text"
• Migration: "Capture field metadata from legacy-form.pdf before rebuilding it"

**Common workflows:**
1. Tag Preservation: Extract tags → Process document → Restore tags
2. Audit: Extract tags → Compare against accessibility checklist → Report gaps
3. Debugging: Extract tags → Inspect JSON → Verify processing kept metadata

**Best practices:** A PDF without form fields returns an empty mapping, which is expected; only named fields are captured.`

	PDFRestoreFormTagsDescription = `Restore previously extracted accessibility tags onto PDF form fields.

**When to use:** After a processing step that rewrote the document, with the JSON produced by pdf_extract_form_tags.

**Why it's useful:** Writes tooltips, mapping names, and alternate text back onto the fields that survived processing, matched by field name, so assistive technology keeps working.

**Examples:**
• Post-processing repair: "Restore the saved tags onto merged-output.pdf"
• Selective restore: "Apply only the tooltip records to processed-form.pdf"

**Common workflows:**
1. Tag Preservation: Extract tags → Process document → Restore tags
2. Batch Repair: Extract from originals → Process batch → Restore onto each output

**Best practices:** Fields removed during processing are silently skipped; restoration never creates fields. The file is rewritten in place, so run it on a copy if the processed document must be kept pristine.`

	PDFProcessFilesDescription = `Merge and compress PDF files while preserving form field accessibility tags.

**When to use:** Combining several PDFs (for example chunked scans) into one output without losing field metadata.

**Why it's useful:** Runs the whole extract → merge → compress → restore pipeline in one call, with automatic fallback to the uncompressed file when compression would grow it.

**Examples:**
• Chunk assembly: "Merge report_chunk_1.pdf through report_chunk_4.pdf into report.pdf"
• Packet building: "Combine the signed forms in /intake/ into a single case file"

**Common workflows:**
1. Document Assembly: Collect chunks → Process into one file → Verify tags survived
2. Archive Preparation: Merge related documents → Compress → Store

**Best practices:** When two inputs carry a field with the same name, the first input's tags win. Check fields_restored in the response to confirm the tags landed.`

	// Utility Tools
	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to extract tags from or process any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted files early, and ensures compatibility with the form tag tools.

**Examples:**
• Batch processing safety: "Validate all PDFs in /intake/ before the merge pipeline"
• Upload verification: "Check user-uploaded form.pdf is valid before processing"

**Common workflows:**
1. Automated Processing: Validate → Process if valid → Handle errors gracefully
2. File Quality Check: Validate → Report issues → Fix or reject bad files

**Best practices:** Always run this first in automated workflows handling unknown PDFs.`

	PDFStatsFileDescription = `Get comprehensive metadata and statistics about PDF documents.

**When to use:** Need document properties, page count, file size, or creation info before processing.

**Why it's useful:** Provides essential metadata for document management and helps estimate processing requirements.

**Examples:**
• Document management: "Get creation date and author from legal-contract.pdf for filing"
• Processing decisions: "Check page count of manual.pdf to estimate processing time"

**Common workflows:**
1. Document Cataloging: Get stats → Store metadata → Index for search
2. Processing Planning: Check stats → Choose strategy → Allocate resources

**Best practices:** Useful for document management systems, helps size batch jobs.`

	PDFServerInfoDescription = `Get real-time server status, available tools, and system capabilities.

**When to use:** Starting work with the form tag server, troubleshooting issues, or checking available functionality.

**Why it's useful:** Provides a complete overview of server capabilities and current configuration for informed decision-making.

**Examples:**
• System check: "Verify the server is ready before batch processing"
• Capability discovery: "See all available tools and their descriptions"

**Common workflows:**
1. Session Startup: Check server info → Verify capabilities → Plan processing approach
2. Troubleshooting: Check configuration → Diagnose path or size limits

**Best practices:** Run once per session to learn the configured directory and file size limit.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"pdf_extract_form_tags": PDFExtractFormTagsDescription,
	"pdf_restore_form_tags": PDFRestoreFormTagsDescription,
	"pdf_process_files":     PDFProcessFilesDescription,
	"pdf_validate_file":     PDFValidateFileDescription,
	"pdf_stats_file":        PDFStatsFileDescription,
	"pdf_server_info":       PDFServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
