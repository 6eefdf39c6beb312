// Package errors provides standardized error handling for the document pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDocumentNotFound  ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrCodeNoExtractableText ErrorCode = "NO_EXTRACTABLE_TEXT"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeLLMExtractionFailed    ErrorCode = "LLM_EXTRACTION_FAILED"
	ErrCodeLLMTimeout             ErrorCode = "LLM_TIMEOUT"

	ErrCodeEmbeddingFailed   ErrorCode = "EMBEDDING_FAILED"
	ErrCodeSearchIndexFailed ErrorCode = "SEARCH_INDEX_FAILED"

	ErrCodeBlobDownloadFailed ErrorCode = "BLOB_DOWNLOAD_FAILED"
	ErrCodeBlobUploadFailed   ErrorCode = "BLOB_UPLOAD_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodePersistenceFailed        ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDocumentNotFoundError creates a non-retryable missing document error.
func NewDocumentNotFoundError(documentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentNotFound,
		Message:   "Document not found",
		Details:   fmt.Sprintf("documentId: %s", documentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoExtractableTextError creates a non-retryable extraction error covering
// legacy-format best-effort failures.
func NewNoExtractableTextError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoExtractableText,
		Message:   "No extractable text in document",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedFormatError creates a non-retryable format error asking for
// manual conversion.
func NewUnsupportedFormatError(contentType, filename string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedFormat,
		Message:   "Unsupported document format, please convert manually to PDF or DOCX",
		Details:   fmt.Sprintf("contentType: %s, filename: %s", contentType, filename),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaValidationFailedError creates a non-retryable error for extraction
// output that does not conform to the ExtractionResult schema.
func NewSchemaValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaValidationFailed,
		Message:   "Extraction returned non-conforming data",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMExtractionFailedError creates a retryable LLM extraction error.
func NewLLMExtractionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMExtractionFailed,
		Message:   "Structured extraction API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Structured extraction timeout",
		Details:   "extraction call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingFailedError creates a non-fatal embedding generation error.
// The pipeline downgrades this to "no embedding" rather than failing the item.
func NewEmbeddingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Embedding generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchIndexFailedError creates a non-fatal search indexing error.
func NewSearchIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchIndexFailed,
		Message:   "Search index update failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBlobDownloadFailedError creates a retryable blob store download error.
func NewBlobDownloadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBlobDownloadFailed,
		Message:   "Blob store download failed",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBlobUploadFailedError creates a retryable blob store upload error.
func NewBlobUploadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBlobUploadFailed,
		Message:   "Blob store upload failed",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceFailedError creates a retryable persistence error. Work lost to
// a persistence failure after successful extraction is retried by re-submission.
func NewPersistenceFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailed,
		Message:   "Persistence operation failed",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("query: %s, error: %s", query, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsCode reports whether err is (or wraps) a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// IsFatalToItem reports whether an error should fail the queue item. Embedding
// and search-index errors are best-effort and never fail the item.
func IsFatalToItem(err error) bool {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return true
	}
	switch stdErr.Code {
	case ErrCodeEmbeddingFailed, ErrCodeSearchIndexFailed:
		return false
	default:
		return true
	}
}

// Normalize ensures we always have a StandardError to record on a queue item.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DOCUMENT") || strings.Contains(codeStr, "BLOB"):
		return "DOCUMENT"
	case strings.Contains(codeStr, "TEXT") || strings.Contains(codeStr, "FORMAT"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "SCHEMA") || strings.Contains(codeStr, "EMBEDDING"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "PERSISTENCE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	default:
		return "OTHER"
	}
}
