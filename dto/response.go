package dto

import "errors"

// Custom errors
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoFilesProvided   = errors.New("no files provided")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// FileResult is the per-file outcome of a batch upload
type FileResult struct {
	Filename      string `json:"filename"`
	Success       bool   `json:"success"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Amount        string `json:"amount,omitempty"`
	NewName       string `json:"new_name,omitempty"`
	Error         string `json:"error,omitempty"`
}

// UploadResponse is the final response for a batch upload
type UploadResponse struct {
	Success     bool         `json:"success"`
	Results     []FileResult `json:"results"`
	Download    string       `json:"download,omitempty"`
	ProcessedAt string       `json:"processed_at"`
}

// ConfigResponse echoes the effective service configuration
type ConfigResponse struct {
	RenameWithAmount bool     `json:"rename_with_amount"`
	SupportedFormats []string `json:"supported_formats"`
	MaxFileSize      int64    `json:"max_file_size"`
}
