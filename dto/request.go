package dto

import (
	"mime/multipart"
)

// UploadRequest represents an incoming batch upload
type UploadRequest struct {
	Files []*multipart.FileHeader `form:"files[]" binding:"required"`

	// RenameWithAmount overrides the configured default for this request
	// only; nil means "use the configured default".
	RenameWithAmount *bool `form:"rename_with_amount"`
}

// Validate performs basic validation on the request
func (r *UploadRequest) Validate() error {
	if len(r.Files) == 0 {
		return ErrNoFilesProvided
	}
	return nil
}
