package handler

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/invoicetools/invoice-renamer/config"
	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/invoicetools/invoice-renamer/service"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	renameService *service.RenameService
	cfg           *config.Config
}

func NewUploadHandler(renameService *service.RenameService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		renameService: renameService,
		cfg:           cfg,
	}
}

// Upload handles the POST /invoices/upload endpoint: saves the uploaded
// files, runs the extraction/rename pipeline over each, and returns the
// per-file outcomes plus a download link for the ZIP bundle.
func (h *UploadHandler) Upload(c *gin.Context) {
	log.Println("Received invoice upload request")

	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	request := &dto.UploadRequest{Files: form.File["files[]"]}
	if v := c.PostForm("rename_with_amount"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			request.RenameWithAmount = &parsed
		}
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	// Per-request flag override; the configured default applies when
	// the form field is absent or unparseable
	withAmount := h.cfg.RenameWithAmount
	if request.RenameWithAmount != nil {
		withAmount = *request.RenameWithAmount
	}
	files := request.Files

	log.Printf("Processing %d files (rename_with_amount=%v)", len(files), withAmount)

	var paths []string
	results := make([]dto.FileResult, 0, len(files))
	for _, file := range files {
		dst := filepath.Join(h.cfg.UploadDir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, dst); err != nil {
			log.Printf("Failed to save uploaded file %s: %v", file.Filename, err)
			results = append(results, dto.FileResult{
				Filename: file.Filename,
				Error:    "failed to save uploaded file",
			})
			continue
		}
		paths = append(paths, dst)
	}

	batchResults, zipName := h.renameService.ProcessBatch(paths, withAmount)
	results = append(results, batchResults...)

	c.JSON(http.StatusOK, dto.UploadResponse{
		Success:     true,
		Results:     results,
		Download:    zipName,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *UploadHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "UPLOAD_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
