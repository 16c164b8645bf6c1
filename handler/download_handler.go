package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/invoicetools/invoice-renamer/config"
	"github.com/invoicetools/invoice-renamer/dto"

	"github.com/gin-gonic/gin"
)

type DownloadHandler struct {
	cfg *config.Config
}

func NewDownloadHandler(cfg *config.Config) *DownloadHandler {
	return &DownloadHandler{cfg: cfg}
}

// Download handles the GET /invoices/download/:filename endpoint,
// serving a previously produced ZIP bundle.
func (h *DownloadHandler) Download(c *gin.Context) {
	filename := c.Param("filename")

	// Reject any path component; the bundle always lives directly in
	// the download directory
	if filename == "" || filename != filepath.Base(filename) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "INVALID_FILENAME",
			Message: "invalid download filename",
			Code:    http.StatusBadRequest,
		})
		return
	}

	path := filepath.Join(h.cfg.DownloadDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "file does not exist",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.FileAttachment(path, filename)
}
