package handler

import (
	"net/http"

	"github.com/invoicetools/invoice-renamer/config"
	"github.com/invoicetools/invoice-renamer/dto"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// GetConfig handles the GET /config endpoint
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ConfigResponse{
		RenameWithAmount: h.cfg.RenameWithAmount,
		SupportedFormats: []string{".pdf", ".ofd"},
		MaxFileSize:      h.cfg.MaxFileSize,
	})
}
