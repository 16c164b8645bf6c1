package main

import (
	"log"
	"os"

	"github.com/invoicetools/invoice-renamer/client"
	"github.com/invoicetools/invoice-renamer/config"
	"github.com/invoicetools/invoice-renamer/handler"
	"github.com/invoicetools/invoice-renamer/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	for _, dir := range []string{cfg.UploadDir, cfg.DownloadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	// Initialize extraction collaborators
	qrDecoder := client.NewQRDecoder()
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	pdfService := service.NewPDFService(pdfProcessor, qrDecoder)
	ofdService := service.NewOFDService(qrDecoder)
	renameService := service.NewRenameService(pdfService, ofdService, cfg.DownloadDir)

	// Initialize handler layer
	uploadHandler := handler.NewUploadHandler(renameService, cfg)
	downloadHandler := handler.NewDownloadHandler(cfg)
	configHandler := handler.NewConfigHandler(cfg)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Invoice Rename Service",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		invoices := api.Group("/invoices")
		{
			invoices.POST("/upload", uploadHandler.Upload)
			invoices.GET("/download/:filename", downloadHandler.Download)
		}
		api.GET("/config", configHandler.GetConfig)
	}

	// Start server
	log.Printf("Starting Invoice Rename Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
