package config

import "os"

type Config struct {
	ServerPort       string
	UploadDir        string
	DownloadDir      string
	RenameWithAmount bool
	MaxFileSize      int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "/tmp/uploads"
	}

	downloadDir := os.Getenv("DOWNLOAD_DIR")
	if downloadDir == "" {
		downloadDir = "/tmp/downloads"
	}

	renameWithAmount := true
	switch os.Getenv("RENAME_WITH_AMOUNT") {
	case "false", "0", "no":
		renameWithAmount = false
	}

	return &Config{
		ServerPort:       serverPort,
		UploadDir:        uploadDir,
		DownloadDir:      downloadDir,
		RenameWithAmount: renameWithAmount,
		MaxFileSize:      32 << 20, // 32 MB
	}
}
