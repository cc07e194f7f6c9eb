package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDSN           string
	MediaDir        string
	LogFile         string
	LinkAPIBase     string
	DownloadTimeout time.Duration
}

func Load() Config {
	// Optional .env in the working directory; real env wins.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shopapi.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shopapi.log"
	}
	linkAPI := os.Getenv("LINK_API_BASE")
	if linkAPI == "" {
		// Yandex Disk public resource download endpoint.
		linkAPI = "https://cloud-api.yandex.net/v1/disk/public/resources/download"
	}
	timeout := 30 * time.Second
	if s := os.Getenv("DOWNLOAD_TIMEOUT_SEC"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile,
		LinkAPIBase: linkAPI, DownloadTimeout: timeout}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}
