package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	telegramTokenEnvName = "TELEGRAM_TOKEN"
	mongoDbUriEnvName    = "MONGODB_URI"
	debugEnvName         = "DEBUG"
	httpAddrEnvName      = "HTTP_ADDR"
	apiTokenEnvName      = "API_TOKEN"
	uploadDirEnvName     = "UPLOAD_DIR"
	allowedOriginEnvName = "ALLOWED_ORIGIN"
)

type Config struct {
	TelegramToken string
	MongoURI      string
	Debug         bool
	HTTPAddr      string
	APIToken      string
	UploadDir     string
	AllowedOrigin string
}

func Load() (Config, error) {
	err := godotenv.Load()

	if err != nil {
		log.Println("Error loading .env file")
	}

	cfg := Config{
		TelegramToken: os.Getenv(telegramTokenEnvName),
		MongoURI:      os.Getenv(mongoDbUriEnvName),
		Debug:         os.Getenv(debugEnvName) == "true",
		HTTPAddr:      getEnv(httpAddrEnvName, ":3124"),
		APIToken:      os.Getenv(apiTokenEnvName),
		UploadDir:     getEnv(uploadDirEnvName, "uploads"),
		AllowedOrigin: getEnv(allowedOriginEnvName, "*"),
	}

	if cfg.TelegramToken == "" {
		return Config{}, fmt.Errorf("%s is required", telegramTokenEnvName)
	}

	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("%s is required", mongoDbUriEnvName)
	}

	return cfg, nil
}

func getEnv(name string, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return fallback
}
