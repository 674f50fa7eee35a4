package common

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Общая конфигурация всего приложения
type Config struct {
	AppName        string `validate:"required"`
	AppVersion     string `validate:"required"`
	AppPort        string `validate:"required"`
	LogLevel       string
	LogDevelopMode bool
	DbDriverName   string `validate:"required"`
	Dsn            string `validate:"required"`
	JwtSecret      string `validate:"required"`
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicUrl string
}

// Получение конфигурации из .env файла или переменных окружения
func GetConfig(envFile string) Config {
	_ = godotenv.Load(envFile)
	var cfg = Config{
		AppName:        getEnvOrDefault("APP_NAME", "empdir"),
		AppVersion:     getEnvOrDefault("APP_VERSION", "0.0.0"),
		AppPort:        getEnvOrDefault("APP_PORT", "8080"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogDevelopMode: os.Getenv("LOG_DEVELOP_MODE") == "true",
		DbDriverName:   os.Getenv("DB_DRIVER_NAME"),
		Dsn:            os.Getenv("DB_DSN"),
		JwtSecret:      os.Getenv("JWT_SECRET"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "profilepictures"),
		MinioPublicUrl: os.Getenv("MINIO_PUBLIC_URL"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		panic(fmt.Sprintf("config validation error: %v", err))
	}
	return cfg
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
