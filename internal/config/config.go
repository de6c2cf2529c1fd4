package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	ProcessTopic       string // Document processing topic
}

type DatabaseConfig struct {
	Connection string
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type StorageConfig struct {
	UploadDir        string
	MaxFileSize      int64
	AllowedFileTypes []string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "" (not configured)
	EmbeddingBaseURL  string
	EmbeddingModel    string
	LLMProvider       string // "ollama" or "" (not configured)
	LLMBaseURL        string
	LLMModel          string
	AnalyzerEndpoint  string // document analysis service, optional
	AnalyzerAPIKey    string
	SearchIndexOn     bool
	RetrievalLimit    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			ProcessTopic:       getEnv("PROCESS_DOCUMENT_TOPIC_NAME", "PROCESS_DOCUMENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "ai-foundry-jwt-secret-change-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Storage: StorageConfig{
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 50*1024*1024),
			AllowedFileTypes: strings.Split(getEnv("ALLOWED_FILE_TYPES",
				"application/pdf,"+
					"application/msword,"+
					"application/vnd.openxmlformats-officedocument.wordprocessingml.document,"+
					"text/plain,"+
					"image/jpeg,"+
					"image/png"), ","),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", ""),
			EmbeddingBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", ""),
			LLMBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			AnalyzerEndpoint:  getEnv("DOCUMENT_ANALYZER_ENDPOINT", ""),
			AnalyzerAPIKey:    getEnv("DOCUMENT_ANALYZER_API_KEY", ""),
			SearchIndexOn:     getEnvAsBool("SEARCH_INDEX_ENABLED", true),
			RetrievalLimit:    getEnvAsInt("RETRIEVAL_LIMIT", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
