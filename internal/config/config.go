package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// BankFile is the semi-structured question bank text file. Its encoding
	// is auto-detected (utf-8, then gbk, then gb18030).
	BankFile string
	// BonusFile is an optional JSON fixture of bonus questions appended to
	// every parsed bank. A built-in fixture is used when the file is absent.
	BonusFile string
	// DataDir holds the three JSON stores (progress, wrong answers, history).
	DataDir string
	// ExamSize is the target number of questions drawn per exam session.
	ExamSize int
	// StaticDir, when set, is served at / for the web UI bundle.
	StaticDir string
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins are
	// permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		BankFile:       getEnv("BANK_FILE", "题库.txt"),
		BonusFile:      getEnv("BONUS_FILE", "bonus_questions.json"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		ExamSize:       getEnvInt("EXAM_SIZE", 100),
		StaticDir:      getEnv("STATIC_DIR", ""),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
