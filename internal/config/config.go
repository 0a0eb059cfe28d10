package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	ServerPort  string
	Environment string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string
	SeedData   bool

	// Redis configuration
	RedisAddress string

	// JWT configuration
	JWTSecret string

	// Generation provider configuration
	AIProvider        string
	AnthropicAPIKey   string
	AnthropicBaseURL  string
	GeminiAPIKey      string
	AIModel           string
	AIMaxTokens       int
	GenerationTimeout time.Duration
	GenerationWorkers int

	LogLevel        string
	FrontendAddress string
}

// Global application configuration
var AppConfig Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Find .env file
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		// Try to find .env in parent directories
		envPath = filepath.Join("..", ".env")
		if _, err := os.Stat(envPath); os.IsNotExist(err) {
			envPath = filepath.Join("..", "..", ".env")
		}
	}

	// Load .env file if it exists
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			logg.Warnf("error loading .env file: %v", err)
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = generateRandomSecret(32)
		logg.Warn("JWT_SECRET not set, generated a random one; tokens will not survive a restart")
	}

	provider := getEnv("AI_PROVIDER", "anthropic")

	AppConfig = Config{
		ServerPort:        getEnv("PORT", "8080"),
		Environment:       getEnv("ENV", "development"),
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "lexdraft"),
		SQLitePath:        getEnv("SQLITE_PATH", "lexdraft.db"),
		SeedData:          getEnvBool("SEED_DATA", true),
		RedisAddress:      getEnv("REDIS_ADDRESS", "localhost:6379"),
		JWTSecret:         jwtSecret,
		AIProvider:        provider,
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL:  getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		AIModel:           getEnv("AI_MODEL", DefaultModel(provider)),
		AIMaxTokens:       getEnvInt("AI_MAX_TOKENS", 4096),
		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", 30*time.Second),
		GenerationWorkers: getEnvInt("GENERATION_WORKERS", 8),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		FrontendAddress:   getEnv("FRONTEND_ADDRESS", "https://lexdraft.app"),
	}

	SetLogLevel(AppConfig.LogLevel)
}

// DefaultModel is the model used when AI_MODEL is unset
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-3-flash-preview"
	default:
		return "claude-3-opus-20240229"
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go duration strings ("30s", "1m")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// generateRandomSecret generates a random hex secret from length random bytes
func generateRandomSecret(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
