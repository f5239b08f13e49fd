package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config - all environment variables in one place.
type Config struct {
	// Server
	Port          string
	PublicBaseURL string

	// Gemini API
	GeminiAPIKey string
	GeminiModel  string

	// Remote spreadsheet backend (Apps Script style action endpoint)
	SheetsAPIURL string

	// Local landing storage
	DataDir string

	// Redis (optional - async banner jobs are disabled without it)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Supabase (optional - landing store + generated image uploads)
	SupabaseURL            string
	SupabaseServiceKey     string
	SupabaseStorageBaseURL string
	SupabaseLandingTable   string
}

var globalConfig *Config

// LoadConfig - load environment variables (.env file first when present).
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	useTLS := true
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	globalConfig = &Config{
		Port:          getEnv("PORT", "8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),

		SheetsAPIURL: getEnv("SHEETS_API_URL", ""),

		DataDir: getEnv("DATA_DIR", "./data"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBaseURL: getEnv("SUPABASE_STORAGE_BASE_URL", ""),
		SupabaseLandingTable:   getEnv("SUPABASE_LANDING_TABLE", "courseflow_landings"),
	}

	// Missing credentials are reported per request (500), not fatal at boot.
	if globalConfig.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set - banner generation will return 500")
	}
	if globalConfig.SheetsAPIURL == "" {
		log.Println("⚠️  SHEETS_API_URL not set - remote landing forward/registration disabled")
	}
	if globalConfig.RedisHost == "" {
		log.Println("⚠️  REDIS_HOST not set - async banner jobs disabled")
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Port: %s", globalConfig.Port)
	log.Printf("   Gemini model: %s", globalConfig.GeminiModel)
	log.Printf("   Data dir: %s", globalConfig.DataDir)
	log.Printf("   Public base URL: %s", globalConfig.PublicBaseURL)

	return globalConfig, nil
}

// GetConfig - return the loaded configuration.
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// getEnv - environment variable with default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRedisAddr - Redis connection string.
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// HasRedis reports whether the async job queue can run.
func (c *Config) HasRedis() bool {
	return c.RedisHost != ""
}

// HasSupabase reports whether the Supabase landing store and image uploads
// are configured.
func (c *Config) HasSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}
