package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-backed setting the server uses.
type Config struct {
	// fal.ai provider
	FalKey      string
	FalEndpoint string

	// Gemini (fabric/pose analysis)
	GeminiAPIKey string
	GeminiModel  string

	// Redis (async job queue + cancel flags)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Supabase (generated image persistence)
	SupabaseURL            string
	SupabaseServiceKey     string
	SupabaseStorageBucket  string
	SupabaseStorageBaseURL string

	// Server
	Port string
}

var globalConfig *Config

// LoadConfig reads .env (if present) and environment variables.
// The FAL key is deliberately NOT required here: its absence is surfaced
// per-request as a configuration error instead of preventing startup.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	useTLS := true
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		parsed, err := strconv.ParseBool(tlsStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_USE_TLS value %q: %w", tlsStr, err)
		}
		useTLS = parsed
	}

	globalConfig = &Config{
		FalKey:      getEnv("FAL_KEY", ""),
		FalEndpoint: getEnv("FAL_ENDPOINT", "https://fal.run/fal-ai/nano-banana-pro/edit"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "studio-results"),
		SupabaseStorageBaseURL: getEnv("SUPABASE_STORAGE_BASE_URL", ""),

		Port: getEnv("PORT", "8080"),
	}

	log.Println("✅ Configuration loaded")
	if globalConfig.FalKey == "" {
		log.Println("⚠️  FAL_KEY not set - generation requests will fail with a configuration error")
	}
	if globalConfig.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY not set - /api/analyze disabled")
	}
	if globalConfig.RedisHost == "" {
		log.Println("⚠️  REDIS_HOST not set - async jobs and cancel disabled")
	}
	if globalConfig.SupabaseURL == "" || globalConfig.SupabaseServiceKey == "" {
		log.Println("⚠️  Supabase not configured - generated images will not be persisted")
	}

	return globalConfig, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRedisAddr builds the Redis connection string.
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
