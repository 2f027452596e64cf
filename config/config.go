package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Production  bool
	LogLevel    string
	StoreDriver string // "postgres" or "memory"
	DBUrl       string
	// Auth provider. RS256 tokens are verified against the JWKS endpoint,
	// HS256 tokens against the shared secret. When set, aud and iss must
	// match AuthAudience and AuthIssuer.
	AuthJWKSURL    string
	AuthJWTSecret  string
	AuthAudience   string
	AuthIssuer     string
	FrontendURL    string
	AllowedOrigins []string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// AI text generation (Gemini)
	GeminiAPIKey string
	GeminiModel  string
	// Job scraping backend
	JobScraperURL            string
	JobScraperTimeoutSeconds int
	JobCacheTTLMinutes       int
	// Object storage for profile photos
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3PublicBaseURL   string
	WasabiEndpoint    string
	// clamd address for upload scanning; empty disables scanning
	ClamAVAddress string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitAIThreshold     int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Production:  getEnvBool("PRODUCTION", false),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		DBUrl:       getEnv("DATABASE_URL", ""),
		// Strip trailing slash so joined URLs never contain "//"
		AuthJWKSURL:    strings.TrimRight(getEnv("AUTH_JWKS_URL", ""), "/"),
		AuthJWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
		AuthAudience:   getEnv("AUTH_AUDIENCE", ""),
		AuthIssuer:     getEnv("AUTH_ISSUER", ""),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", nil),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// AI
		GeminiAPIKey: getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		// Job scraping
		JobScraperURL:            strings.TrimRight(getEnv("JOB_SCRAPER_URL", ""), "/"),
		JobScraperTimeoutSeconds: getEnvInt("JOB_SCRAPER_TIMEOUT_SECONDS", 30),
		JobCacheTTLMinutes:       getEnvInt("JOB_CACHE_TTL_MINUTES", 15),
		// Object storage
		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		WasabiEndpoint:    getEnv("WASABI_ENDPOINT", ""),
		ClamAVAddress:     getEnv("CLAMAV_ADDRESS", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100), // 100 requests per window
		RateLimitAIThreshold:     getEnvInt("RATE_LIMIT_AI_THRESHOLD", 10),      // 10 AI generations per window
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{cfg.FrontendURL}
	}

	// Basic validation so misconfiguration shows up at startup
	if cfg.StoreDriver == "postgres" && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AuthJWKSURL == "" && cfg.AuthJWTSecret == "" {
		log.Println("WARNING: neither AUTH_JWKS_URL nor AUTH_JWT_SECRET is set. Every authenticated request will be rejected.")
	}
	if cfg.AuthJWKSURL != "" && cfg.AuthAudience == "" {
		log.Println("WARNING: AUTH_JWKS_URL is set without AUTH_AUDIENCE. Tokens minted for any audience on that key set will be accepted.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and job cache will use in-memory fallback.")
	}

	return cfg, nil
}

// S3Configured reports whether profile photo uploads can be stored.
func (c *Config) S3Configured() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}
