package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// Gemini API key used for both chat completions and embeddings
	GeminiAPIKey   string
	GeminiModel    string
	EmbeddingModel string
	// Redis/Upstash Configuration (rate limiting)
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Discovery pipeline knobs
	FreshnessWindowHours int    // re-check companies not checked within this window
	DiscoveryBatchSize   int    // how many stale companies to pull per sweep
	SuccessCap           int    // stop the sweep after this many successful ingestions
	PolitenessDelayMS    int    // pause between per-company network runs
	RetentionDays        int    // jobs older than this are swept
	DiscoveryCronSpec    string // cron spec for the discovery sweep
	CleanupCronSpec      string // cron spec for the housekeeping sweep
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Discovery pipeline knobs
		FreshnessWindowHours: getEnvInt("DISCOVERY_FRESHNESS_HOURS", 24),
		DiscoveryBatchSize:   getEnvInt("DISCOVERY_BATCH_SIZE", 50),
		SuccessCap:           getEnvInt("DISCOVERY_SUCCESS_CAP", 10),
		PolitenessDelayMS:    getEnvInt("DISCOVERY_POLITENESS_DELAY_MS", 2000),
		RetentionDays:        getEnvInt("JOB_RETENTION_DAYS", 7),
		DiscoveryCronSpec:    getEnv("DISCOVERY_CRON_SPEC", "@every 6h"),
		CleanupCronSpec:      getEnv("CLEANUP_CRON_SPEC", "0 0 * * *"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not configured. Parsing, extraction and matching will be unavailable.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
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
