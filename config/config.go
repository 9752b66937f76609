package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	DBMaxConns  int
	FrontendURL string
	// Identity. Tokens are issued by the external auth service.
	AuthJWTSecret string
	AuthJWKSURL   string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitApplyThreshold  int
	RateLimitGlobalThreshold int
	// Listing limits
	ListingRecentPageSize int
	ListingMatchPageSize  int
	MatchedJobsLimit      int
	// Job lifecycle
	JobLifetimeDays int
	ReaperSchedule  string
	ReaperTimeout   time.Duration
	RunMigrations   bool
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; production sets real environment variables
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 25),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Identity
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		AuthJWKSURL:   strings.TrimSpace(getEnv("AUTH_JWKS_URL", "")),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitApplyThreshold:  getEnvInt("RATE_LIMIT_APPLY_THRESHOLD", 20),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Listing limits
		ListingRecentPageSize: getEnvInt("LISTING_RECENT_PAGE_SIZE", 50),
		ListingMatchPageSize:  getEnvInt("LISTING_MATCH_PAGE_SIZE", 10),
		MatchedJobsLimit:      getEnvInt("MATCHED_JOBS_LIMIT", 10),
		// Job lifecycle
		JobLifetimeDays: getEnvInt("JOB_LIFETIME_DAYS", 30),
		ReaperSchedule:  getEnv("REAPER_SCHEDULE", "@every 15m"),
		ReaperTimeout:   getEnvDuration("REAPER_TIMEOUT", 30*time.Second),
		RunMigrations:   getEnvBool("RUN_MIGRATIONS", true),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AuthJWTSecret == "" && cfg.AuthJWKSURL == "" {
		log.Println("WARNING: neither AUTH_JWT_SECRET nor AUTH_JWKS_URL is set. Protected routes will reject every token.")
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

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
