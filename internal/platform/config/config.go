package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Lockout tuning for the credential engine.
	LockoutThreshold int
	LockoutBaseBlock time.Duration
	LockoutMaxBlock  time.Duration

	// Rate limit for the credential endpoints, in limiter format (e.g. "5-M").
	AuthRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "spendlog-backend")
	viper.SetDefault("LOCKOUT_THRESHOLD", 5)
	viper.SetDefault("LOCKOUT_BASE_BLOCK", "15m")
	viper.SetDefault("LOCKOUT_MAX_BLOCK", "24h")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid JWT_EXPIRY_DURATION. Defaulting to %s.\n", jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.LockoutThreshold = viper.GetInt("LOCKOUT_THRESHOLD")
	if cfg.LockoutThreshold < 1 {
		cfg.LockoutThreshold = 5
		log.Printf("Warning: Invalid LOCKOUT_THRESHOLD. Defaulting to %d.\n", cfg.LockoutThreshold)
	}

	baseBlock, err := time.ParseDuration(viper.GetString("LOCKOUT_BASE_BLOCK"))
	if err != nil || baseBlock <= 0 {
		baseBlock = 15 * time.Minute
		log.Printf("Warning: Invalid LOCKOUT_BASE_BLOCK. Defaulting to %s.\n", baseBlock)
	}
	cfg.LockoutBaseBlock = baseBlock

	maxBlock, err := time.ParseDuration(viper.GetString("LOCKOUT_MAX_BLOCK"))
	if err != nil || maxBlock < baseBlock {
		maxBlock = 24 * time.Hour
		log.Printf("Warning: Invalid LOCKOUT_MAX_BLOCK. Defaulting to %s.\n", maxBlock)
	}
	cfg.LockoutMaxBlock = maxBlock

	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	return cfg, nil
}
