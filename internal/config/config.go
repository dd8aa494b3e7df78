package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string
	MySQLDSN         string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	JWTSecret        string
	StripeSecretKey  string
	StripeCurrency   string
	CORSAllowOrigins []string
	LogLevel         string
	SwaggerHost      string
	ResetDB          bool
	SeedMenuSource   string
	SeedReviewSource string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:       getEnv("PORT", "5000"),
		MySQLDSN:         getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/bistro?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET_KEY", "change-me"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeCurrency:   getEnv("STRIPE_CURRENCY", "usd"),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
		ResetDB:          os.Getenv("RESET_DB") == "true",
		SeedMenuSource:   getEnv("SEED_MENU_SOURCE", "seed/menu.json"),
		SeedReviewSource: getEnv("SEED_REVIEWS_SOURCE", "seed/reviews.json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
