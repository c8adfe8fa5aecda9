package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	AllowOrigins    string
	JWTSecret       string
	TokenTTLHours   int
	DefaultCurrency string
	RatesBaseURL    string
	RatesTTLMinutes int
	RedisAddr       string
	ReqTimeoutSec   int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" { return v }
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil { return i }
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:            getenv("PORT", "8080"),
		AllowOrigins:    getenv("ALLOW_ORIGINS", "*"),
		JWTSecret:       getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLHours:   atoi("TOKEN_TTL_HOURS", 24),
		DefaultCurrency: getenv("DEFAULT_CURRENCY", "ARS"),
		RatesBaseURL:    getenv("RATES_BASE_URL", "https://open.er-api.com/v6"),
		RatesTTLMinutes: atoi("RATES_TTL_MINUTES", 60),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		ReqTimeoutSec:   atoi("REQUEST_TIMEOUT_SECONDS", 30),
	}
}
