package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	DBDSN       string
	JWTSecret   string
	JWTTTLHours int
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	UpstreamBaseURL string
	UpstreamToken   string
}

const defaultDSN = "root:@tcp(127.0.0.1:3306)/fleet_console?parseTime=true&loc=Local&charset=utf8mb4&clientFoundRows=true&timeout=5s&readTimeout=30s&writeTimeout=30s"

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:         getenv("APP_ADDR", ":8080"),
		GinMode:         getenv("GIN_MODE", ""),
		DBDSN:           getenv("DB_DSN", defaultDSN),
		JWTSecret:       getenv("JWT_SECRET", "change-me"),
		JWTTTLHours:     getenvInt("JWT_TTL_HOURS", 24),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "json"),
		CORSOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		UpstreamBaseURL: getenv("UPSTREAM_BASE_URL", ""),
		UpstreamToken:   getenv("UPSTREAM_TOKEN", ""),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
