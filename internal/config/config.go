package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppEnv            string
	AppPort           string
	ShutdownTimeout   time.Duration
	TrustedProxies    []string
	TranslationFolder string

	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	DbMaxOpenConns    int
	DbMaxIdleConns    int
	DbConnMaxLifetime time.Duration

	RedisURL     string
	PostCacheTTL time.Duration

	AuthJWKSURL     string
	AuthAudience    string
	AuthIssuer      string
	AuthHS256Secret string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppEnv:            getEnv("APP_ENV", EnvProduction),
		AppPort:           getEnv("APP_PORT", "8080"),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		TranslationFolder: os.Getenv("TRANSLATION_FOLDER"),

		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "taskboard"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:            getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		DbMaxOpenConns:    getInt("MYSQL_MAX_OPEN_CONNS", 20),
		DbMaxIdleConns:    getInt("MYSQL_MAX_IDLE_CONNS", 10),
		DbConnMaxLifetime: getDuration("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),

		RedisURL:     os.Getenv("REDIS_URL"),
		PostCacheTTL: getDuration("POST_CACHE_TTL", time.Minute),

		AuthJWKSURL:     os.Getenv("AUTH_JWKS_URL"),
		AuthAudience:    os.Getenv("AUTH_AUDIENCE"),
		AuthIssuer:      os.Getenv("AUTH_ISSUER"),
		AuthHS256Secret: os.Getenv("AUTH_HS256_SECRET"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

// getDuration accepts Go duration strings ("90s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value = strings.TrimSpace(value)
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
