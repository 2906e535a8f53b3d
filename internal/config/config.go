package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the server configuration, read from the environment (and .env).
type Config struct {
	Port              string
	BaseURL           string
	DBDriver          string
	DBDSN             string
	JWTSecret         string
	TokenTTL          time.Duration
	CORSOrigins       []string
	AllowRegistration bool
	AdminUsername     string
	AdminPassword     string
	UploadDir         string
	PDFFontPath       string
	GeminiAPIKey      string
	Redis             RedisConfig
	Minio             MinioConfig
	RabbitMQURL       string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
	Bucket    string
}

// Load reads the server configuration with defaults suitable for local use.
func Load() Config {
	port := getEnv("PORT", "8080")
	return Config{
		Port:              port,
		BaseURL:           getEnv("BASE_URL", "http://localhost:"+port),
		DBDriver:          getEnv("DB_DRIVER", "mysql"),
		DBDSN:             os.Getenv("DB_DSN"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Duration(ParseInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AllowRegistration: ParseBool("ALLOW_REGISTRATION", false),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		PDFFontPath:       os.Getenv("PDF_FONT_PATH"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       ParseInt("REDIS_DB", 0),
		},
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Secure:    ParseBool("MINIO_SECURE", false),
			Bucket:    getEnv("MINIO_BUCKET", "quote-logos"),
		},
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

// ParseInt reads an env var as int with default.
func ParseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
