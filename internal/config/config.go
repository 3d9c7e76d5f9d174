package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	JWTSecret       string
	TokenTTL        time.Duration
	SessionLifetime time.Duration
	CacheTTL        time.Duration
	CacheSize       int
	PageSize        int
	MediaRoot       string
	SeedFile        string // YAML с группами, применяется при старте
}

// DBConfig - параметры подключения к PostgreSQL (все обязательны)
type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

// Load читает настройки сервера из окружения, для отсутствующих берет значения по умолчанию
func Load() Config {
	return Config{
		Addr:            GetEnvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        GetDurationDefault("JWT_TTL", 72*time.Hour),
		SessionLifetime: GetDurationDefault("SESSION_LIFETIME", 24*time.Hour),
		CacheTTL:        GetDurationDefault("FEED_CACHE_TTL", 20*time.Second),
		CacheSize:       GetIntDefault("FEED_CACHE_SIZE", 128),
		PageSize:        GetIntDefault("PAGE_SIZE", 10),
		MediaRoot:       GetEnvDefault("MEDIA_ROOT", "media"),
		SeedFile:        os.Getenv("SEED_FILE"),
	}
}

func LoadDB() DBConfig {
	return DBConfig{
		Host:     GetEnv("DB_HOST"),
		User:     GetEnv("DB_USER"),
		Password: GetEnv("DB_PASSWORD"),
		Name:     GetEnv("DB_NAME"),
		Port:     GetEnv("DB_PORT"),
		SSLMode:  GetEnvDefault("DB_SSLMODE", "disable"),
	}
}

func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("environment variable %s is not set", key)
	}
	return value
}

func GetEnvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func GetDurationDefault(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration in %s=%q, using %s", key, value, def)
		return def
	}
	return d
}

func GetIntDefault(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("invalid number in %s=%q, using %d", key, value, def)
		return def
	}
	return n
}
