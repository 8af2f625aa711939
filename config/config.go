package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	BaseURL   string
	DBHost    string
	DBUser    string
	DBPass    string
	DBName    string
	DBPort    string
	RedisAddr string
	JWTSecret string
}

func Load() *Config {
	_ = godotenv.Load() // .env is optional, real deployments use the environment

	port := getEnv("PORT", "5001")

	return &Config{
		Port:      port,
		BaseURL:   getEnv("BASE_URL", "http://localhost:"+port),
		DBHost:    getEnv("DB_HOST", "127.0.0.1"),
		DBUser:    getEnv("DB_USER", "urlshortener"),
		DBPass:    getEnv("DB_PASSWORD", "urlshortener"),
		DBName:    getEnv("DB_NAME", "urlshortener"),
		DBPort:    getEnv("DB_PORT", "5432"),
		RedisAddr: getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
