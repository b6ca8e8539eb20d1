package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env             string
	AppSecret       string
	DatabaseURL     string
	JWTExpiry       time.Duration
	Port            string
	VideoDir        string
	LibrarySyncStep time.Duration // 0 表示不开启后台自动同步
}

// Load 加载配置
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "24"))
	syncMinutes, _ := strconv.Atoi(getEnv("LIBRARY_SYNC_MINUTES", "0"))

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "vidstream")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", "your-secret-key-change-in-production"))

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		AppSecret:       appSecret,
		DatabaseURL:     dbURL,
		JWTExpiry:       time.Duration(expiryHours) * time.Hour,
		Port:            getEnv("PORT", "3201"),
		VideoDir:        getEnv("VIDEO_DIR", "./videos"),
		LibrarySyncStep: time.Duration(syncMinutes) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
