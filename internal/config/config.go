package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort       string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int
	RedisAddr     string
	RedisPassword string
	UploadDir     string
	MaxUploadMB   int
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	maxUpload, _ := strconv.Atoi(get("MAX_UPLOAD_MB", "10"))
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: expires,
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		UploadDir:     get("UPLOAD_DIR", "./uploads"),
		MaxUploadMB:   maxUpload,
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
