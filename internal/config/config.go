// Package config reads settings from the environment with sensible
// local-development defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string
	MySQLDSN string

	RedisAddr     string
	RedisPoolSize int

	// Fixed-window request throttling; zero limit disables a window.
	AnonRateLimit  int
	UserRateLimit  int
	ThrottleWindow time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:       getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/littlelemon?parseTime=true"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPoolSize:  getint("REDIS_POOL_SIZE", 100),
		AnonRateLimit:  getint("ANON_RATE_LIMIT", 20),
		UserRateLimit:  getint("USER_RATE_LIMIT", 100),
		ThrottleWindow: time.Duration(getint("THROTTLE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
