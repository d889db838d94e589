package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken string

	DBURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// WebhookURL switches the bot from long polling to webhook mode.
	WebhookURL string
	Port       string

	DefaultTimezone string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		DBURL:           os.Getenv("DB_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		WebhookURL:      os.Getenv("WEBHOOK_URL"),
		Port:            os.Getenv("PORT"),
		DefaultTimezone: os.Getenv("DEFAULT_TIMEZONE"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "Europe/Moscow"
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", cfg.DefaultTimezone, err)
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	return cfg, nil
}
