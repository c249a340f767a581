// Package config 從環境變數讀取服務設定
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Mail drivers
const (
	MailDriverLog  = "log"
	MailDriverSMTP = "smtp"
	MailDriverAMQP = "amqp"
)

type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisDB       int
	RedisPassword string
	JWTSecret     string

	HTTPAddr      string
	PublicBaseURL string
	WorkerCount   int
	MailQueueSize int

	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	VerifyTokenTTL       time.Duration
	PasswordResetTimeout time.Duration

	MailDriver   string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AMQPURL      string
	AMQPQueue    string
}

var lookupEnv = os.LookupEnv

func required(key string) (string, error) {
	v, ok := lookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("環境變數 %s 未設定", key)
	}
	return v, nil
}

func optional(key, def string) string {
	if v, ok := lookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func positiveInt(key string, def int) (int, error) {
	v := optional(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return n, nil
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := optional(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}

// Load 讀取並檢查所有設定
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	if cfg.DatabaseURL, err = required("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisAddr, err = required("REDIS_ADDR"); err != nil {
		return nil, err
	}
	redisDB, err := required("REDIS_DB")
	if err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = strconv.Atoi(redisDB); err != nil || cfg.RedisDB < 0 {
		return nil, fmt.Errorf("無效的 REDIS_DB: %q", redisDB)
	}
	if cfg.RedisPassword, err = required("REDIS_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = required("JWT_SECRET"); err != nil {
		return nil, err
	}

	cfg.HTTPAddr = optional("HTTP_ADDR", ":8080")
	cfg.PublicBaseURL = optional("PUBLIC_BASE_URL", "http://localhost:8080")
	if cfg.WorkerCount, err = positiveInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.MailQueueSize, err = positiveInt("MAIL_QUEUE_SIZE", 64); err != nil {
		return nil, err
	}

	if cfg.AccessTokenTTL, err = duration("ACCESS_TOKEN_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = duration("REFRESH_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.VerifyTokenTTL, err = duration("VERIFY_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PasswordResetTimeout, err = duration("PASSWORD_RESET_TIMEOUT", 72*time.Hour); err != nil {
		return nil, err
	}

	cfg.MailDriver = optional("MAIL_DRIVER", MailDriverLog)
	switch cfg.MailDriver {
	case MailDriverLog:
	case MailDriverSMTP:
		if cfg.SMTPHost, err = required("SMTP_HOST"); err != nil {
			return nil, err
		}
		if cfg.SMTPFrom, err = required("SMTP_FROM"); err != nil {
			return nil, err
		}
		if cfg.SMTPPort, err = positiveInt("SMTP_PORT", 587); err != nil {
			return nil, err
		}
		cfg.SMTPUsername = optional("SMTP_USERNAME", "")
		cfg.SMTPPassword = optional("SMTP_PASSWORD", "")
	case MailDriverAMQP:
		if cfg.AMQPURL, err = required("AMQP_URL"); err != nil {
			return nil, err
		}
		cfg.AMQPQueue = optional("AMQP_QUEUE", "email_outbox")
	default:
		return nil, fmt.Errorf("無效的 MAIL_DRIVER: %q", cfg.MailDriver)
	}
	return cfg, nil
}
