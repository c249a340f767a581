// @title        Income Expenses API
// @version      1.0
// @description  個人收支記帳後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"income-expenses-api/internal/cache"
	"income-expenses-api/internal/config"
	"income-expenses-api/internal/database"
	"income-expenses-api/internal/mail"
	"income-expenses-api/internal/router"
	"income-expenses-api/internal/service"
	"income-expenses-api/internal/validate"
	"income-expenses-api/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	_ "income-expenses-api/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	newMailer       = buildMailer
	exitFunc        = os.Exit
)

func buildMailer(cfg *config.Config, logger mail.Logger) (mail.Mailer, error) {
	switch cfg.MailDriver {
	case config.MailDriverSMTP:
		return mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	case config.MailDriverAMQP:
		return mail.NewAMQPMailer(cfg.AMQPURL, cfg.AMQPQueue)
	default:
		return &mail.LogMailer{Logger: logger}, nil
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	e := echo.New()
	e.Validator = validate.New()
	e.Logger.SetLevel(glog.INFO)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	mailer, err := newMailer(cfg, e.Logger)
	if err != nil {
		return fmt.Errorf("Mailer 建立失敗: %v", err)
	}
	defer mailer.Close()

	// 先停 worker pool 再關 mailer，佇列中的信件會寄完
	wp := newWorkerPool(cfg.WorkerCount, cfg.MailQueueSize, func(r interface{}) {
		e.Logger.Errorf("mail worker panic: %v", r)
	})
	defer wp.Stop()

	tokens, err := service.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.VerifyTokenTTL)
	if err != nil {
		return err
	}
	resets, err := service.NewResetTokens(cfg.JWTSecret, cfg.PasswordResetTimeout)
	if err != nil {
		return err
	}

	accounts := &service.Accounts{
		DB:      db,
		Cache:   redis,
		Tokens:  tokens,
		Resets:  resets,
		Outbox:  mail.NewDispatcher(wp, mailer, e.Logger),
		BaseURL: cfg.PublicBaseURL,
	}
	router.Setup(e, db, redis, accounts)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
