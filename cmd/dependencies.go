package cmd

import (
	"context"
	"time"

	"golang-quant/config"
	"golang-quant/internal/repository"
	"golang-quant/internal/service"
	"golang-quant/pkg/cache"
	"golang-quant/pkg/logger"
	"golang-quant/pkg/postgres"
	"golang-quant/pkg/telegram"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
	"gorm.io/gorm"
)

type AppDependency struct {
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
	// db is nil when no database host is configured; run persistence is
	// simply skipped.
	db *postgres.DB
	// notifier is nil when Telegram is not configured.
	notifier *telegram.Notifier
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	dep := &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		echo:      echo.New(),
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
	}

	if cfg.DB.Enabled() {
		db, err := postgres.NewDB(cfg.DB, log)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return nil, err
		}
		dep.db = db
	}

	if cfg.Telegram.Enabled() {
		bot, err := telebot.NewBot(telebot.Settings{
			Token:  cfg.Telegram.BotToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				log.Error("Telegram bot error", zap.Error(err))
			},
		})
		if err != nil {
			// Notifications are optional; the run itself proceeds.
			log.Error("Failed to create telegram bot", zap.Error(err))
		} else {
			dep.notifier = telegram.NewNotifier(&cfg.Telegram, log, bot)
		}
	}

	return dep, nil
}

// NewServices builds the repository and service layers on top of the shared
// dependencies.
func (d *AppDependency) NewServices() (*service.Service, error) {
	var gormDB *gorm.DB
	if d.db != nil {
		gormDB = d.db.DB
	}

	repo, err := repository.NewRepository(d.cfg, d.cache, gormDB, d.log)
	if err != nil {
		return nil, err
	}

	return service.NewService(d.cfg, d.log, d.validator, repo, d.notifier), nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
