package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger             `mapstructure:"logger"`
	DB           Database           `mapstructure:"database"`
	API          API                `mapstructure:"api"`
	YahooFinance YahooFinanceConfig `mapstructure:"yahoo_finance"`
	Cache        Cache              `mapstructure:"cache"`
	Market       Market             `mapstructure:"market"`
	Simulation   Simulation         `mapstructure:"simulation"`
	Backtest     Backtest           `mapstructure:"backtest"`
	Scheduler    Scheduler          `mapstructure:"scheduler"`
	Telegram     TelegramConfig     `mapstructure:"telegram"`
	Gemini       GeminiConfig       `mapstructure:"gemini"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

// Enabled reports whether run persistence is configured at all.
func (d Database) Enabled() bool {
	return d.Host != ""
}

type API struct {
	Port int `mapstructure:"port"`
}

type YahooFinanceConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// Market holds day-count conventions. These are explicit configuration, not
// package constants, so concurrent runs can use different conventions.
type Market struct {
	TradingDaysPerYear int `mapstructure:"trading_days_per_year"`
}

type Simulation struct {
	DefaultDays  int `mapstructure:"default_days"`
	DefaultPaths int `mapstructure:"default_paths"`
	Workers      int `mapstructure:"workers"`
}

type Backtest struct {
	StartingCash   float64  `mapstructure:"starting_cash"`
	DefaultEpochs  int      `mapstructure:"default_epochs"`
	MinWindow      int      `mapstructure:"min_window"`
	SMAShortWindow int      `mapstructure:"sma_short_window"`
	SMALongWindow  int      `mapstructure:"sma_long_window"`
	CooldownDays   int      `mapstructure:"cooldown_days"`
	Tickers        []string `mapstructure:"tickers"`
}

type Scheduler struct {
	Enabled  bool     `mapstructure:"enabled"`
	CronSpec string   `mapstructure:"cron_spec"`
	Tickers  []string `mapstructure:"tickers"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

type GeminiConfig struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

func Load() (*Config, error) {
	// .env is optional; viper picks the variables up afterwards.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, defaults plus env carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", "30s")
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)

	viper.SetDefault("cache.default_expiration", "15m")
	viper.SetDefault("cache.cleanup_interval", "30m")

	viper.SetDefault("market.trading_days_per_year", 252)

	viper.SetDefault("simulation.default_days", 252)
	viper.SetDefault("simulation.default_paths", 1000)
	viper.SetDefault("simulation.workers", 4)

	viper.SetDefault("backtest.starting_cash", 10000)
	viper.SetDefault("backtest.default_epochs", 200)
	viper.SetDefault("backtest.min_window", 300)
	viper.SetDefault("backtest.sma_short_window", 50)
	viper.SetDefault("backtest.sma_long_window", 255)
	viper.SetDefault("backtest.cooldown_days", 30)
	viper.SetDefault("backtest.tickers", []string{"AAPL", "MSFT", "GOOG", "AMZN", "JPM", "XOM", "KO", "JNJ"})

	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.cron_spec", "0 18 * * 1-5")

	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.max_request_per_minute", 10)
	viper.SetDefault("gemini.max_token_per_minute", 100000)
}
