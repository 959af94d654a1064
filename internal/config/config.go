package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/trading/risk"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration
type Config struct {
	LogLevel string `yaml:"log_level"`

	Telegram struct {
		BotToken    string `yaml:"bot_token"`
		PollTimeout int    `yaml:"poll_timeout"`
		Timezone    string `yaml:"timezone"`
	} `yaml:"telegram"`

	MarketData struct {
		BaseURL         string        `yaml:"base_url"`
		Interval        string        `yaml:"interval"`
		Range           string        `yaml:"range"`
		RequestTimeout  time.Duration `yaml:"request_timeout"`
		RequestsPerSec  int           `yaml:"requests_per_sec"`
		MaxRetries      int           `yaml:"max_retries"`
		MaxRetryTimeout time.Duration `yaml:"max_retry_timeout"`
	} `yaml:"market_data"`

	Indicators models.IndicatorConfig `yaml:"indicators"`
	Risk       risk.Calculator        `yaml:"risk"`

	Cache struct {
		TTL           time.Duration `yaml:"ttl"`
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		KeyPrefix     string        `yaml:"key_prefix"`
	} `yaml:"cache"`

	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`

	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`

	Assets []models.AssetCategory `yaml:"assets"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	cfg := &Config{LogLevel: "info"}
	cfg.Telegram.PollTimeout = 60
	cfg.Telegram.Timezone = "Asia/Karachi"
	cfg.MarketData.Interval = "5m"
	cfg.MarketData.Range = "5d"
	cfg.MarketData.RequestTimeout = 30 * time.Second
	cfg.MarketData.RequestsPerSec = 5
	cfg.MarketData.MaxRetries = 3
	cfg.MarketData.MaxRetryTimeout = 30 * time.Second
	cfg.Indicators = models.DefaultIndicatorConfig()
	cfg.Risk = risk.NewCalculator()
	cfg.Cache.TTL = time.Minute
	cfg.Cache.KeyPrefix = "quotex:"
	cfg.Database.Port = "5432"
	cfg.Database.SSLMode = "disable"
	cfg.Schedule.Cron = "0 */15 * * * *"
	return cfg
}

// Load reads .env, then the YAML file at path, then applies environment
// variable overrides. A missing file or .env is not an error.
func Load(path string) (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if len(cfg.Assets) == 0 {
		cfg.Assets = DefaultAssets()
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", cfg.LogLevel)

	cfg.Telegram.BotToken = getEnvWithDefault("TELEGRAM_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.BotToken = getEnvWithDefault("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.Timezone = getEnvWithDefault("TIMEZONE", cfg.Telegram.Timezone)

	cfg.MarketData.BaseURL = getEnvWithDefault("YAHOO_BASE_URL", cfg.MarketData.BaseURL)
	cfg.MarketData.Interval = getEnvWithDefault("INTERVAL", cfg.MarketData.Interval)
	cfg.MarketData.Range = getEnvWithDefault("RANGE", cfg.MarketData.Range)
	cfg.MarketData.RequestTimeout = getEnvDurationWithDefault("REQUEST_TIMEOUT", cfg.MarketData.RequestTimeout)

	ind := &cfg.Indicators
	ind.RSIPeriod = getEnvIntWithDefault("RSI_PERIOD", ind.RSIPeriod)
	ind.RSIOverbought = getEnvFloatWithDefault("RSI_OVERBOUGHT", ind.RSIOverbought)
	ind.RSIOversold = getEnvFloatWithDefault("RSI_OVERSOLD", ind.RSIOversold)
	ind.MACDFastPeriod = getEnvIntWithDefault("MACD_FAST_PERIOD", ind.MACDFastPeriod)
	ind.MACDSlowPeriod = getEnvIntWithDefault("MACD_SLOW_PERIOD", ind.MACDSlowPeriod)
	ind.MACDSignalPeriod = getEnvIntWithDefault("MACD_SIGNAL_PERIOD", ind.MACDSignalPeriod)
	ind.BBPeriod = getEnvIntWithDefault("BB_PERIOD", ind.BBPeriod)
	ind.BBStdDev = getEnvFloatWithDefault("BB_STD_DEV", ind.BBStdDev)

	cfg.Risk.StopLossPct = getEnvFloatWithDefault("STOP_LOSS_PCT", cfg.Risk.StopLossPct)
	cfg.Risk.TakeProfitPct = getEnvFloatWithDefault("TAKE_PROFIT_PCT", cfg.Risk.TakeProfitPct)

	cfg.Cache.TTL = getEnvDurationWithDefault("CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.RedisAddr = getEnvWithDefault("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = getEnvWithDefault("REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = getEnvIntWithDefault("REDIS_DB", cfg.Cache.RedisDB)

	cfg.Database.Host = getEnvWithDefault("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvWithDefault("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnvWithDefault("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnvWithDefault("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnvWithDefault("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnvWithDefault("DB_SSLMODE", cfg.Database.SSLMode)

	cfg.Schedule.Cron = getEnvWithDefault("SCHEDULE_CRON", cfg.Schedule.Cron)
	cfg.Metrics.Addr = getEnvWithDefault("METRICS_ADDR", cfg.Metrics.Addr)
}

// Validate checks that the loaded values are usable
func (c *Config) Validate() error {
	if err := c.Indicators.Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if c.Risk.StopLossPct <= 0 || c.Risk.StopLossPct >= 1 {
		return fmt.Errorf("risk.stop_loss_pct must be within (0, 1), got %v", c.Risk.StopLossPct)
	}
	if c.Risk.TakeProfitPct <= 0 || c.Risk.TakeProfitPct >= 1 {
		return fmt.Errorf("risk.take_profit_pct must be within (0, 1), got %v", c.Risk.TakeProfitPct)
	}
	if _, err := time.LoadLocation(c.Telegram.Timezone); err != nil {
		return fmt.Errorf("telegram.timezone: %w", err)
	}
	if c.MarketData.RequestsPerSec <= 0 {
		return fmt.Errorf("market_data.requests_per_sec must be positive")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Schedule.Cron != "" {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
	}
	return nil
}

// ValidateBot additionally requires the settings only the bot needs
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required (or TELEGRAM_TOKEN)")
	}
	return nil
}

// FetchTimeout bounds one series fetch including its retries: a full
// request attempt plus the retry budget of the HTTP client.
func (c *Config) FetchTimeout() time.Duration {
	return c.MarketData.RequestTimeout + c.MarketData.MaxRetryTimeout
}

// PostgresEnabled reports whether a watchlist database is configured
func (c *Config) PostgresEnabled() bool {
	return c.Database.Host != "" && c.Database.Name != ""
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric environment value")
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid duration environment value")
	}
	return defaultValue
}
