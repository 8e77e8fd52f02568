// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. FINMGR_LOG_LEVEL.
const EnvPrefix = "FINMGR"

// Config represents the complete application configuration
type Config struct {
	Log           LogConfig           `mapstructure:"log" yaml:"log"`
	Ledger        LedgerConfig        `mapstructure:"ledger" yaml:"ledger"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	Seed          SeedConfig          `mapstructure:"seed" yaml:"seed"`
	CSV           CSVConfig           `mapstructure:"csv" yaml:"csv"`
	Render        RenderConfig        `mapstructure:"render" yaml:"render"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LedgerConfig keeps amounts as strings so that values such as "1000.50"
// survive viper's weak typing without float rounding.
type LedgerConfig struct {
	Currency            string `mapstructure:"currency" yaml:"currency"`
	SavingsGoal         string `mapstructure:"savings_goal" yaml:"savings_goal"`
	GoalIncrement       string `mapstructure:"goal_increment" yaml:"goal_increment"`
	LowBalanceThreshold string `mapstructure:"low_balance_threshold" yaml:"low_balance_threshold"`
	BillCategory        string `mapstructure:"bill_category" yaml:"bill_category"`
	RecentCount         int    `mapstructure:"recent_count" yaml:"recent_count"`
}

type NotificationsConfig struct {
	Policy string `mapstructure:"policy" yaml:"policy"`
}

type SeedConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

type RenderConfig struct {
	Style    string `mapstructure:"style" yaml:"style"`
	WordWrap int    `mapstructure:"word_wrap" yaml:"word_wrap"`
}

// InitializeConfigFromFile initializes Viper configuration with hierarchical
// loading. A non-empty configFile is read instead of searching the default
// locations, and an explicit file that cannot be read is an error.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.finance-manager")
		v.AddConfigPath(".finance-manager")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when no file, env var or
// flag overrides anything.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Unmarshalling plain defaults cannot fail.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Ledger defaults
	v.SetDefault("ledger.currency", "USD")
	v.SetDefault("ledger.savings_goal", "1000")
	v.SetDefault("ledger.goal_increment", "500")
	v.SetDefault("ledger.low_balance_threshold", "500")
	v.SetDefault("ledger.bill_category", "Rent")
	v.SetDefault("ledger.recent_count", 5)

	// Notification defaults
	v.SetDefault("notifications.policy", "append")

	// Seed defaults
	v.SetDefault("seed.file", "")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Render defaults
	v.SetDefault("render.style", "auto")
	v.SetDefault("render.word_wrap", 100)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if format := strings.ToLower(config.Log.Format); format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.Ledger.Currency) != 3 {
		return fmt.Errorf("ledger.currency must be a 3-letter ISO code, got: %s", config.Ledger.Currency)
	}

	goal, err := decimal.NewFromString(config.Ledger.SavingsGoal)
	if err != nil || !goal.IsPositive() {
		return fmt.Errorf("ledger.savings_goal must be a positive amount, got: %s", config.Ledger.SavingsGoal)
	}

	increment, err := decimal.NewFromString(config.Ledger.GoalIncrement)
	if err != nil || !increment.IsPositive() {
		return fmt.Errorf("ledger.goal_increment must be a positive amount, got: %s", config.Ledger.GoalIncrement)
	}

	threshold, err := decimal.NewFromString(config.Ledger.LowBalanceThreshold)
	if err != nil || threshold.IsNegative() {
		return fmt.Errorf("ledger.low_balance_threshold must be zero or more, got: %s", config.Ledger.LowBalanceThreshold)
	}

	if config.Ledger.RecentCount < 1 {
		return fmt.Errorf("ledger.recent_count must be at least 1, got: %d", config.Ledger.RecentCount)
	}

	switch strings.ToLower(config.Notifications.Policy) {
	case "append", "dedupe":
	default:
		return fmt.Errorf("invalid notification policy: %s (must be 'append' or 'dedupe')", config.Notifications.Policy)
	}

	// Validate CSV delimiter
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Render.WordWrap < 0 {
		return fmt.Errorf("render.word_wrap must not be negative, got: %d", config.Render.WordWrap)
	}

	return nil
}

// Validate re-checks the configuration, typically after flag overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// SavingsGoalAmount returns ledger.savings_goal. The config must have been validated.
func (c *Config) SavingsGoalAmount() decimal.Decimal {
	return mustAmount(c.Ledger.SavingsGoal)
}

// GoalIncrementAmount returns ledger.goal_increment. The config must have been validated.
func (c *Config) GoalIncrementAmount() decimal.Decimal {
	return mustAmount(c.Ledger.GoalIncrement)
}

// LowBalanceThresholdAmount returns ledger.low_balance_threshold. The config must have been validated.
func (c *Config) LowBalanceThresholdAmount() decimal.Decimal {
	return mustAmount(c.Ledger.LowBalanceThreshold)
}

// DelimiterRune returns the CSV delimiter as a rune, defaulting to a comma.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) != 1 {
		return ','
	}
	return r[0]
}

func mustAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
