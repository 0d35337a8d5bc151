package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agripay/agripay/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerConfig   `validate:"required"`
	Postgres PostgresConfig `validate:"required"`
	Logging  LoggingConfig  `validate:"required"`
	Billing  BillingConfig  `validate:"required"`
	Quote    QuoteConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// BillingConfig carries the pricing constants of the subscription program.
// Amounts are whole currency units (FCFA).
type BillingConfig struct {
	// NormalRatePerHectare is the access fee per hectare when no promotion
	// window is active.
	NormalRatePerHectare int64 `mapstructure:"normal_rate_per_hectare" validate:"required,min=1"`
	// DailyRate prices the recurring contribution per elapsed day.
	DailyRate int64 `mapstructure:"daily_rate" validate:"required,min=1"`
	// DefaultPeriodDays sizes the recommended top-up when a subscriber has
	// no contribution history.
	DefaultPeriodDays int `mapstructure:"default_period_days" validate:"required,min=1"`
	// FiscalPivotMonth is the month (1-12) the campaign year opens on.
	FiscalPivotMonth int `mapstructure:"fiscal_pivot_month" validate:"required,min=1,max=12"`
}

// QuoteConfig protects the pre-payment quote endpoint. When Secret is empty
// the endpoint is open.
type QuoteConfig struct {
	Secret string
}

type CacheConfig struct {
	Enabled bool
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/agripay")

	v.SetEnvPrefix("AGRIPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("billing.normal_rate_per_hectare", 30000)
	v.SetDefault("billing.daily_rate", 65)
	v.SetDefault("billing.default_period_days", 30)
	v.SetDefault("billing.fiscal_pivot_month", 10)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for tests and scripts
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server:  ServerConfig{Address: ":8080"},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
		Billing: BillingConfig{
			NormalRatePerHectare: 30000,
			DailyRate:            65,
			DefaultPeriodDays:    30,
			FiscalPivotMonth:     10,
		},
		Cache: CacheConfig{Enabled: false},
	}
}

// NormalRate returns the per-hectare access fee rate as a decimal
func (b BillingConfig) NormalRate() decimal.Decimal {
	return decimal.NewFromInt(b.NormalRatePerHectare)
}

// ContributionDailyRate returns the daily dues rate as a decimal
func (b BillingConfig) ContributionDailyRate() decimal.Decimal {
	return decimal.NewFromInt(b.DailyRate)
}

// DefaultPeriodAmount is one default period's worth of contributions
func (b BillingConfig) DefaultPeriodAmount() decimal.Decimal {
	return b.ContributionDailyRate().Mul(decimal.NewFromInt(int64(b.DefaultPeriodDays)))
}

// PivotMonth returns the campaign pivot as a time.Month
func (b BillingConfig) PivotMonth() time.Month {
	return time.Month(b.FiscalPivotMonth)
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
