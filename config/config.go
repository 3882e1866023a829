package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB    int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisOperatorDB int    `mapstructure:"REDIS_OPERATOR_DB"`
	RedisTaskDB     int    `mapstructure:"REDIS_TASK_DB"`

	// Upstream dispatch API.
	DispatchBaseURL string `mapstructure:"DISPATCH_BASE_URL"`
	OperatorToken   string `mapstructure:"OPERATOR_TOKEN"`

	// Fallback payment provider keys; operator params override these per tenant.
	StripeKey            string `mapstructure:"STRIPE_KEY"`
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`
	SquareApplicationID  string `mapstructure:"SQUARE_APPLICATION_ID"`
	SquareLocationID     string `mapstructure:"SQUARE_LOCATION_ID"`

	// Default ISO alpha-2 region for phone normalization.
	DefaultCountryCode string `mapstructure:"DEFAULT_COUNTRY_CODE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DRAFT_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_OPERATOR_DB", 2)
	viper.SetDefault("REDIS_TASK_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DISPATCH_BASE_URL", "https://dispatch.example.com")
	viper.SetDefault("OPERATOR_TOKEN", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_PUBLISHABLE_KEY", "")
	viper.SetDefault("SQUARE_APPLICATION_ID", "")
	viper.SetDefault("SQUARE_LOCATION_ID", "")
	viper.SetDefault("DEFAULT_COUNTRY_CODE", "US")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
