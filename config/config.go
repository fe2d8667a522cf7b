package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// License backend.
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	// Public origin of this service, used to build checkout return URLs.
	AppBaseURL string `mapstructure:"APP_BASE_URL"`

	// Stripe configuration.
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`
	StripeSecretKey      string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePriceID        string `mapstructure:"STRIPE_PRICE_ID"`

	// Signup flow.
	DemoMode          bool `mapstructure:"DEMO_MODE"`
	CollectAPIKey     bool `mapstructure:"COLLECT_API_KEY"`
	SessionTTLMinutes int  `mapstructure:"SESSION_TTL_MINUTES"`

	// Redis configuration. An empty address keeps wizard sessions in memory.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
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

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig.APIBaseURL = strings.TrimRight(AppConfig.APIBaseURL, "/")
	AppConfig.AppBaseURL = strings.TrimRight(AppConfig.AppBaseURL, "/")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("API_BASE_URL", "http://localhost:8005")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("STRIPE_PUBLISHABLE_KEY", "")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_PRICE_ID", "")
	v.SetDefault("DEMO_MODE", false)
	v.SetDefault("COLLECT_API_KEY", true)
	v.SetDefault("SESSION_TTL_MINUTES", 30)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
