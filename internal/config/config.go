package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AppName  string `mapstructure:"APP_NAME"`
	LogLevel string `mapstructure:"LOG_LEVEL"` // "debug", "info", "warn", "error"
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	// SQLite database file path. ":memory:" gives an ephemeral store.
	DBPath string `mapstructure:"DB_PATH"`

	// Stripe configuration. An empty secret key disables the payment step:
	// orders are completed immediately at creation (testing/fallback mode).
	StripeSecretKey    string        `mapstructure:"STRIPE_SECRET_KEY"`
	CheckoutSuccessURL string        `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string        `mapstructure:"CHECKOUT_CANCEL_URL"`
	PaymentTimeout     time.Duration `mapstructure:"PAYMENT_TIMEOUT"`
}

// PaymentsEnabled reports whether the Stripe-backed checkout flow is configured.
func (c Config) PaymentsEnabled() bool {
	return c.StripeSecretKey != ""
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("APP_NAME", "storefront-api")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")

	viper.SetDefault("DB_PATH", "storefront.db")

	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:5173/checkout/success?session_id={CHECKOUT_SESSION_ID}")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:5173/checkout/cancelled")
	viper.SetDefault("PAYMENT_TIMEOUT", 10*time.Second)

	if err = viper.ReadInConfig(); err == nil {
		log.Info().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Info().Msg("No config file found, using environment variables and defaults.")
		err = nil
	} else {
		log.Error().Err(err).Msg("Error reading config file")
		return
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = viper.Unmarshal(&config)
	return
}
