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
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Onboarding policy switches. SkipEmailVerification is consulted in exactly
	// one place (the wizard controller), never per-handler.
	SkipEmailVerification bool `mapstructure:"SKIP_EMAIL_VERIFICATION"`
	PhotoRequired         bool `mapstructure:"PHOTO_REQUIRED"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisCodeDB   int    `mapstructure:"REDIS_CODE_DB"`

	// SMTP configuration for verification emails. Leaving SMTP_HOST empty puts
	// the mailer in log-only mode.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASS"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	// WebAuthn relying party settings for biometric enrollment.
	RPID     string `mapstructure:"RP_ID"`
	RPName   string `mapstructure:"RP_NAME"`
	RPOrigin string `mapstructure:"RP_ORIGIN"`
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
	viper.SetDefault("SKIP_EMAIL_VERIFICATION", false)
	viper.SetDefault("PHOTO_REQUIRED", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_CODE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "no-reply@roomly.app")
	viper.SetDefault("RP_ID", "localhost")
	viper.SetDefault("RP_NAME", "Roomly")
	viper.SetDefault("RP_ORIGIN", "http://localhost:5173")

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
