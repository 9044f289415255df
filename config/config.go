package config

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds everything the app reads from the environment.
type Config struct {
	AppPort   string
	GinMode   string
	DBDriver  string
	DBDSN     string
	JWTSecret string

	GatewayBaseURL    string
	GatewayAPIKey     string
	GatewayMerchantID string
}

// Load reads configuration from the environment with sane defaults.
// godotenv has already populated the environment from .env by the time
// this runs (see main).
func Load() *Config {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "canteen.db")
	viper.SetDefault("GATEWAY_BASE_URL", "https://api.razorpay.com/v1")
	viper.AutomaticEnv()

	return &Config{
		AppPort:           viper.GetString("APP_PORT"),
		GinMode:           viper.GetString("GIN_MODE"),
		DBDriver:          viper.GetString("DB_DRIVER"),
		DBDSN:             viper.GetString("DB_DSN"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		GatewayBaseURL:    viper.GetString("GATEWAY_BASE_URL"),
		GatewayAPIKey:     viper.GetString("GATEWAY_API_KEY"),
		GatewayMerchantID: viper.GetString("GATEWAY_MERCHANT_ID"),
	}
}

// InitDB opens the configured database. MySQL for deployments,
// SQLite for local development and tests.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	case "sqlite", "":
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
