package config

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Telegram TelegramConfig `json:"telegram"`
	HTTP     HTTPConfig     `json:"http"`
	Logging  LoggingConfig  `json:"logging"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Port     int    `json:"port"`
	SSLMode  string `json:"sslmode"`
}

type TelegramConfig struct {
	Token string `json:"token"`
}

type HTTPConfig struct {
	Enabled   bool   `json:"enabled"`
	Addr      string `json:"addr"`
	JWTSecret string `json:"jwt_secret"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

var AppConfig Config

func LoadConfig(filename string) error {
	// Secrets may live in a .env file next to the config; missing is fine.
	_ = godotenv.Load()

	file, err := os.Open(filename)
	if err != nil {
		logger.Error("failed to open config file", "error", err)
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}

	applyEnvOverrides(&AppConfig)
	return nil
}

// applyEnvOverrides lets deployments keep secrets out of config.json.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.HTTP.JWTSecret = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
}
