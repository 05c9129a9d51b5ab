package utils

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort  string `yaml:"APP_PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`

	// Database configuration
	DBUser           string `yaml:"DB_USER"`
	DBName           string `yaml:"DB_NAME"`
	DBPassword       string `yaml:"DB_PASSWORD"`
	DBPort           string `yaml:"DB_PORT"`
	DBHost           string `yaml:"DB_HOST"`
	DBPoolSize       string `yaml:"DB_POOL_SIZE"`
	DBConnectTimeout string `yaml:"DB_CONNECT_TIMEOUT"`

	// JWT key
	JWTSecret string `yaml:"JWT_SECRET"`

	// Deployment webhook
	WebhookSecret     string `yaml:"W_SECRET"`
	DeployDir         string `yaml:"DEPLOY_DIR"`
	DeployNotifyEmail string `yaml:"DEPLOY_NOTIFY_EMAIL"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":           "8080",
	"LOG_LEVEL":          "info",
	"DB_PORT":            "5432",
	"DB_POOL_SIZE":       "5",
	"DB_CONNECT_TIMEOUT": "10",
	"DEPLOY_DIR":         "./mysite",
}

// LoadConfig reads config.yaml, or the file named by CONFIG_PATH. A missing
// file is not fatal: every key can also come from the environment.
func LoadConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Warnw("config file not readable, using environment", "path", path, "error", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Errorw("config file not parseable, using environment", "path", path, "error", err)
		return
	}
}

// GetConfig returns the yaml value for key, then the environment variable of
// the same name, then the built-in default.
func GetConfig(key string) string {
	if v := fromFile(key); v != "" {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "LOG_LEVEL":
		return config.LogLevel
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_POOL_SIZE":
		return config.DBPoolSize
	case "DB_CONNECT_TIMEOUT":
		return config.DBConnectTimeout
	case "JWT_SECRET":
		return config.JWTSecret
	case "W_SECRET":
		return config.WebhookSecret
	case "DEPLOY_DIR":
		return config.DeployDir
	case "DEPLOY_NOTIFY_EMAIL":
		return config.DeployNotifyEmail
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	default:
		return ""
	}
}
