package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSeedBossUsername = "Shammi Kapoor"
	DefaultSeedBossPassword = "admin123"
)

type Config struct {
	DBDriver         string `yaml:"db_driver"`
	DBPath           string `yaml:"db_path"`
	DBHost           string `yaml:"db_host"`
	DBPort           string `yaml:"db_port"`
	DBUser           string `yaml:"db_user"`
	DBPassword       string `yaml:"db_password"`
	DBName           string `yaml:"db_name"`
	SessionStore     string `yaml:"session_store"`
	RedisHost        string `yaml:"redis_host"`
	RedisPort        string `yaml:"redis_port"`
	SessionSecret    string `yaml:"session_secret"`
	GinMode          string `yaml:"gin_mode"`
	LogLevel         string `yaml:"log_level"`
	SeedBossUsername string `yaml:"seed_boss_username"`
	SeedBossPassword string `yaml:"seed_boss_password"`
	Port             string `yaml:"port"`
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and finally the environment, each layer overriding the previous.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.SessionStore = getEnv("SESSION_STORE", cfg.SessionStore)
	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.SeedBossUsername = getEnv("SEED_BOSS_USERNAME", cfg.SeedBossUsername)
	cfg.SeedBossPassword = getEnv("SEED_BOSS_PASSWORD", cfg.SeedBossPassword)
	cfg.Port = getEnv("PORT", cfg.Port)

	switch cfg.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.SessionStore {
	case "cookie", "redis":
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DBDriver:         "sqlite",
		DBPath:           "data/team_task_manager.db",
		DBHost:           "localhost",
		DBPort:           "3306",
		DBUser:           "taskuser",
		DBPassword:       "taskpassword",
		DBName:           "task_management",
		SessionStore:     "cookie",
		RedisHost:        "localhost",
		RedisPort:        "6379",
		SessionSecret:    "default-secret-key-change-me",
		GinMode:          "debug",
		LogLevel:         "info",
		SeedBossUsername: DefaultSeedBossUsername,
		SeedBossPassword: DefaultSeedBossPassword,
		Port:             "8080",
	}
}

// mergeFile overlays the non-empty values found in a YAML file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	overlay(&c.DBDriver, file.DBDriver)
	overlay(&c.DBPath, file.DBPath)
	overlay(&c.DBHost, file.DBHost)
	overlay(&c.DBPort, file.DBPort)
	overlay(&c.DBUser, file.DBUser)
	overlay(&c.DBPassword, file.DBPassword)
	overlay(&c.DBName, file.DBName)
	overlay(&c.SessionStore, file.SessionStore)
	overlay(&c.RedisHost, file.RedisHost)
	overlay(&c.RedisPort, file.RedisPort)
	overlay(&c.SessionSecret, file.SessionSecret)
	overlay(&c.GinMode, file.GinMode)
	overlay(&c.LogLevel, file.LogLevel)
	overlay(&c.SeedBossUsername, file.SeedBossUsername)
	overlay(&c.SeedBossPassword, file.SeedBossPassword)
	overlay(&c.Port, file.Port)

	return nil
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
