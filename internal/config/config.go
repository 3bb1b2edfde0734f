// Package config конфигурация сервиса zmart.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile ищется в рабочем каталоге, если путь не задан
const DefaultConfigFile = "zmart.yaml"

// Драйверы хранилища
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config полная конфигурация сервиса
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	LLM     LLMConfig     `yaml:"llm"`
	NATS    NATSConfig    `yaml:"nats"`
	Log     LogConfig     `yaml:"log"`
}

// HTTPConfig параметры HTTP API
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища для снимка состояния
type StorageConfig struct {
	// Driver один из memory, file, postgres, mongo
	Driver string `yaml:"driver"`
	// Dir каталог для драйвера file
	Dir string `yaml:"dir"`
	// DSN строка подключения для postgres или mongo
	DSN string `yaml:"dsn"`
	// Database имя базы MongoDB
	Database string `yaml:"database"`
	// Key ключ снимка в хранилище
	Key string `yaml:"key"`
}

// LLMConfig параметры генератора описаний
type LLMConfig struct {
	// Endpoint базовый URL OpenAI-совместимого API
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

// NATSConfig уведомления об изменении состояния (пустой URL = выключены)
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig конфигурация по умолчанию
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":9091",
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Driver:   DriverFile,
			Dir:      "data",
			Database: "zmart",
			Key:      "zmart_state",
		},
		LLM: LLMConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:    "gemini-3-flash-preview",
			Timeout:  30 * time.Second,
		},
		NATS: NATSConfig{
			Subject: "zmart.state.changed",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file driver")
		}
	case DriverPostgres, DriverMongo:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s driver", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key is required")
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		return fmt.Errorf("nats.subject is required when nats.url is set")
	}
	return nil
}

// SlogLevel уровень slog по log.level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// LoadFromFile читает YAML поверх значений по умолчанию
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// ApplyEnv переопределяет часть полей из окружения
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	set(&c.HTTP.Addr, "ZMART_ADDR")
	set(&c.Storage.Driver, "ZMART_STORAGE_DRIVER")
	set(&c.Storage.DSN, "ZMART_STORAGE_DSN")
	set(&c.Storage.Dir, "ZMART_STORAGE_DIR")
	set(&c.LLM.APIKey, "ZMART_LLM_API_KEY", "GEMINI_API_KEY")
	set(&c.NATS.URL, "ZMART_NATS_URL")
	set(&c.Log.Level, "ZMART_LOG_LEVEL")
}
