package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// Loader загрузка конфигурации слоями
type Loader struct {
	logger *slog.Logger
	getenv func(string) string
}

// NewLoader создаёт загрузчик; nil logger заменяется slog.Default
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, getenv: os.Getenv}
}

// Load собирает конфигурацию по приоритету:
// 1. Значения по умолчанию
// 2. Файл (явный путь или zmart.yaml в рабочем каталоге)
// 3. Переменные окружения
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	fileConfig, err := LoadFromFile(path)
	switch {
	case err == nil:
		l.logger.Debug("Loaded config", slog.String("path", path))
		config = fileConfig
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, err
	default:
		l.logger.Debug("No config file found, using defaults")
	}

	config.ApplyEnv(l.getenv)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
