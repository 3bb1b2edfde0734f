package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"zmart/internal/domain"
)

// Snapshots сохраняет и загружает полный снимок AppState одним блобом
type Snapshots struct {
	blobs  BlobStore
	key    string
	logger *slog.Logger
}

func NewSnapshots(blobs BlobStore, key string, logger *slog.Logger) *Snapshots {
	if key == "" {
		key = DefaultStateKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshots{blobs: blobs, key: key, logger: logger}
}

// Load читает снимок. Отсутствующий или нечитаемый блоб даёт DefaultState без ошибки;
// ошибка хранилища возвращается вместе с DefaultState.
func (s *Snapshots) Load(ctx context.Context) (domain.AppState, error) {
	raw, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("no saved state, using defaults", slog.String("key", s.key))
		return domain.DefaultState(), nil
	}
	if err != nil {
		return domain.DefaultState(), fmt.Errorf("load state: %w", err)
	}
	st, err := Decode(raw)
	if err != nil {
		s.logger.Warn("saved state is malformed, using defaults",
			slog.String("key", s.key), slog.String("error", err.Error()))
		return domain.DefaultState(), nil
	}
	return st, nil
}

// Save пишет снимок целиком
func (s *Snapshots) Save(ctx context.Context, st domain.AppState) error {
	raw, err := Encode(st)
	if err != nil {
		return err
	}
	if err := s.blobs.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Encode сериализует снимок в JSON
func Encode(st domain.AppState) (string, error) {
	data, err := json.Marshal(st.Normalize())
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

// Decode разбирает JSON снимка. Проверяется только структура.
func Decode(raw string) (domain.AppState, error) {
	var st *domain.AppState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return domain.AppState{}, fmt.Errorf("decode state: %w", err)
	}
	if st == nil {
		return domain.AppState{}, errors.New("decode state: empty document")
	}
	return st.Normalize(), nil
}
