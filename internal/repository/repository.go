package repository

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, когда ключа нет в хранилище
var ErrNotFound = errors.New("not found")

// DefaultStateKey ключ, под которым лежит снимок состояния
const DefaultStateKey = "zmart_state"

// BlobStore непрозрачное хранилище строк по ключу. Только get/set.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Closer хранилища с внешним соединением (Postgres, MongoDB)
type Closer interface {
	Close(ctx context.Context) error
}
