package service

import (
	"strings"

	"github.com/google/uuid"
)

// newID префикс + 12 hex-символов случайного UUID
func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
