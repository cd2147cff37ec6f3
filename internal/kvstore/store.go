// Package kvstore хранит JSON-документы по строковым ключам.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Ключи коллекций приложения
const (
	KeyMedications         = "@medications"
	KeyOrders              = "@orders"
	KeyCart                = "@cart"
	KeyUser                = "@user"
	KeyNotificationMapping = "@notification_mapping"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Store асинхронное key-value хранилище: get/set/remove JSON-значений
type Store interface {
	// Get декодирует значение в dst. found=false, если ключа нет.
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

func encode(key string, value any) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return b, nil
}

func decode(key string, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Backend имя реализации хранилища
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendMongo  Backend = "mongo"
)

// ParseBackend case-insensitive, пустая строка означает memory
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendMemory, nil
	case BackendMemory, BackendRedis, BackendMongo:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}
