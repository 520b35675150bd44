package ports

import (
	"context"
	"time"
)

// KVEntry — одна запись батч-операции MSet.
type KVEntry struct {
	Key   string
	Value []byte
	TTL   time.Duration
}

// KVCache — интерфейс key-value кэша с TTL.
// Требования к реализации: операции никогда не возвращают ошибку наружу —
// сбои удалённого бэкенда логируются и деградируют в локальный фолбэк;
// признак успеха передаётся булевым флагом. Просроченные записи не
// возвращаются и вычищаются при обращении.
type KVCache interface {
	// Set — записать значение с TTL; best-effort, ошибки проглатываются.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool

	// Get — (значение, true) при валидной записи, (nil, false) при промахе/истечении.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Delete — удалить ключ из удалённого кэша и фолбэка.
	Delete(ctx context.Context, key string) bool

	// Exists — есть ли валидная (непросроченная) запись.
	Exists(ctx context.Context, key string) bool

	// MGet — батч-чтение; позиции результата соответствуют ключам,
	// промахи отмечены nil.
	MGet(ctx context.Context, keys ...string) [][]byte

	// MSet — батч-запись; при недоступности батча у бэкенда — по одному ключу.
	MSet(ctx context.Context, entries ...KVEntry) bool
}
