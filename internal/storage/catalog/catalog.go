// Package catalog реализует хранилище каталога портала поверх key-value порта:
// CRUD по планам и пользователям, назначение планов с upsert-подпиской,
// выставление счетов и идемпотентное согласование демонстрационных данных
// при инициализации.
//
// Семантика отказов: ошибка чтения хранилища деградирует до пустой коллекции,
// ошибка записи логируется, а операция отвечает вызывающему по состоянию
// в памяти. Ни одна операция каталога не возвращает ошибку персистентности.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
	"github.com/ccastillovega/inventario-portal/internal/storage/kv"
)

// Ключи коллекций в key-value хранилище.
const (
	keyPlans         = "plans"
	keyUsers         = "users"
	keySubscriptions = "subscriptions"
	keyInvoices      = "invoices"
)

// ErrPlanInUse возвращается при попытке удалить план, на который ещё
// ссылается пользователь или подписка.
var ErrPlanInUse = errors.New("plan is referenced by a user or subscription")

// Store инкапсулирует key-value хранилище и реализует операции каталога.
type Store struct {
	kv  kv.Store
	log *slog.Logger

	// Назначение id и upsert требуют атомарного чтения-изменения коллекции.
	mu sync.Mutex

	now func() time.Time
}

// New создает хранилище каталога и выполняет согласование демонстрационных
// данных. Повторный запуск на уже согласованных данных ничего не меняет.
func New(ctx context.Context, store kv.Store, log *slog.Logger) *Store {
	s := &Store{
		kv:  store,
		log: log,
		now: time.Now,
	}
	s.seed(ctx)
	return s
}

// loadCollection читает коллекцию из хранилища. Любая ошибка чтения или
// разбора логируется, вызывающему отдаётся пустая коллекция.
func loadCollection[T any](ctx context.Context, s *Store, key string) []T {
	const op = "catalog.loadCollection"
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Error("failed to read collection, using empty fallback",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Error("failed to decode collection, using empty fallback",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
		return nil
	}
	return items
}

// saveCollection сериализует и записывает коллекцию. Запись — best effort:
// ошибка логируется, состояние в памяти остаётся ответом вызывающему.
func saveCollection[T any](ctx context.Context, s *Store, key string, items []T) {
	const op = "catalog.saveCollection"
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Error("failed to encode collection",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
		return
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.log.Error("failed to persist collection",
			slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
}

// nextID возвращает max(id) + 1 по коллекции, либо 1 для пустой.
func nextID[T any](items []T, id func(T) int) int {
	maxID := 0
	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}
