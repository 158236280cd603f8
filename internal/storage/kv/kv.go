// Package kv определяет порт постоянного key-value хранилища каталога
// и его реализации. Значения — JSON-сериализованные коллекции, отсутствие
// ключа равнозначно пустой коллекции.
package kv

import (
	"context"
	"sync"
)

// Store описывает контракт key-value хранилища.
type Store interface {
	// Get возвращает значение по ключу; found равен false, если ключа нет.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set сохраняет значение по ключу, перезаписывая прежнее.
	Set(ctx context.Context, key, value string) error
}

// Memory реализует Store в памяти процесса. Используется в тестах
// и как деградированный режим, когда redis недоступен при старте.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory создает пустое хранилище в памяти.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get возвращает значение по ключу из памяти.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, found := m.data[key]
	return value, found, nil
}

// Set сохраняет значение по ключу в памяти.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
