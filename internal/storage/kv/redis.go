package kv

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ccastillovega/inventario-portal/internal/config"
)

// Redis реализует Store поверх redis. Коллекции каталога живут
// без срока жизни: redis здесь — постоянное хранилище, а не кеш.
type Redis struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Redis, error) {
	const op = "kv.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db}, nil
}

// Get возвращает значение по ключу; redis.Nil трактуется как отсутствие ключа.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "kv.Get"
	val, err := r.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set сохраняет значение по ключу без срока жизни.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	const op = "kv.Set"
	if err := r.Db.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с redis.
func (r *Redis) Close() error {
	return r.Db.Close()
}
