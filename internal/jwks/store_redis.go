package jwks

import (
	"context"
	"errors"

	rdb "github.com/redis/go-redis/v9"
)

// RedisStore guarda el documento bajo la clave Prefix+name, sin expiración.
// Útil cuando el contenedor no tiene filesystem escribible.
type RedisStore struct {
	c      rdb.UniversalClient
	prefix string
}

// NewRedisStore crea un store sobre un cliente go-redis ya configurado.
func NewRedisStore(c rdb.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{c: c, prefix: prefix}
}

// DialRedis crea el cliente con las opciones mínimas que expone la config.
func DialRedis(addr string, db int) *rdb.Client {
	return rdb.NewClient(&rdb.Options{Addr: addr, DB: db})
}

func (s *RedisStore) Location(name string) string {
	return "redis:" + s.prefix + name
}

func (s *RedisStore) Exists(ctx context.Context, name string) (bool, error) {
	n, err := s.c.Exists(ctx, s.prefix+name).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Read(ctx context.Context, name string) ([]byte, error) {
	b, err := s.c.Get(ctx, s.prefix+name).Bytes()
	if errors.Is(err, rdb.Nil) {
		return nil, errors.New("redis: document not found")
	}
	return b, err
}

func (s *RedisStore) Write(ctx context.Context, name string, data []byte) error {
	return s.c.Set(ctx, s.prefix+name, data, 0).Err()
}

// Close libera el cliente subyacente.
func (s *RedisStore) Close() error {
	return s.c.Close()
}
