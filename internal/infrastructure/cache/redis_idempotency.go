// Package cache adaptadores sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Documentos-api/internal/application/ports"
)

var _ ports.IdempotencyStore = (*RedisIdempotencyStore)(nil)

const pendingMarker = "pending"

// RedisIdempotencyStore guarda respuestas por Idempotency-Key con TTL.
// La reserva usa SETNX: solo la primera petición con la clave ejecuta la operación.
type RedisIdempotencyStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisIdempotencyStore construye el store. prefix separa claves por aplicación.
func NewRedisIdempotencyStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, prefix: prefix, ttl: ttl}
}

// Connect abre el cliente desde una URL redis:// y verifica la conexión.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	opt.MaxRetries = 3
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func (s *RedisIdempotencyStore) key(k string) string {
	return s.prefix + ":idem:" + k
}

// Begin reserva la clave. Devuelve la respuesta guardada si la hay, o
// ports.ErrIdempotencyInProgress si otra petición la tiene reservada.
func (s *RedisIdempotencyStore) Begin(ctx context.Context, k string) (*ports.IdempotentResponse, error) {
	ok, err := s.client.SetNX(ctx, s.key(k), pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if ok {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, s.key(k)).Result()
	if errors.Is(err, redis.Nil) {
		// expiró entre SETNX y GET
		return s.Begin(ctx, k)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	if raw == pendingMarker {
		return nil, ports.ErrIdempotencyInProgress
	}
	var resp ports.IdempotentResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("idempotency: respuesta corrupta: %w", err)
	}
	return &resp, nil
}

// Complete guarda la respuesta final con el TTL configurado.
func (s *RedisIdempotencyStore) Complete(ctx context.Context, k string, resp ports.IdempotentResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(k), data, s.ttl).Err()
}

// Abort libera la clave para que un reintento pueda ejecutar la operación.
func (s *RedisIdempotencyStore) Abort(ctx context.Context, k string) error {
	return s.client.Del(ctx, s.key(k)).Err()
}
