package ports

import (
	"context"
	"errors"
)

// ErrIdempotencyInProgress otra petición con la misma clave aún no termina.
var ErrIdempotencyInProgress = errors.New("idempotency: petición en curso")

// IdempotentResponse respuesta guardada para repetir ante la misma Idempotency-Key.
type IdempotentResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore puerto de salida para deduplicar creaciones por clave.
// Begin reserva la clave; si ya existe una respuesta completa la devuelve.
type IdempotencyStore interface {
	Begin(ctx context.Context, key string) (*IdempotentResponse, error)
	Complete(ctx context.Context, key string, resp IdempotentResponse) error
	Abort(ctx context.Context, key string) error
}
