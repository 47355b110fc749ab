package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/application/ports"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

// HeaderIdempotencyKey cabecera con la clave de idempotencia del cliente.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay marca respuestas repetidas desde el almacén.
const HeaderIdempotentReplay = "Idempotent-Replayed"

const maxIdempotencyKeyLen = 200

// Idempotency deduplica POSTs con Idempotency-Key. Sin cabecera o sin almacén la petición
// pasa tal cual. Solo se guardan respuestas 2xx; cualquier otro resultado libera la clave
// para que el cliente pueda reintentar.
// Debe usarse DESPUÉS de AuthMiddleware: la clave se aísla por usuario y ruta.
func Idempotency(store ports.IdempotencyStore, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if store == nil || key == "" {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return badRequest(c, "INVALID_IDEMPOTENCY_KEY", "Idempotency-Key demasiado larga")
		}
		scoped := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key

		ctx := c.UserContext()
		prev, err := store.Begin(ctx, scoped)
		switch {
		case errors.Is(err, ports.ErrIdempotencyInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:  "IDEMPOTENCY_IN_PROGRESS",
				Error: "ya hay una petición en curso con esta Idempotency-Key",
			})
		case err != nil:
			// Sin Redis se atiende la petición sin deduplicar.
			log.Error().Err(err).Str("path", c.Path()).Msg("idempotencia no disponible")
			return c.Next()
		case prev != nil:
			c.Set(HeaderIdempotentReplay, "true")
			if prev.ContentType != "" {
				c.Set(fiber.HeaderContentType, prev.ContentType)
			}
			return c.Status(prev.Status).Send(prev.Body)
		}

		if err := c.Next(); err != nil {
			abort(c, store, scoped, log)
			return err
		}
		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			abort(c, store, scoped, log)
			return nil
		}
		resp := ports.IdempotentResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Complete(ctx, scoped, resp); err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("no se pudo guardar la respuesta idempotente")
		}
		return nil
	}
}

func abort(c *fiber.Ctx, store ports.IdempotencyStore, key string, log *logger.Logger) {
	if err := store.Abort(c.UserContext(), key); err != nil {
		log.Error().Err(err).Str("path", c.Path()).Msg("no se pudo liberar la clave de idempotencia")
	}
}
