package worker

// dlq.go — cola de correos fallidos.
// Notification mail that SMTP refused lands in a Redis list so an operator
// can inspect or replay it; the queue itself never blocks on retries.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQEmail is the Redis list holding undeliverable notification mail.
const DLQEmail = "dlq:" + QueueEmail

// CorreoFallido is one undeliverable notification, with enough context to
// retry the send by hand.
type CorreoFallido struct {
	Destinatario string    `json:"destinatario"`
	Asunto       string    `json:"asunto"`
	HTML         string    `json:"html"`
	Motivo       string    `json:"motivo"`
	FallidoEn    time.Time `json:"fallido_en"`
	Intentos     int       `json:"intentos"`
}

func nuevoCorreoFallido(p EmailJobPayload, motivo string, intentos int) CorreoFallido {
	return CorreoFallido{
		Destinatario: p.To,
		Asunto:       p.Subject,
		HTML:         p.HTML,
		Motivo:       motivo,
		FallidoEn:    time.Now().UTC(),
		Intentos:     intentos,
	}
}

// GuardarCorreoFallido pushes an undeliverable notification onto DLQEmail.
func GuardarCorreoFallido(ctx context.Context, rdb *redis.Client, p EmailJobPayload, motivo string, intentos int) {
	entry := nuevoCorreoFallido(p, motivo, intentos)

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("destinatario", entry.Destinatario).Msg("dlq: no se pudo serializar el correo fallido")
		return
	}
	if err := rdb.LPush(ctx, DLQEmail, data).Err(); err != nil {
		log.Error().Err(err).Str("destinatario", entry.Destinatario).Msg("dlq: no se pudo guardar el correo fallido")
		return
	}

	log.Warn().
		Str("destinatario", entry.Destinatario).
		Str("asunto", entry.Asunto).
		Str("motivo", motivo).
		Int("intentos", intentos).
		Msg("dlq: correo movido a la cola de fallidos")
}

// CorreosFallidos returns the DLQ depth; the health endpoint reports it.
func CorreosFallidos(ctx context.Context, rdb *redis.Client) (int64, error) {
	return rdb.LLen(ctx, DLQEmail).Result()
}
