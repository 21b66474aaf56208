package worker

// email_worker.go
// Processes notification jobs from QueueEmail and delivers them via SMTP.
// A failed send goes straight to the DLQ — notification mail is not worth
// blocking the queue with in-band retries.

import (
	"context"
	"encoding/json"

	"github.com/Xdennizhu20X/back-abg/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type EmailWorker struct {
	rdb    *redis.Client
	mailer *infra.Mailer
}

func NewEmailWorker(rdb *redis.Client, mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{rdb: rdb, mailer: mailer}
}

// Process delivers one notification email.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.HTML); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: failed to send email")
		GuardarCorreoFallido(ctx, w.rdb, payload, err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: notification sent")
}
