package worker

// escalation_cron.go
// Background goroutine that periodically escalates movilizaciones stuck in
// "pendiente" past the configured threshold (72h by default). The same sweep
// is reachable over HTTP for an external scheduler, guarded by CRON_SECRET.

import (
	"context"
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/service"

	"github.com/rs/zerolog/log"
)

// StartEscalationCron launches the sweep loop. It respects the context for
// graceful shutdown and runs one pass immediately on startup so a restart
// never extends the review window.
func StartEscalationCron(ctx context.Context, svc service.MovilizacionService, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("escalation_cron: started")
		sweep(ctx, svc)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("escalation_cron: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, svc)
			}
		}
	}()
}

func sweep(ctx context.Context, svc service.MovilizacionService) {
	count, err := svc.EscalarPendientes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("escalation_cron: sweep failed")
		return
	}
	if count > 0 {
		log.Info().Int("escaladas", count).Msg("escalation_cron: movilizaciones escaladas a alerta")
	}
}
