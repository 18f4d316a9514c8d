package worker

// email_worker.go
// Processes mail jobs from QueueEmail: low-stock alerts raised after a day is
// closed, and closing summaries with the PDF report attached. Sends go through
// a circuit breaker so a dead SMTP relay does not stall the pool; jobs that
// still fail land in the DLQ for manual inspection.

import (
	"context"
	"encoding/json"

	"github.com/edulopezdev/forestBarber/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail     string `json:"to_email"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	AdjuntoPath string `json:"adjunto_path,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	dlq    *DLQ
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{
		mailer: mailer,
		dlq:    NewDLQ(rdb),
		cb:     infra.NewCircuitBreaker(infra.DefaultCBConfig()),
	}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.AdjuntoPath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		w.dlq.Park(ctx, QueueEmail, "email", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: sent")
}
