package worker

// Jobs que agotaron sus reintentos se estacionan en una lista Redis por
// cola de origen (dlq:{cola}) para inspección manual.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// DLQEntry conserva el job fallido junto con el motivo y el momento del fallo.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339
	Attempts      int             `json:"attempts"`
}

// DLQ es la cola de fallidos sobre Redis.
type DLQ struct {
	rdb *redis.Client
}

func NewDLQ(rdb *redis.Client) *DLQ {
	return &DLQ{rdb: rdb}
}

// Park estaciona un job fallido. Nunca devuelve error: si la DLQ misma
// falla solo se registra, el worker no debe caerse por esto.
func (d *DLQ) Park(ctx context.Context, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo serializar la entrada")
		return
	}
	if err := d.rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push falló")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job estacionado")
}

// Len informa cuántos jobs estacionados tiene una cola, para monitoreo.
func (d *DLQ) Len(ctx context.Context, queue string) (int64, error) {
	return d.rdb.LLen(ctx, dlqPrefix+queue).Result()
}
