package worker

// cierre_pdf_worker.go
// Processes closing-report jobs from QueueCierrePDF:
//  1. Fetch the persisted CierreDiario (with its payment breakdown)
//  2. Render the PDF report with go-pdf/fpdf
//  3. Enqueue an email job with the PDF attached, when a recipient is set

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edulopezdev/forestBarber/internal/infra"
	"github.com/edulopezdev/forestBarber/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CierrePDFJobPayload is the job envelope sent to QueueCierrePDF.
type CierrePDFJobPayload struct {
	CierreID string `json:"cierre_id"`
}

type CierrePDFWorker struct {
	cierreRepo     repository.CierreDiarioRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	alertsEmailTo  string
}

func NewCierrePDFWorker(
	cierreRepo repository.CierreDiarioRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	alertsEmailTo string,
) *CierrePDFWorker {
	return &CierrePDFWorker{
		cierreRepo:     cierreRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		alertsEmailTo:  alertsEmailTo,
	}
}

func (w *CierrePDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload CierrePDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cierre_pdf_worker: invalid payload")
		return
	}
	cierreID, err := uuid.Parse(payload.CierreID)
	if err != nil {
		log.Error().Str("cierre_id", payload.CierreID).Msg("cierre_pdf_worker: invalid cierre_id")
		return
	}

	cierre, err := w.cierreRepo.FindByID(ctx, cierreID)
	if err != nil {
		log.Error().Err(err).Str("cierre_id", payload.CierreID).Msg("cierre_pdf_worker: cierre not found")
		return
	}

	pdfPath, err := infra.GenerarCierrePDF(cierre, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("cierre_id", payload.CierreID).Msg("cierre_pdf_worker: pdf generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Msg("cierre_pdf_worker: report generated")

	if w.alertsEmailTo == "" {
		return
	}
	fecha := cierre.Fecha.Format("2006-01-02")
	mail := EmailJobPayload{
		ToEmail:     w.alertsEmailTo,
		Subject:     fmt.Sprintf("Cierre de caja %s", fecha),
		Body:        fmt.Sprintf("Se cerró la caja del %s. Total del día: $%s.", fecha, cierre.TotalVentasDia.StringFixed(2)),
		AdjuntoPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, mail); err != nil {
		log.Error().Err(err).Msg("cierre_pdf_worker: enqueue email failed")
	}
}
