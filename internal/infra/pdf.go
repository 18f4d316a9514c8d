package infra

// pdf.go — closing report generation using go-pdf/fpdf.
// Produces an A4 summary of a daily register closing: sold-product and
// service totals, grand total, and the per-payment-method breakdown.
// The output file is saved to storagePath/cierre_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/edulopezdev/forestBarber/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarCierrePDF writes the PDF report for a persisted CierreDiario.
// storagePath is created if needed. Returns the absolute path of the file.
func GenerarCierrePDF(cierre *model.CierreDiario, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}

	fecha := cierre.Fecha.Format("2006-01-02")
	filePath := filepath.Join(storagePath, fmt.Sprintf("cierre_%s.pdf", fecha))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Forest Barber", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, "Cierre de caja", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Fecha: %s", fecha), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Cerrado el %s", cierre.FechaCierre.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Totals table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.6, 7, "Concepto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.6, 7, "Productos vendidos", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "$ "+cierre.TotalProductosVendidos.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.6, 7, "Servicios prestados", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "$ "+cierre.TotalServiciosVendidos.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.6, 8, "Total del día", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 8, "$ "+cierre.TotalVentasDia.StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Payment breakdown
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 7, "Pagos por método", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range cierre.Pagos {
		pdf.CellFormat(contentW*0.6, 6, p.MetodoPago, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, "$ "+p.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if cierre.Observaciones != nil && *cierre.Observaciones != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 7, "Observaciones", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, *cierre.Observaciones, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir %s: %w", filePath, err)
	}
	return filePath, nil
}
