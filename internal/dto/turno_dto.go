package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearTurnoRequest struct {
	FechaHora string `json:"fecha_hora" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	BarberoID string `json:"barbero_id" validate:"required,uuid"`
	Estado    string `json:"estado"     validate:"required"`
}

type ActualizarTurnoRequest struct {
	FechaHora string `json:"fecha_hora" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	BarberoID string `json:"barbero_id" validate:"omitempty,uuid"`
	Estado    string `json:"estado"     validate:"omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TurnoResponse struct {
	ID            string `json:"id"`
	FechaHora     string `json:"fecha_hora"`
	ClienteID     string `json:"cliente_id"`
	ClienteNombre string `json:"cliente_nombre"`
	BarberoID     string `json:"barbero_id"`
	BarberoNombre string `json:"barbero_nombre"`
	Estado        string `json:"estado"`
}
