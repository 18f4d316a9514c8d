// Package apierror define los sobres de error que el backend devuelve al
// cliente. Todo 4xx/5xx pasa por acá: nunca se filtran errores internos
// de la base o stack traces.
package apierror

// APIError es el sobre estándar de error.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func (e *APIError) Error() string { return e.Detail }

// ValidationError agrupa errores de validación campo por campo.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
