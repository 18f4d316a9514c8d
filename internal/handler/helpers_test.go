package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edulopezdev/forestBarber/internal/repository"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_MapeaSentinelas(t *testing.T) {
	gin.SetMode(gin.TestMode)

	casos := []struct {
		nombre string
		err    error
		status int
	}{
		{"no encontrado", service.ErrNoEncontrado, http.StatusNotFound},
		{"password", service.ErrPasswordInvalido, http.StatusUnauthorized},
		{"atencion cerrada", service.ErrAtencionCerrada, http.StatusBadRequest},
		{"stock insuficiente", repository.ErrStockInsuficiente, http.StatusBadRequest},
		{"entrada envuelta", fmt.Errorf("descontando stock: %w", service.ErrEntradaInvalida), http.StatusBadRequest},
	}
	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, caso.err)
			assert.Equal(t, caso.status, w.Code)
		})
	}
}

// Un error sin marcar es una falla interna: no se responde acá, se adjunta
// al contexto para que ErrorHandler emita el 500 genérico sin filtrar el
// detalle al cliente.
func TestRespondError_ErrorDesconocidoVaAlMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("dial tcp: conexión rechazada"))

	assert.True(t, c.IsAborted())
	require.Len(t, c.Errors, 1)
	assert.Empty(t, w.Body.String())
}
