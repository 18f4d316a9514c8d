package handler

import (
	"net/http"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TurnosHandler struct {
	svc service.TurnoService
}

func NewTurnosHandler(svc service.TurnoService) *TurnosHandler {
	return &TurnosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear un turno
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTurnoRequest true "Turno"
// @Success 201 {object} dto.TurnoResponse
// @Failure 400 {object} apierror.APIError
// @Router /turnos [post]
func (h *TurnosHandler) Crear(c *gin.Context) {
	var req dto.CrearTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary Obtener turno por ID
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del turno"
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /turnos/{id} [get]
func (h *TurnosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Listar turnos
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Registros por página (default 10)"
// @Success 200 {object} map[string]interface{}
// @Router /turnos [get]
func (h *TurnosHandler) Listar(c *gin.Context) {
	turnos, pagination, err := h.svc.Listar(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "page_size", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turnos": turnos, "pagination": pagination})
}

// PorFecha godoc
// @Summary Turnos de una fecha
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "YYYY-MM-DD (default hoy)"
// @Success 200 {array} dto.TurnoResponse
// @Router /turnos/fecha [get]
func (h *TurnosHandler) PorFecha(c *gin.Context) {
	fecha, ok := parseFechaQuery(c)
	if !ok {
		return
	}
	turnos, err := h.svc.ListarPorFecha(c.Request.Context(), fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turnos": turnos})
}

// PorCliente godoc
// @Summary Turnos de un cliente
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del cliente"
// @Success 200 {array} dto.TurnoResponse
// @Router /turnos/cliente/{id} [get]
func (h *TurnosHandler) PorCliente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	turnos, err := h.svc.ListarPorCliente(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turnos": turnos})
}

// PorEstado godoc
// @Summary Turnos en un estado del catálogo
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Param nombre path string true "Pendiente | Confirmado | Cancelado | Atendido"
// @Success 200 {array} dto.TurnoResponse
// @Router /turnos/estado/{nombre} [get]
func (h *TurnosHandler) PorEstado(c *gin.Context) {
	turnos, err := h.svc.ListarPorEstado(c.Request.Context(), c.Param("nombre"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"turnos": turnos})
}

// Actualizar godoc
// @Summary Actualizar un turno
// @Tags turnos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del turno"
// @Param body body dto.ActualizarTurnoRequest true "Campos a actualizar"
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /turnos/{id} [put]
func (h *TurnosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Eliminar un turno
// @Tags turnos
// @Security BearerAuth
// @Param id path string true "UUID del turno"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /turnos/{id} [delete]
func (h *TurnosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Estados godoc
// @Summary Estados de turno disponibles
// @Tags turnos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /turnos/estados [get]
func (h *TurnosHandler) Estados(c *gin.Context) {
	estados, err := h.svc.ListarEstados(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estados": estados})
}
