package handler

import (
	"net/http"
	"time"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/middleware"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AtencionesHandler struct {
	svc service.AtencionService
}

func NewAtencionesHandler(svc service.AtencionService) *AtencionesHandler {
	return &AtencionesHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar una atención
// @Description Crea la atención con sus detalles y descuenta stock de los productos vendidos.
// @Tags atenciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearAtencionRequest true "Atención con detalles"
// @Success 201 {object} dto.AtencionResponse
// @Failure 400 {object} apierror.APIError
// @Router /atenciones [post]
func (h *AtencionesHandler) Crear(c *gin.Context) {
	claims := middleware.GetClaims(c)
	barberoID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return
	}
	var req dto.CrearAtencionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), barberoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary Obtener atención por ID
// @Tags atenciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la atención"
// @Success 200 {object} dto.AtencionResponse
// @Failure 404 {object} apierror.APIError
// @Router /atenciones/{id} [get]
func (h *AtencionesHandler) Obtener(c *gin.Context) {
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
// @Summary Listar atenciones
// @Tags atenciones
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Registros por página (default 10)"
// @Success 200 {object} dto.AtencionListResponse
// @Router /atenciones [get]
func (h *AtencionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "page_size", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualizar cabecera de una atención
// @Description Rechazada con 400 si la atención pertenece a un día ya cerrado.
// @Tags atenciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la atención"
// @Param body body dto.ActualizarAtencionRequest true "Campos a actualizar"
// @Success 200 {object} dto.AtencionResponse
// @Failure 400 {object} apierror.APIError
// @Router /atenciones/{id} [put]
func (h *AtencionesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarAtencionRequest
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

// ActualizarDetalles godoc
// @Summary Reemplazar los detalles de una atención
// @Description Reemplaza el set de líneas y concilia stock contra la diferencia.
// @Tags atenciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la atención"
// @Param body body dto.ActualizarDetallesRequest true "Nuevo set de detalles"
// @Success 200 {object} dto.AtencionResponse
// @Failure 400 {object} apierror.APIError
// @Router /atenciones/{id}/detalles [put]
func (h *AtencionesHandler) ActualizarDetalles(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarDetallesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarDetalles(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Eliminar una atención
// @Description Devuelve el stock de todas las líneas antes de borrar. Rechazada si el día está cerrado.
// @Tags atenciones
// @Security BearerAuth
// @Param id path string true "UUID de la atención"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /atenciones/{id} [delete]
func (h *AtencionesHandler) Eliminar(c *gin.Context) {
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

// ResumenBarbero godoc
// @Summary Resumen mensual de un barbero
// @Tags atenciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del barbero"
// @Param mes query int false "Mes 1-12 (default mes actual)"
// @Param anio query int false "Año (default año actual)"
// @Success 200 {object} dto.ResumenBarberoResponse
// @Router /atenciones/barbero/{id}/resumen [get]
func (h *AtencionesHandler) ResumenBarbero(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	ahora := time.Now()
	mes := queryInt(c, "mes", int(ahora.Month()))
	anio := queryInt(c, "anio", ahora.Year())
	resp, err := h.svc.ResumenBarbero(c.Request.Context(), id, mes, anio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
