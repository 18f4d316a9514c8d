package handler

import (
	"net/http"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PagosHandler struct {
	svc service.PagoService
}

func NewPagosHandler(svc service.PagoService) *PagosHandler {
	return &PagosHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar un pago
// @Description Rechazado si la atención pertenece a un día ya cerrado.
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPagoRequest true "Pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /pagos [post]
func (h *PagosHandler) Crear(c *gin.Context) {
	var req dto.CrearPagoRequest
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
// @Summary Obtener pago por ID
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del pago"
// @Success 200 {object} dto.PagoResponse
// @Failure 404 {object} apierror.APIError
// @Router /pagos/{id} [get]
func (h *PagosHandler) Obtener(c *gin.Context) {
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
// @Summary Listar pagos
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Registros por página (default 10)"
// @Success 200 {object} dto.PagoListResponse
// @Router /pagos [get]
func (h *PagosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "page_size", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorAtencion godoc
// @Summary Pagos de una atención
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID de la atención"
// @Success 200 {array} dto.PagoResponse
// @Router /pagos/atencion/{id} [get]
func (h *PagosHandler) ListarPorAtencion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	pagos, err := h.svc.ListarPorAtencion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pagos": pagos})
}

// Eliminar godoc
// @Summary Eliminar un pago
// @Description Rechazado si la atención ya fue incluida en un cierre.
// @Tags pagos
// @Security BearerAuth
// @Param id path string true "UUID del pago"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /pagos/{id} [delete]
func (h *PagosHandler) Eliminar(c *gin.Context) {
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
