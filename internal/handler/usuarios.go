package handler

import (
	"net/http"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsuariosHandler struct{ svc service.UsuarioService }

func NewUsuariosHandler(svc service.UsuarioService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear usuario
// @Description Alta de clientes y personal. La contraseña solo aplica a usuarios con acceso al sistema.
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearUsuarioRequest true "Datos del usuario"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /usuarios [post]
func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
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

// Listar godoc
// @Summary Listar usuarios
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Param nombre query string false "Filtro por nombre (subcadena)"
// @Param email query string false "Filtro por email (subcadena)"
// @Param rol query string false "Administrador | Barbero | Cliente"
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Registros por página (default 10)"
// @Success 200 {object} dto.UsuarioListResponse
// @Router /usuarios [get]
func (h *UsuariosHandler) Listar(c *gin.Context) {
	filter := dto.UsuarioFilter{
		Nombre:           c.Query("nombre"),
		Email:            c.Query("email"),
		Rol:              c.Query("rol"),
		SoloActivos:      c.DefaultQuery("activos", "true") == "true",
		OrdenarPor:       c.Query("ordenar_por"),
		OrdenDescendente: c.Query("orden") == "desc",
		Page:             queryInt(c, "page", 1),
		PageSize:         queryInt(c, "page_size", 10),
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarClientes godoc
// @Summary Listar clientes
// @Description Búsqueda rápida de clientes para el mostrador.
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Param nombre query string false "Filtro por nombre"
// @Success 200 {object} dto.UsuarioListResponse
// @Router /clientes [get]
func (h *UsuariosHandler) ListarClientes(c *gin.Context) {
	filter := dto.UsuarioFilter{
		Nombre:      c.Query("nombre"),
		SoloActivos: true,
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "page_size", 10),
	}
	resp, err := h.svc.ListarClientes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Obtener usuario por ID
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del usuario"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /usuarios/{id} [get]
func (h *UsuariosHandler) Obtener(c *gin.Context) {
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

// Actualizar godoc
// @Summary Actualizar usuario
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del usuario"
// @Param body body dto.ActualizarUsuarioRequest true "Campos a actualizar"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 404 {object} apierror.APIError
// @Router /usuarios/{id} [put]
func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarUsuarioRequest
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

// CambiarEstado godoc
// @Summary Activar o desactivar usuario
// @Tags usuarios
// @Accept json
// @Security BearerAuth
// @Param id path string true "UUID del usuario"
// @Param body body dto.CambiarEstadoRequest true "Estado deseado"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /usuarios/{id}/estado [patch]
func (h *UsuariosHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return
	}
	if err := h.svc.CambiarEstado(c.Request.Context(), id, req.Activo); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Eliminar godoc
// @Summary Eliminar usuario (baja lógica)
// @Tags usuarios
// @Security BearerAuth
// @Param id path string true "UUID del usuario"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /usuarios/{id} [delete]
func (h *UsuariosHandler) Eliminar(c *gin.Context) {
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

// ListarRoles godoc
// @Summary Listar roles disponibles
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /roles [get]
func (h *UsuariosHandler) ListarRoles(c *gin.Context) {
	roles, err := h.svc.ListarRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}
