package handler

import (
	"net/http"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/middleware"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	svc      service.AuthService
	usuarios service.UsuarioService
}

func NewAuthHandler(svc service.AuthService, usuarios service.UsuarioService) *AuthHandler {
	return &AuthHandler{svc: svc, usuarios: usuarios}
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Perfil godoc
// @Summary Perfil del usuario autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsuarioResponse
// @Failure 401 {object} apierror.APIError
// @Router /auth/perfil [get]
func (h *AuthHandler) Perfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return
	}
	resp, err := h.usuarios.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPerfil godoc
// @Summary Actualizar el perfil propio
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ActualizarPerfilRequest true "Datos del perfil"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /auth/perfil [put]
func (h *AuthHandler) ActualizarPerfil(c *gin.Context) {
	var req dto.ActualizarPerfilRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return
	}
	resp, err := h.usuarios.ActualizarPerfil(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
