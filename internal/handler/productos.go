package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/edulopezdev/forestBarber/internal/apierror"
	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductosHandler struct {
	svc              service.ProductoService
	stock            service.StockService
	imageStoragePath string
}

func NewProductosHandler(svc service.ProductoService, stock service.StockService, imageStoragePath string) *ProductosHandler {
	return &ProductosHandler{svc: svc, stock: stock, imageStoragePath: imageStoragePath}
}

// Crear godoc
// @Summary Crear producto o servicio
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProductoServicioRequest true "Datos del producto o servicio"
// @Success 201 {object} dto.ProductoServicioResponse
// @Failure 400 {object} apierror.APIError
// @Router /productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoServicioRequest
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
// @Summary Listar productos y servicios
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param nombre query string false "Filtro por nombre (subcadena)"
// @Param almacenable query bool false "Solo productos (true) o solo servicios (false)"
// @Param activo query string false "'' activos | false | all"
// @Param page query int false "Página (default 1)"
// @Param page_size query int false "Registros por página (default 10)"
// @Success 200 {object} dto.ProductoListResponse
// @Router /productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	filter := dto.ProductoFilter{
		Nombre:   c.Query("nombre"),
		Activo:   c.Query("activo"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 10),
	}
	if v := c.Query("almacenable"); v != "" {
		b := v == "true"
		filter.EsAlmacenable = &b
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary Obtener producto o servicio por ID
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del producto"
// @Success 200 {object} dto.ProductoServicioResponse
// @Failure 404 {object} apierror.APIError
// @Router /productos/{id} [get]
func (h *ProductosHandler) Obtener(c *gin.Context) {
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
// @Summary Actualizar producto o servicio
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del producto"
// @Param body body dto.ActualizarProductoServicioRequest true "Campos a actualizar"
// @Success 200 {object} dto.ProductoServicioResponse
// @Failure 404 {object} apierror.APIError
// @Router /productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarProductoServicioRequest
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
// @Summary Eliminar producto o servicio (baja lógica)
// @Tags productos
// @Security BearerAuth
// @Param id path string true "UUID del producto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /productos/{id} [delete]
func (h *ProductosHandler) Eliminar(c *gin.Context) {
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

// AjustarStock godoc
// @Summary Ajuste manual de stock
// @Description Corrección de inventario por recuento, rotura o reposición.
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID del producto"
// @Param body body dto.AjustarStockRequest true "Delta y motivo"
// @Success 200 {object} dto.ProductoServicioResponse
// @Failure 400 {object} apierror.APIError
// @Router /productos/{id}/stock [patch]
func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BajoStock godoc
// @Summary Productos con stock bajo
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProductoServicioResponse
// @Router /productos/bajo-stock [get]
func (h *ProductosHandler) BajoStock(c *gin.Context) {
	resp, err := h.stock.ResumenBajoStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productos": resp})
}

// SubirImagen godoc
// @Summary Adjuntar imagen a un producto
// @Tags productos
// @Accept multipart/form-data
// @Security BearerAuth
// @Param id path string true "UUID del producto"
// @Param imagen formData file true "Archivo de imagen (jpg/png/webp)"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /productos/{id}/imagen [post]
func (h *ProductosHandler) SubirImagen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	file, err := c.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el archivo 'imagen'"))
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.JSON(http.StatusBadRequest, apierror.New("Formato de imagen no soportado"))
		return
	}

	nombre := fmt.Sprintf("producto_%s%s", id, ext)
	destino := filepath.Join(h.imageStoragePath, nombre)
	if err := c.SaveUploadedFile(file, destino); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo guardar la imagen"))
		return
	}
	if err := h.svc.AdjuntarImagen(c.Request.Context(), id, nombre); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
