package handler

import (
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"

	"github.com/gin-gonic/gin"
)

// ProductosHandler proxies product CRUD to the gateway.
type ProductosHandler struct{ api gateway.ProductosAPI }

func NewProductosHandler(api gateway.ProductosAPI) *ProductosHandler {
	return &ProductosHandler{api: api}
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	productos, err := h.api.GetAll(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

// ListarPorProveedor serves the order form, whose product picker is scoped to
// the selected supplier.
func (h *ProductosHandler) ListarPorProveedor(c *gin.Context) {
	proveedorID, ok := paramID(c, "proveedorId")
	if !ok {
		return
	}
	productos, err := h.api.GetByProveedor(c.Request.Context(), proveedorID)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.api.GetByID(c.Request.Context(), id)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req model.Producto
	if !bindAndValidate(c, &req) {
		return
	}
	creado, err := h.api.Create(c.Request.Context(), req)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, creado)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.Producto
	if !bindAndValidate(c, &req) {
		return
	}
	actualizado, err := h.api.Update(c.Request.Context(), id, req)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, actualizado)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.api.Delete(c.Request.Context(), id); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
