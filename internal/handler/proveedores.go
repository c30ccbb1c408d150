package handler

import (
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"

	"github.com/gin-gonic/gin"
)

// ProveedoresHandler proxies supplier CRUD to the gateway. Fields travel
// through untouched in both directions so a created supplier reads back
// exactly as submitted.
type ProveedoresHandler struct{ api gateway.ProveedoresAPI }

func NewProveedoresHandler(api gateway.ProveedoresAPI) *ProveedoresHandler {
	return &ProveedoresHandler{api: api}
}

func (h *ProveedoresHandler) Listar(c *gin.Context) {
	proveedores, err := h.api.GetAll(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, proveedores)
}

func (h *ProveedoresHandler) ObtenerPorID(c *gin.Context) {
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

func (h *ProveedoresHandler) Crear(c *gin.Context) {
	var req model.Proveedor
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

func (h *ProveedoresHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.Proveedor
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

func (h *ProveedoresHandler) Eliminar(c *gin.Context) {
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
