package handler

import (
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/apierror"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/dto"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/service"

	"github.com/gin-gonic/gin"
)

// OrdenesHandler exposes purchase orders. Plain CRUD proxies the gateway;
// creation with line items goes through the OrdenService assembler.
type OrdenesHandler struct {
	ordenes  gateway.OrdenesAPI
	detalles gateway.DetallesAPI
	svc      service.OrdenService
}

func NewOrdenesHandler(ordenes gateway.OrdenesAPI, detalles gateway.DetallesAPI, svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{ordenes: ordenes, detalles: detalles, svc: svc}
}

func (h *OrdenesHandler) Listar(c *gin.Context) {
	ordenes, err := h.ordenes.GetAll(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordenes)
}

func (h *OrdenesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	orden, err := h.ordenes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, orden)
}

// ObtenerCompleta returns the order together with its supplier and line items
// for the detail view.
func (h *OrdenesHandler) ObtenerCompleta(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	completa, err := h.svc.ObtenerCompleta(c.Request.Context(), id)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrdenCompletaResponse{
		Orden:     completa.Orden,
		Proveedor: completa.Proveedor,
		Detalles:  completa.Detalles,
	})
}

// CrearCompleta validates stock and creates the order with its line items,
// falling back from the gateway's atomic endpoint to order+detalles. Stock
// and assembly failures come back as 422 so the form can show them inline
// without discarding the user's selection.
func (h *OrdenesHandler) CrearCompleta(c *gin.Context) {
	var req dto.CrearOrdenCompletaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	items := make([]service.ItemOrden, len(req.Productos))
	for i, p := range req.Productos {
		items[i] = service.ItemOrden{
			ProductoID:     p.ProductoID,
			Cantidad:       p.Cantidad,
			PrecioUnitario: p.PrecioUnitario,
		}
	}
	orden, err := h.svc.CrearCompleta(c.Request.Context(), req.ProveedorID, items)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, orden)
}

func (h *OrdenesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actualizada, err := h.ordenes.Update(c.Request.Context(), id, model.OrdenCompra{
		Total:  req.Total,
		Estado: req.Estado,
	})
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, actualizada)
}

func (h *OrdenesHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.ordenes.Delete(c.Request.Context(), id); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Detalles sub-resource ────────────────────────────────────────────────────

func (h *OrdenesHandler) ListarDetalles(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detalles, err := h.detalles.GetByOrden(c.Request.Context(), id)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, detalles)
}

func (h *OrdenesHandler) CrearDetalle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.DetalleOrdenCompra
	if !bindAndValidate(c, &req) {
		return
	}
	creado, err := h.detalles.Create(c.Request.Context(), id, req)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, creado)
}

func (h *OrdenesHandler) ActualizarDetalle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detalleID, ok := paramID(c, "detalleId")
	if !ok {
		return
	}
	var req model.DetalleOrdenCompra
	if !bindAndValidate(c, &req) {
		return
	}
	actualizado, err := h.detalles.Update(c.Request.Context(), id, detalleID, req)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, actualizado)
}

func (h *OrdenesHandler) EliminarDetalle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detalleID, ok := paramID(c, "detalleId")
	if !ok {
		return
	}
	if err := h.detalles.Delete(c.Request.Context(), id, detalleID); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
