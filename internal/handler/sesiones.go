package handler

import (
	"errors"
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/apierror"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/dto"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/seleccion"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/service"

	"github.com/gin-gonic/gin"
)

// SesionesHandler drives the multi-step order form. Each session owns one
// seleccion.Formulario; every mutation returns a fresh snapshot with the
// recomputed running total so the front-end never derives state on its own.
type SesionesHandler struct {
	store     *seleccion.Store
	productos gateway.ProductosAPI
	svc       service.OrdenService
}

func NewSesionesHandler(store *seleccion.Store, productos gateway.ProductosAPI, svc service.OrdenService) *SesionesHandler {
	return &SesionesHandler{store: store, productos: productos, svc: svc}
}

func (h *SesionesHandler) form(c *gin.Context) (*seleccion.Formulario, bool) {
	f, ok := h.store.Obtener(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Sesion no encontrada o expirada"))
		return nil, false
	}
	return f, true
}

func (h *SesionesHandler) Crear(c *gin.Context) {
	c.JSON(http.StatusCreated, dto.SesionCreadaResponse{SesionID: h.store.Crear()})
}

func (h *SesionesHandler) Obtener(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, f.Snapshot())
}

func (h *SesionesHandler) SeleccionarProveedor(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	var req dto.SeleccionarProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f.SeleccionarProveedor(req.ProveedorID)
	c.JSON(http.StatusOK, f.Snapshot())
}

// AgregarProducto resolves the product against the gateway and adds it to the
// selection. Products must belong to the currently selected supplier — the
// picker only ever shows supplier-scoped products.
func (h *SesionesHandler) AgregarProducto(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	var req dto.AgregarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	snap := f.Snapshot()
	if snap.ProveedorID == nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Debe seleccionar un proveedor"))
		return
	}
	p, err := h.productos.GetByID(c.Request.Context(), req.ProductoID)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	if p.ProveedorID != *snap.ProveedorID {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("El producto no pertenece al proveedor seleccionado"))
		return
	}
	f.AgregarProducto(*p)
	c.JSON(http.StatusOK, f.Snapshot())
}

func (h *SesionesHandler) CambiarCantidad(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	productoID, ok := paramID(c, "productoId")
	if !ok {
		return
	}
	var req dto.CambiarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f.CambiarCantidad(productoID, req.Cantidad)
	c.JSON(http.StatusOK, f.Snapshot())
}

func (h *SesionesHandler) CambiarPrecio(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	productoID, ok := paramID(c, "productoId")
	if !ok {
		return
	}
	var req dto.CambiarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f.CambiarPrecio(productoID, req.PrecioUnitario)
	c.JSON(http.StatusOK, f.Snapshot())
}

func (h *SesionesHandler) QuitarProducto(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	productoID, ok := paramID(c, "productoId")
	if !ok {
		return
	}
	f.QuitarProducto(productoID)
	c.JSON(http.StatusOK, f.Snapshot())
}

// Confirmar submits the form. PrepararEnvio runs the form rules (first
// violation only), blocks double submits and hands back the snapshot that
// gets submitted, atomically: concurrent mutations on the same session cannot
// invalidate the state between validation and submission. On failure the
// selection is kept so the user can correct and retry; on success the form
// resets for the next order.
func (h *SesionesHandler) Confirmar(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	snap, err := f.PrepararEnvio()
	if err != nil {
		if errors.Is(err, seleccion.ErrEnvioEnCurso) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	defer f.TerminarEnvio()

	items := make([]service.ItemOrden, len(snap.Productos))
	for i, sel := range snap.Productos {
		items[i] = service.ItemOrden{
			ProductoID:     sel.Producto.ID,
			Cantidad:       sel.Cantidad,
			PrecioUnitario: sel.PrecioUnitario,
		}
	}

	orden, err := h.svc.CrearCompleta(c.Request.Context(), *snap.ProveedorID, items)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	f.Reiniciar()
	c.JSON(http.StatusCreated, orden)
}

func (h *SesionesHandler) Reiniciar(c *gin.Context) {
	f, ok := h.form(c)
	if !ok {
		return
	}
	f.Reiniciar()
	c.JSON(http.StatusOK, f.Snapshot())
}

func (h *SesionesHandler) Eliminar(c *gin.Context) {
	h.store.Eliminar(c.Param("id"))
	c.Status(http.StatusNoContent)
}
