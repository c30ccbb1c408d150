package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemOrdenInput struct {
	ProductoID     int64           `json:"productoId"     validate:"required,gt=0"`
	Cantidad       int             `json:"cantidad"       validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario" validate:"required,gt=0"`
}

type CrearOrdenCompletaRequest struct {
	ProveedorID int64            `json:"proveedorId" validate:"required,gt=0"`
	Productos   []ItemOrdenInput `json:"productos"   validate:"required,min=1,dive"`
}

type ActualizarOrdenRequest struct {
	Total  decimal.Decimal `json:"total"  validate:"min=0"`
	Estado bool            `json:"estado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrdenCompletaResponse struct {
	Orden     model.OrdenCompra          `json:"orden"`
	Proveedor model.Proveedor            `json:"proveedor"`
	Detalles  []model.DetalleOrdenCompra `json:"detalles"`
}
