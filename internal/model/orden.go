package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrdenCompra is a purchase order against one supplier. Total is computed
// client-side as the sum of its line totals at creation time and is NOT
// re-derived from persisted detalles afterwards, so it can drift from the
// actually-persisted lines after a partial fallback write.
type OrdenCompra struct {
	ID                 int64                `json:"id,omitempty"`
	ProveedorID        int64                `json:"proveedorId"`
	Total              decimal.Decimal      `json:"total"`
	Estado             bool                 `json:"estado"`
	Detalles           []DetalleOrdenCompra `json:"detalles,omitempty"`
	FechaCreacion      *time.Time           `json:"fechaCreacion,omitempty"`
	FechaActualizacion *time.Time           `json:"fechaActualizacion,omitempty"`
}

// DetalleOrdenCompra is one product/quantity/price line of an order.
// OrdenCompraID is omitted when the detalle travels embedded in its order.
type DetalleOrdenCompra struct {
	ID                 int64           `json:"id,omitempty"`
	OrdenCompraID      int64           `json:"ordenCompraId,omitempty"`
	ProductoID         int64           `json:"productoId"`
	Cantidad           int             `json:"cantidad"`
	PrecioUnitario     decimal.Decimal `json:"precioUnitario"`
	PrecioTotal        decimal.Decimal `json:"precioTotal"`
	FechaCreacion      *time.Time      `json:"fechaCreacion,omitempty"`
	FechaActualizacion *time.Time      `json:"fechaActualizacion,omitempty"`
}
