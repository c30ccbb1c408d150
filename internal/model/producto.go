package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto belongs to exactly one Proveedor. PrecioUnitario is the sale
// price, PrecioCompra the purchase price used as default on purchase orders.
type Producto struct {
	ID                 int64           `json:"id,omitempty"`
	Nombre             string          `json:"nombre"`
	PrecioUnitario     decimal.Decimal `json:"precioUnitario"`
	PrecioCompra       decimal.Decimal `json:"precioCompra"`
	Stock              int             `json:"stock"`
	ProveedorID        int64           `json:"proveedorId"`
	Estado             bool            `json:"estado"`
	FechaCreacion      *time.Time      `json:"fechaCreacion,omitempty"`
	FechaActualizacion *time.Time      `json:"fechaActualizacion,omitempty"`
}
