package dto

import "github.com/shopspring/decimal"

// Request DTOs for the order-form session endpoints. Cantidad deliberately
// carries no gt=0 tag: zero and negative values mean "remove the product".
// PrecioUnitario carries no tag either: any value can be typed into the form,
// and the submit-time validation owns the "mayor a cero" rule.

type SeleccionarProveedorRequest struct {
	ProveedorID int64 `json:"proveedorId" validate:"required,gt=0"`
}

type AgregarProductoRequest struct {
	ProductoID int64 `json:"productoId" validate:"required,gt=0"`
}

type CambiarCantidadRequest struct {
	Cantidad int `json:"cantidad"`
}

type CambiarPrecioRequest struct {
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

type SesionCreadaResponse struct {
	SesionID string `json:"sesionId"`
}
