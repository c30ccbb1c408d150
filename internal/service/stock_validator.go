package service

import (
	"context"
	"fmt"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
)

// ItemSolicitado is one (product, quantity) pair to check against stock.
// Cantidad is expected to be positive; this layer does not re-validate it.
type ItemSolicitado struct {
	ProductoID int64
	Cantidad   int
}

// ResultadoStock aggregates the outcome of a stock check. Valido is true iff
// Errores is empty.
type ResultadoStock struct {
	Valido  bool     `json:"valid"`
	Errores []string `json:"errors"`
}

// StockValidator checks requested quantities against current product records.
// It never mutates stock.
type StockValidator interface {
	Validar(ctx context.Context, items []ItemSolicitado) ResultadoStock
}

type stockValidator struct {
	productos gateway.ProductosAPI
}

func NewStockValidator(productos gateway.ProductosAPI) StockValidator {
	return &stockValidator{productos: productos}
}

// Validar fetches the full product set once and checks each requested pair in
// order: unknown product, inactive product, insufficient stock. A fetch
// failure collapses to a single wrapped error instead of aborting, so the
// caller decides what to do with an unverifiable request.
func (v *stockValidator) Validar(ctx context.Context, items []ItemSolicitado) ResultadoStock {
	todos, err := v.productos.GetAll(ctx)
	if err != nil {
		return ResultadoStock{
			Valido:  false,
			Errores: []string{fmt.Sprintf("Error al validar stock: %v", err)},
		}
	}

	indice := make(map[int64]int, len(todos))
	for i := range todos {
		indice[todos[i].ID] = i
	}

	var errores []string
	for _, item := range items {
		i, ok := indice[item.ProductoID]
		if !ok {
			errores = append(errores, fmt.Sprintf("Producto con ID %d no encontrado", item.ProductoID))
			continue
		}
		p := &todos[i]
		if !p.Estado {
			errores = append(errores, fmt.Sprintf("El producto %q está inactivo", p.Nombre))
			continue
		}
		if p.Stock < item.Cantidad {
			errores = append(errores, fmt.Sprintf("Stock insuficiente para %q. Disponible: %d, Solicitado: %d", p.Nombre, p.Stock, item.Cantidad))
		}
	}

	return ResultadoStock{Valido: len(errores) == 0, Errores: errores}
}
