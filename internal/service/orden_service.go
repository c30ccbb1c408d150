package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ItemOrden is one requested line of a new purchase order.
type ItemOrden struct {
	ProductoID     int64
	Cantidad       int
	PrecioUnitario decimal.Decimal
}

// OrdenCompleta aggregates an order with its supplier and line items, as the
// order detail view consumes it.
type OrdenCompleta struct {
	Orden     model.OrdenCompra          `json:"orden"`
	Proveedor model.Proveedor            `json:"proveedor"`
	Detalles  []model.DetalleOrdenCompra `json:"detalles"`
}

// OrdenService creates and reads purchase orders through the gateway.
type OrdenService interface {
	// CrearCompleta validates stock and persists an order with its line
	// items, preferring the gateway's atomic endpoint and falling back to
	// order-then-detalles when that endpoint is unavailable.
	CrearCompleta(ctx context.Context, proveedorID int64, items []ItemOrden) (*model.OrdenCompra, error)
	ObtenerCompleta(ctx context.Context, id int64) (*OrdenCompleta, error)
}

type ordenService struct {
	ordenes     gateway.OrdenesAPI
	detalles    gateway.DetallesAPI
	proveedores gateway.ProveedoresAPI
	stock       StockValidator
}

func NewOrdenService(
	ordenes gateway.OrdenesAPI,
	detalles gateway.DetallesAPI,
	proveedores gateway.ProveedoresAPI,
	stock StockValidator,
) OrdenService {
	return &ordenService{
		ordenes:     ordenes,
		detalles:    detalles,
		proveedores: proveedores,
		stock:       stock,
	}
}

// decision is the typed outcome of one creation strategy.
type decision int

const (
	decisionExito     decision = iota // order created, return it verbatim
	decisionSiguiente                 // strategy unavailable, try the next one
	decisionFatal                     // inconsistency, abort the whole operation
)

type estrategia struct {
	nombre   string
	ejecutar func(ctx context.Context) (*model.OrdenCompra, decision, error)
}

// ErrSinEstrategia is wrapped into the final error when every strategy was
// skipped. Only reachable when the strategy list is empty, kept for tests.
var ErrSinEstrategia = errors.New("ninguna estrategia disponible")

func (s *ordenService) CrearCompleta(ctx context.Context, proveedorID int64, items []ItemOrden) (*model.OrdenCompra, error) {
	solicitados := make([]ItemSolicitado, len(items))
	for i, it := range items {
		solicitados[i] = ItemSolicitado{ProductoID: it.ProductoID, Cantidad: it.Cantidad}
	}
	if res := s.stock.Validar(ctx, solicitados); !res.Valido {
		// No write has happened yet; surface every stock error at once.
		return nil, fmt.Errorf("Error al crear orden completa: %s", strings.Join(res.Errores, ", "))
	}

	estrategias := []estrategia{
		{nombre: "atomica", ejecutar: s.crearAtomica(proveedorID, items)},
		{nombre: "orden-mas-detalles", ejecutar: s.crearPorPartes(proveedorID, items)},
	}

	ultimoErr := ErrSinEstrategia
	for _, e := range estrategias {
		orden, d, err := e.ejecutar(ctx)
		switch d {
		case decisionExito:
			return orden, nil
		case decisionSiguiente:
			log.Debug().Str("estrategia", e.nombre).Err(err).
				Msg("estrategia de creación no disponible, se intenta la siguiente")
			ultimoErr = err
		case decisionFatal:
			return nil, fmt.Errorf("Error al crear orden completa: %w", err)
		}
	}
	return nil, fmt.Errorf("Error al crear orden completa: %w", ultimoErr)
}

// crearAtomica tries POST /ordenes/completa. Any failure means the endpoint
// is not usable (commonly not implemented on the gateway) and the next
// strategy takes over.
func (s *ordenService) crearAtomica(proveedorID int64, items []ItemOrden) func(context.Context) (*model.OrdenCompra, decision, error) {
	return func(ctx context.Context) (*model.OrdenCompra, decision, error) {
		req := gateway.OrdenCompletaRequest{ProveedorID: proveedorID}
		for _, it := range items {
			req.Productos = append(req.Productos, gateway.ItemOrdenCompleta{
				ProductoID:     it.ProductoID,
				Cantidad:       it.Cantidad,
				PrecioUnitario: it.PrecioUnitario,
			})
		}
		orden, err := s.ordenes.CreateCompleta(ctx, req)
		if err != nil {
			return nil, decisionSiguiente, err
		}
		return orden, decisionExito, nil
	}
}

// crearPorPartes creates a bare order and then each detalle against it. A
// single detalle failure is logged and skipped; the order is returned with
// whatever subset of detalles succeeded, without rollback. Its Total keeps the
// precomputed sum even when some detalles were lost — known drift, surfaced
// through the per-item logs only.
func (s *ordenService) crearPorPartes(proveedorID int64, items []ItemOrden) func(context.Context) (*model.OrdenCompra, decision, error) {
	return func(ctx context.Context) (*model.OrdenCompra, decision, error) {
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.PrecioUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
		}

		creada, err := s.ordenes.Create(ctx, model.OrdenCompra{
			ProveedorID: proveedorID,
			Total:       total,
			Estado:      true,
		})
		if err != nil {
			return nil, decisionFatal, fmt.Errorf("No se pudo crear la orden completa: %w", err)
		}
		if creada.ID == 0 {
			return nil, decisionFatal, errors.New("No se pudo obtener ID de la orden creada")
		}

		var creados []model.DetalleOrdenCompra
		for _, it := range items {
			detalle := model.DetalleOrdenCompra{
				ProductoID:     it.ProductoID,
				Cantidad:       it.Cantidad,
				PrecioUnitario: it.PrecioUnitario,
				PrecioTotal:    it.PrecioUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))),
			}
			hecho, err := s.detalles.Create(ctx, creada.ID, detalle)
			if err != nil {
				log.Warn().Int64("orden_id", creada.ID).Int64("producto_id", it.ProductoID).Err(err).
					Msg("no se pudo crear el detalle, se continúa con los demás")
				continue
			}
			creados = append(creados, *hecho)
		}

		creada.Detalles = creados
		return creada, decisionExito, nil
	}
}

// ObtenerCompleta pide la orden y sus detalles en paralelo; el proveedor
// recién puede resolverse con la orden en mano.
func (s *ordenService) ObtenerCompleta(ctx context.Context, id int64) (*OrdenCompleta, error) {
	type resDetalles struct {
		detalles []model.DetalleOrdenCompra
		err      error
	}
	ch := make(chan resDetalles, 1)
	go func() {
		detalles, err := s.detalles.GetByOrden(ctx, id)
		ch <- resDetalles{detalles: detalles, err: err}
	}()

	orden, err := s.ordenes.GetByID(ctx, id)
	det := <-ch
	if err != nil {
		return nil, fmt.Errorf("Error al obtener orden completa: %w", err)
	}
	if det.err != nil {
		return nil, fmt.Errorf("Error al obtener orden completa: %w", det.err)
	}
	proveedor, err := s.proveedores.GetByID(ctx, orden.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("Error al obtener orden completa: %w", err)
	}
	return &OrdenCompleta{Orden: *orden, Proveedor: *proveedor, Detalles: det.detalles}, nil
}
