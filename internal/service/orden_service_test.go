package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubOrdenesAPI struct {
	completaErr      error
	llamadasCompleta int

	createErr      error
	createSinID    bool
	llamadasCreate int
	creadas        []model.OrdenCompra

	ordenes map[int64]model.OrdenCompra
}

func (s *stubOrdenesAPI) GetAll(_ context.Context) ([]model.OrdenCompra, error) { return nil, nil }

func (s *stubOrdenesAPI) GetByID(_ context.Context, id int64) (*model.OrdenCompra, error) {
	o, ok := s.ordenes[id]
	if !ok {
		return nil, errors.New("Orden no encontrada")
	}
	return &o, nil
}

func (s *stubOrdenesAPI) Create(_ context.Context, o model.OrdenCompra) (*model.OrdenCompra, error) {
	s.llamadasCreate++
	if s.createErr != nil {
		return nil, s.createErr
	}
	if !s.createSinID {
		o.ID = int64(100 + s.llamadasCreate)
	}
	s.creadas = append(s.creadas, o)
	return &o, nil
}

func (s *stubOrdenesAPI) CreateCompleta(_ context.Context, req gateway.OrdenCompletaRequest) (*model.OrdenCompra, error) {
	s.llamadasCompleta++
	if s.completaErr != nil {
		return nil, s.completaErr
	}
	total := decimal.Zero
	orden := model.OrdenCompra{ID: 500, ProveedorID: req.ProveedorID, Estado: true}
	for i, p := range req.Productos {
		linea := p.PrecioUnitario.Mul(decimal.NewFromInt(int64(p.Cantidad)))
		total = total.Add(linea)
		orden.Detalles = append(orden.Detalles, model.DetalleOrdenCompra{
			ID:             int64(i + 1),
			ProductoID:     p.ProductoID,
			Cantidad:       p.Cantidad,
			PrecioUnitario: p.PrecioUnitario,
			PrecioTotal:    linea,
		})
	}
	orden.Total = total
	return &orden, nil
}

func (s *stubOrdenesAPI) Update(_ context.Context, _ int64, o model.OrdenCompra) (*model.OrdenCompra, error) {
	return &o, nil
}

func (s *stubOrdenesAPI) Delete(_ context.Context, _ int64) error { return nil }

var _ gateway.OrdenesAPI = (*stubOrdenesAPI)(nil)

type stubDetallesAPI struct {
	fallarProducto map[int64]error
	creados        []model.DetalleOrdenCompra
	porOrden       map[int64][]model.DetalleOrdenCompra
}

func (s *stubDetallesAPI) GetByOrden(_ context.Context, ordenID int64) ([]model.DetalleOrdenCompra, error) {
	return s.porOrden[ordenID], nil
}

func (s *stubDetallesAPI) Create(_ context.Context, ordenID int64, d model.DetalleOrdenCompra) (*model.DetalleOrdenCompra, error) {
	if err, ok := s.fallarProducto[d.ProductoID]; ok {
		return nil, err
	}
	d.ID = int64(len(s.creados) + 1)
	d.OrdenCompraID = ordenID
	s.creados = append(s.creados, d)
	return &d, nil
}

func (s *stubDetallesAPI) Update(_ context.Context, _, _ int64, d model.DetalleOrdenCompra) (*model.DetalleOrdenCompra, error) {
	return &d, nil
}

func (s *stubDetallesAPI) Delete(_ context.Context, _, _ int64) error { return nil }

var _ gateway.DetallesAPI = (*stubDetallesAPI)(nil)

type stubProveedoresAPI struct {
	proveedores map[int64]model.Proveedor
}

func (s *stubProveedoresAPI) GetAll(_ context.Context) ([]model.Proveedor, error) { return nil, nil }

func (s *stubProveedoresAPI) GetByID(_ context.Context, id int64) (*model.Proveedor, error) {
	p, ok := s.proveedores[id]
	if !ok {
		return nil, errors.New("Proveedor no encontrado")
	}
	return &p, nil
}

func (s *stubProveedoresAPI) Create(_ context.Context, p model.Proveedor) (*model.Proveedor, error) {
	return &p, nil
}

func (s *stubProveedoresAPI) Update(_ context.Context, _ int64, p model.Proveedor) (*model.Proveedor, error) {
	return &p, nil
}

func (s *stubProveedoresAPI) Delete(_ context.Context, _ int64) error { return nil }

var _ gateway.ProveedoresAPI = (*stubProveedoresAPI)(nil)

type stubStock struct {
	resultado ResultadoStock
	llamadas  int
}

func (s *stubStock) Validar(_ context.Context, _ []ItemSolicitado) ResultadoStock {
	s.llamadas++
	return s.resultado
}

var _ StockValidator = (*stubStock)(nil)

func itemsDePrueba() []ItemOrden {
	return []ItemOrden{
		{ProductoID: 1, Cantidad: 2, PrecioUnitario: decimal.RequireFromString("10.00")},
		{ProductoID: 2, Cantidad: 1, PrecioUnitario: decimal.RequireFromString("5.00")},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCrearCompletaEstrategiaAtomica(t *testing.T) {
	ordenes := &stubOrdenesAPI{}
	detalles := &stubDetallesAPI{}
	stock := &stubStock{resultado: ResultadoStock{Valido: true}}
	svc := NewOrdenService(ordenes, detalles, &stubProveedoresAPI{}, stock)

	orden, err := svc.CrearCompleta(context.Background(), 9, itemsDePrueba())

	require.NoError(t, err)
	assert.Equal(t, 1, stock.llamadas)
	assert.Equal(t, 1, ordenes.llamadasCompleta)
	assert.True(t, orden.Total.Equal(decimal.RequireFromString("25.00")), "total %s", orden.Total)

	// No fallback traffic at all.
	assert.Zero(t, ordenes.llamadasCreate)
	assert.Empty(t, detalles.creados)
}

func TestCrearCompletaFallbackOrdenMasDetalles(t *testing.T) {
	ordenes := &stubOrdenesAPI{completaErr: errors.New("404 endpoint no implementado")}
	detalles := &stubDetallesAPI{}
	svc := NewOrdenService(ordenes, detalles, &stubProveedoresAPI{}, &stubStock{resultado: ResultadoStock{Valido: true}})

	orden, err := svc.CrearCompleta(context.Background(), 9, itemsDePrueba())

	require.NoError(t, err)
	require.Len(t, ordenes.creadas, 1)
	base := ordenes.creadas[0]
	assert.Equal(t, int64(9), base.ProveedorID)
	assert.True(t, base.Estado)
	assert.True(t, base.Total.Equal(decimal.RequireFromString("25.00")), "total %s", base.Total)

	// Exactly one detalle call per item, each with its own line total.
	require.Len(t, detalles.creados, 2)
	assert.True(t, detalles.creados[0].PrecioTotal.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, detalles.creados[1].PrecioTotal.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, base.ID, detalles.creados[0].OrdenCompraID)

	require.Len(t, orden.Detalles, 2)
}

func TestCrearCompletaFallbackToleraDetalleFallido(t *testing.T) {
	ordenes := &stubOrdenesAPI{completaErr: errors.New("no implementado")}
	detalles := &stubDetallesAPI{fallarProducto: map[int64]error{1: errors.New("500")}}
	svc := NewOrdenService(ordenes, detalles, &stubProveedoresAPI{}, &stubStock{resultado: ResultadoStock{Valido: true}})

	orden, err := svc.CrearCompleta(context.Background(), 9, itemsDePrueba())

	require.NoError(t, err, "un detalle fallido no aborta la operación")
	require.Len(t, orden.Detalles, 1)
	assert.Equal(t, int64(2), orden.Detalles[0].ProductoID)

	// The precomputed total keeps the full sum: known drift, not corrected.
	assert.True(t, orden.Total.Equal(decimal.RequireFromString("25.00")))
}

func TestCrearCompletaOrdenSinIDEsFatal(t *testing.T) {
	ordenes := &stubOrdenesAPI{completaErr: errors.New("no implementado"), createSinID: true}
	detalles := &stubDetallesAPI{}
	svc := NewOrdenService(ordenes, detalles, &stubProveedoresAPI{}, &stubStock{resultado: ResultadoStock{Valido: true}})

	_, err := svc.CrearCompleta(context.Background(), 9, itemsDePrueba())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "No se pudo obtener ID de la orden creada")
	assert.Empty(t, detalles.creados, "sin ID no se intenta ningún detalle")
}

func TestCrearCompletaStockInvalidoNoEscribe(t *testing.T) {
	ordenes := &stubOrdenesAPI{}
	detalles := &stubDetallesAPI{}
	stock := &stubStock{resultado: ResultadoStock{
		Valido:  false,
		Errores: []string{`Stock insuficiente para "Cafe". Disponible: 1, Solicitado: 2`, `El producto "Azucar" está inactivo`},
	}}
	svc := NewOrdenService(ordenes, detalles, &stubProveedoresAPI{}, stock)

	_, err := svc.CrearCompleta(context.Background(), 9, itemsDePrueba())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stock insuficiente")
	assert.Contains(t, err.Error(), "inactivo")
	assert.Zero(t, ordenes.llamadasCompleta)
	assert.Zero(t, ordenes.llamadasCreate)
	assert.Empty(t, detalles.creados)
}

func TestCrearCompletaFallbackCreateFatal(t *testing.T) {
	ordenes := &stubOrdenesAPI{completaErr: errors.New("no implementado"), createErr: errors.New("gateway caido")}
	svc := NewOrdenService(ordenes, &stubDetallesAPI{}, &stubProveedoresAPI{}, &stubStock{resultado: ResultadoStock{Valido: true}})

	_, err := svc.CrearCompleta(context.Background(), 9, itemsDePrueba())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "No se pudo crear la orden completa")
	assert.Contains(t, err.Error(), "gateway caido")
}

func TestObtenerCompleta(t *testing.T) {
	ordenes := &stubOrdenesAPI{ordenes: map[int64]model.OrdenCompra{
		7: {ID: 7, ProveedorID: 3, Total: decimal.NewFromInt(40), Estado: true},
	}}
	detalles := &stubDetallesAPI{porOrden: map[int64][]model.DetalleOrdenCompra{
		7: {{ID: 1, OrdenCompraID: 7, ProductoID: 2, Cantidad: 4, PrecioUnitario: decimal.NewFromInt(10), PrecioTotal: decimal.NewFromInt(40)}},
	}}
	proveedores := &stubProveedoresAPI{proveedores: map[int64]model.Proveedor{
		3: {ID: 3, Nombre: "ACME"},
	}}
	svc := NewOrdenService(ordenes, detalles, proveedores, &stubStock{resultado: ResultadoStock{Valido: true}})

	completa, err := svc.ObtenerCompleta(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), completa.Orden.ID)
	assert.Equal(t, "ACME", completa.Proveedor.Nombre)
	require.Len(t, completa.Detalles, 1)
}

// ordenesEnEspera no responde GetByID hasta que los detalles ya fueron
// pedidos; sólo un ObtenerCompleta que lanza ambos pedidos a la vez puede
// completarse sin agotar la espera.
type ordenesEnEspera struct {
	stubOrdenesAPI
	detallesPedidos <-chan struct{}
}

func (s *ordenesEnEspera) GetByID(ctx context.Context, id int64) (*model.OrdenCompra, error) {
	select {
	case <-s.detallesPedidos:
	case <-time.After(2 * time.Second):
		return nil, errors.New("los detalles no se pidieron en paralelo")
	}
	return s.stubOrdenesAPI.GetByID(ctx, id)
}

type detallesAvisando struct {
	stubDetallesAPI
	pedidos chan<- struct{}
}

func (s *detallesAvisando) GetByOrden(ctx context.Context, ordenID int64) ([]model.DetalleOrdenCompra, error) {
	close(s.pedidos)
	return s.stubDetallesAPI.GetByOrden(ctx, ordenID)
}

func TestObtenerCompletaPideOrdenYDetallesEnParalelo(t *testing.T) {
	aviso := make(chan struct{})
	ordenes := &ordenesEnEspera{
		stubOrdenesAPI: stubOrdenesAPI{ordenes: map[int64]model.OrdenCompra{
			7: {ID: 7, ProveedorID: 3, Total: decimal.NewFromInt(40), Estado: true},
		}},
		detallesPedidos: aviso,
	}
	detalles := &detallesAvisando{
		stubDetallesAPI: stubDetallesAPI{porOrden: map[int64][]model.DetalleOrdenCompra{
			7: {{ID: 1, OrdenCompraID: 7, ProductoID: 2, Cantidad: 4, PrecioUnitario: decimal.NewFromInt(10), PrecioTotal: decimal.NewFromInt(40)}},
		}},
		pedidos: aviso,
	}
	proveedores := &stubProveedoresAPI{proveedores: map[int64]model.Proveedor{3: {ID: 3, Nombre: "ACME"}}}
	svc := NewOrdenService(ordenes, detalles, proveedores, &stubStock{})

	completa, err := svc.ObtenerCompleta(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "ACME", completa.Proveedor.Nombre)
	require.Len(t, completa.Detalles, 1)
}

func TestObtenerCompletaOrdenInexistente(t *testing.T) {
	svc := NewOrdenService(&stubOrdenesAPI{}, &stubDetallesAPI{}, &stubProveedoresAPI{}, &stubStock{})

	_, err := svc.ObtenerCompleta(context.Background(), 99)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error al obtener orden completa")
}
