package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"
	"github.com/shopspring/decimal"
)

// ItemOrdenCompleta is one line of the atomic order-creation payload.
type ItemOrdenCompleta struct {
	ProductoID     int64           `json:"productoId"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

// OrdenCompletaRequest is the body of POST /ordenes/completa. The endpoint is
// optional on the gateway side; callers must tolerate its absence.
type OrdenCompletaRequest struct {
	ProveedorID int64               `json:"proveedorId"`
	Productos   []ItemOrdenCompleta `json:"productos"`
}

// OrdenesAPI wraps the /ordenes resource.
type OrdenesAPI interface {
	GetAll(ctx context.Context) ([]model.OrdenCompra, error)
	GetByID(ctx context.Context, id int64) (*model.OrdenCompra, error)
	Create(ctx context.Context, o model.OrdenCompra) (*model.OrdenCompra, error)
	CreateCompleta(ctx context.Context, req OrdenCompletaRequest) (*model.OrdenCompra, error)
	Update(ctx context.Context, id int64, o model.OrdenCompra) (*model.OrdenCompra, error)
	Delete(ctx context.Context, id int64) error
}

type ordenesAPI struct{ c *Client }

func (a *ordenesAPI) GetAll(ctx context.Context) ([]model.OrdenCompra, error) {
	var out []model.OrdenCompra
	if err := a.c.do(ctx, http.MethodGet, "/ordenes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ordenesAPI) GetByID(ctx context.Context, id int64) (*model.OrdenCompra, error) {
	var out model.OrdenCompra
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/ordenes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ordenesAPI) Create(ctx context.Context, o model.OrdenCompra) (*model.OrdenCompra, error) {
	var out model.OrdenCompra
	if err := a.c.do(ctx, http.MethodPost, "/ordenes", o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ordenesAPI) CreateCompleta(ctx context.Context, req OrdenCompletaRequest) (*model.OrdenCompra, error) {
	var out model.OrdenCompra
	if err := a.c.do(ctx, http.MethodPost, "/ordenes/completa", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ordenesAPI) Update(ctx context.Context, id int64, o model.OrdenCompra) (*model.OrdenCompra, error) {
	var out model.OrdenCompra
	if err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/ordenes/%d", id), o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ordenesAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/ordenes/%d", id), nil, nil)
}
