package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"
)

// DetallesAPI wraps the line-item sub-resource nested under /ordenes/{id}.
type DetallesAPI interface {
	GetByOrden(ctx context.Context, ordenID int64) ([]model.DetalleOrdenCompra, error)
	Create(ctx context.Context, ordenID int64, d model.DetalleOrdenCompra) (*model.DetalleOrdenCompra, error)
	Update(ctx context.Context, ordenID, detalleID int64, d model.DetalleOrdenCompra) (*model.DetalleOrdenCompra, error)
	Delete(ctx context.Context, ordenID, detalleID int64) error
}

type detallesAPI struct{ c *Client }

func (a *detallesAPI) GetByOrden(ctx context.Context, ordenID int64) ([]model.DetalleOrdenCompra, error) {
	var out []model.DetalleOrdenCompra
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/ordenes/%d/detalles", ordenID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *detallesAPI) Create(ctx context.Context, ordenID int64, d model.DetalleOrdenCompra) (*model.DetalleOrdenCompra, error) {
	var out model.DetalleOrdenCompra
	if err := a.c.do(ctx, http.MethodPost, fmt.Sprintf("/ordenes/%d/detalles", ordenID), d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *detallesAPI) Update(ctx context.Context, ordenID, detalleID int64, d model.DetalleOrdenCompra) (*model.DetalleOrdenCompra, error) {
	var out model.DetalleOrdenCompra
	if err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/ordenes/%d/detalles/%d", ordenID, detalleID), d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *detallesAPI) Delete(ctx context.Context, ordenID, detalleID int64) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/ordenes/%d/detalles/%d", ordenID, detalleID), nil, nil)
}
