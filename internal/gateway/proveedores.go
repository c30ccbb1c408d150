package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"
)

// ProveedoresAPI wraps the /proveedores resource.
type ProveedoresAPI interface {
	GetAll(ctx context.Context) ([]model.Proveedor, error)
	GetByID(ctx context.Context, id int64) (*model.Proveedor, error)
	Create(ctx context.Context, p model.Proveedor) (*model.Proveedor, error)
	Update(ctx context.Context, id int64, p model.Proveedor) (*model.Proveedor, error)
	Delete(ctx context.Context, id int64) error
}

type proveedoresAPI struct{ c *Client }

func (a *proveedoresAPI) GetAll(ctx context.Context) ([]model.Proveedor, error) {
	var out []model.Proveedor
	if err := a.c.do(ctx, http.MethodGet, "/proveedores", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *proveedoresAPI) GetByID(ctx context.Context, id int64) (*model.Proveedor, error) {
	var out model.Proveedor
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/proveedores/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *proveedoresAPI) Create(ctx context.Context, p model.Proveedor) (*model.Proveedor, error) {
	var out model.Proveedor
	if err := a.c.do(ctx, http.MethodPost, "/proveedores", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *proveedoresAPI) Update(ctx context.Context, id int64, p model.Proveedor) (*model.Proveedor, error) {
	var out model.Proveedor
	if err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/proveedores/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *proveedoresAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/proveedores/%d", id), nil, nil)
}
