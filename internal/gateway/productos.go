package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"
)

// ProductosAPI wraps the /productos resource. Products can additionally be
// listed per supplier, which is what the order form uses.
type ProductosAPI interface {
	GetAll(ctx context.Context) ([]model.Producto, error)
	GetByProveedor(ctx context.Context, proveedorID int64) ([]model.Producto, error)
	GetByID(ctx context.Context, id int64) (*model.Producto, error)
	Create(ctx context.Context, p model.Producto) (*model.Producto, error)
	Update(ctx context.Context, id int64, p model.Producto) (*model.Producto, error)
	Delete(ctx context.Context, id int64) error
}

type productosAPI struct{ c *Client }

func (a *productosAPI) GetAll(ctx context.Context) ([]model.Producto, error) {
	var out []model.Producto
	if err := a.c.do(ctx, http.MethodGet, "/productos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *productosAPI) GetByProveedor(ctx context.Context, proveedorID int64) ([]model.Producto, error) {
	var out []model.Producto
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/productos/proveedor/%d", proveedorID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *productosAPI) GetByID(ctx context.Context, id int64) (*model.Producto, error) {
	var out model.Producto
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/productos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *productosAPI) Create(ctx context.Context, p model.Producto) (*model.Producto, error) {
	var out model.Producto
	if err := a.c.do(ctx, http.MethodPost, "/productos", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *productosAPI) Update(ctx context.Context, id int64, p model.Producto) (*model.Producto, error) {
	var out model.Producto
	if err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/productos/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *productosAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, nil)
}
