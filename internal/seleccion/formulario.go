// Package seleccion holds the in-memory state of one order form: the chosen
// supplier and the chosen products with their quantity and unit-price
// overrides. Each form session owns exactly one Formulario; there is no
// ambient global state.
package seleccion

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/model"

	"github.com/shopspring/decimal"
)

// ProductoSeleccionado annotates a product with the quantity and unit price
// chosen for the order being built.
type ProductoSeleccionado struct {
	Producto       model.Producto  `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

// Resumen is a consistent snapshot of the form for rendering.
type Resumen struct {
	ProveedorID *int64                 `json:"proveedorId"`
	Productos   []ProductoSeleccionado `json:"productos"`
	Total       decimal.Decimal        `json:"total"`
	EnVuelo     bool                   `json:"enVuelo"`
}

// Formulario is a mutex-guarded selection container. Selections are
// supplier-scoped: switching supplier discards every chosen product, because
// products are fetched per supplier.
type Formulario struct {
	mu          sync.Mutex
	proveedorID *int64
	productos   []ProductoSeleccionado
	enVuelo     bool
}

func NuevoFormulario() *Formulario { return &Formulario{} }

// SeleccionarProveedor sets the supplier. Picking a different supplier (or
// re-picking none) clears the product selection.
func (f *Formulario) SeleccionarProveedor(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.proveedorID != nil && *f.proveedorID == id {
		return
	}
	f.proveedorID = &id
	f.productos = nil
}

// AgregarProducto adds p seeded with cantidad=1 and the product's purchase
// price as unit price. Adding an already-selected product is a no-op.
func (f *Formulario) AgregarProducto(p model.Producto) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sel := range f.productos {
		if sel.Producto.ID == p.ID {
			return
		}
	}
	f.productos = append(f.productos, ProductoSeleccionado{
		Producto:       p,
		Cantidad:       1,
		PrecioUnitario: p.PrecioCompra,
	})
}

// CambiarCantidad updates the quantity of a selected product. A quantity of
// zero or less removes the product from the selection instead of storing a
// non-positive value.
func (f *Formulario) CambiarCantidad(productoID int64, cantidad int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cantidad <= 0 {
		f.quitar(productoID)
		return
	}
	for i := range f.productos {
		if f.productos[i].Producto.ID == productoID {
			f.productos[i].Cantidad = cantidad
			return
		}
	}
}

// CambiarPrecio overrides the unit price of a selected product.
func (f *Formulario) CambiarPrecio(productoID int64, precio decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.productos {
		if f.productos[i].Producto.ID == productoID {
			f.productos[i].PrecioUnitario = precio
			return
		}
	}
}

// QuitarProducto removes one product from the selection.
func (f *Formulario) QuitarProducto(productoID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quitar(productoID)
}

func (f *Formulario) quitar(productoID int64) {
	for i := range f.productos {
		if f.productos[i].Producto.ID == productoID {
			f.productos = append(f.productos[:i], f.productos[i+1:]...)
			return
		}
	}
}

// Total recomputes Σ(cantidad × precioUnitario) on every call; it is never
// cached.
func (f *Formulario) Total() decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total()
}

func (f *Formulario) total() decimal.Decimal {
	total := decimal.Zero
	for _, sel := range f.productos {
		total = total.Add(sel.PrecioUnitario.Mul(decimal.NewFromInt(int64(sel.Cantidad))))
	}
	return total
}

// Validar returns the first violation found, or nil when the form can be
// submitted. Violations are not aggregated.
func (f *Formulario) Validar() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validar()
}

func (f *Formulario) validar() error {
	if f.proveedorID == nil {
		return errors.New("Debe seleccionar un proveedor")
	}
	if len(f.productos) == 0 {
		return errors.New("Debe seleccionar al menos un producto")
	}
	for _, sel := range f.productos {
		if sel.Cantidad <= 0 {
			return fmt.Errorf("La cantidad de %q debe ser mayor a cero", sel.Producto.Nombre)
		}
		if !sel.PrecioUnitario.IsPositive() {
			return fmt.Errorf("El precio unitario de %q debe ser mayor a cero", sel.Producto.Nombre)
		}
	}
	return nil
}

// ErrEnvioEnCurso is returned by PrepararEnvio while a submission is running.
var ErrEnvioEnCurso = errors.New("Ya hay un envío en curso")

// PrepararEnvio validates the form, marks a submission in flight and returns
// the snapshot to submit, all in one critical section. Other mutations (a
// concurrent Reiniciar included) can only land before or after, never between
// the validation and the snapshot, so the returned Resumen is always
// submittable.
func (f *Formulario) PrepararEnvio() (Resumen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enVuelo {
		return Resumen{}, ErrEnvioEnCurso
	}
	if err := f.validar(); err != nil {
		return Resumen{}, err
	}
	f.enVuelo = true
	return f.snapshot(), nil
}

// TerminarEnvio clears the in-flight flag; the selection is kept so a failed
// submission can be corrected and retried.
func (f *Formulario) TerminarEnvio() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enVuelo = false
}

// Reiniciar resets the form to its initial empty state.
func (f *Formulario) Reiniciar() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.proveedorID = nil
	f.productos = nil
	f.enVuelo = false
}

// Snapshot returns a copy of the current state plus the running total.
func (f *Formulario) Snapshot() Resumen {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *Formulario) snapshot() Resumen {
	productos := make([]ProductoSeleccionado, len(f.productos))
	copy(productos, f.productos)
	var pid *int64
	if f.proveedorID != nil {
		v := *f.proveedorID
		pid = &v
	}
	return Resumen{ProveedorID: pid, Productos: productos, Total: f.total(), EnVuelo: f.enVuelo}
}
