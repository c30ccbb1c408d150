package model

import "time"

// Proveedor is the supplier entity as the API Gateway serializes it.
// IDs are assigned server-side; a zero ID means "not yet persisted".
type Proveedor struct {
	ID                 int64      `json:"id,omitempty"`
	Nombre             string     `json:"nombre"`
	RUC                string     `json:"ruc"`
	Direccion          string     `json:"direccion"`
	Telefono           string     `json:"telefono"`
	Estado             bool       `json:"estado"`
	FechaCreacion      *time.Time `json:"fechaCreacion,omitempty"`
	FechaActualizacion *time.Time `json:"fechaActualizacion,omitempty"`
}
