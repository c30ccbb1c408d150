package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoClienteDePrueba(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second, DefaultCircuitBreakerConfig())
}

func TestGetAllDecodificaProveedores(t *testing.T) {
	c := nuevoClienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/proveedores", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"ACME","ruc":"123","estado":true}]`))
	})

	proveedores, err := c.Proveedores.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, proveedores, 1)
	assert.Equal(t, int64(1), proveedores[0].ID)
	assert.Equal(t, "ACME", proveedores[0].Nombre)
	assert.True(t, proveedores[0].Estado)
}

func TestErrorServidorUsaMensajeDelPayload(t *testing.T) {
	c := nuevoClienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"RUC duplicado"}`))
	})

	_, err := c.Proveedores.GetAll(context.Background())
	require.Error(t, err)
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindServidor, ge.Kind)
	assert.Equal(t, http.StatusConflict, ge.Status)
	assert.Equal(t, "RUC duplicado", ge.Mensaje)
}

func TestErrorServidorGenericoSinPayload(t *testing.T) {
	c := nuevoClienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Proveedores.GetAll(context.Background())
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Error del servidor: 500", ge.Mensaje)
}

func TestErrorSinConexionNombraElPuerto(t *testing.T) {
	// Port from a server that is already closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, 500*time.Millisecond, DefaultCircuitBreakerConfig())
	_, err := c.Proveedores.GetAll(context.Background())

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindSinConexion, ge.Kind)
	assert.Contains(t, ge.Mensaje, "No se pudo conectar al servidor")
	assert.Contains(t, ge.Mensaje, puertoDe(url))
}

func TestCircuitoAbreTrasFallosConsecutivos(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := CircuitBreakerConfig{UmbralFallos: 3, UmbralExitos: 1, TiempoAbierto: time.Hour}
	c := New(url, 200*time.Millisecond, cfg)

	for i := 0; i < 3; i++ {
		_, err := c.Proveedores.GetAll(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, CircuitoAbierto, c.EstadoCircuito())

	// Fast-fail: still the "unreachable" message, without hitting the wire.
	inicio := time.Now()
	_, err := c.Proveedores.GetAll(context.Background())
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, KindSinConexion, ge.Kind)
	assert.Less(t, time.Since(inicio), 100*time.Millisecond)
}

func TestErroresDelServidorNoAbrenElCircuito(t *testing.T) {
	c := nuevoClienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 10; i++ {
		_, err := c.Proveedores.GetByID(context.Background(), 99)
		require.Error(t, err)
	}
	assert.Equal(t, CircuitoCerrado, c.EstadoCircuito())
}

func TestCheckConnection(t *testing.T) {
	c := nuevoClienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	assert.True(t, c.CheckConnection(context.Background()))

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	caido := New(url, 200*time.Millisecond, DefaultCircuitBreakerConfig())
	assert.False(t, caido.CheckConnection(context.Background()))
}

func TestDeleteSinCuerpo(t *testing.T) {
	c := nuevoClienteDePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/proveedores/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.Proveedores.Delete(context.Background(), 7))
}

func TestPuertoDe(t *testing.T) {
	assert.Equal(t, "8085", puertoDe("http://localhost:8085"))
	assert.Equal(t, "80", puertoDe("http://gateway.interno"))
	assert.Equal(t, "443", puertoDe("https://gateway.interno"))
}
