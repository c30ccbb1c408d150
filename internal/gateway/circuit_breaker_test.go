package gateway

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFallo = errors.New("fallo simulado")

func TestCircuitoTransiciones(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		UmbralFallos:  2,
		UmbralExitos:  2,
		TiempoAbierto: 20 * time.Millisecond,
	})
	assert.Equal(t, CircuitoCerrado, cb.Estado())

	// Two consecutive failures trip it open.
	_ = cb.Ejecutar(func() error { return errFallo })
	_ = cb.Ejecutar(func() error { return errFallo })
	assert.Equal(t, CircuitoAbierto, cb.Estado())

	// While open every call fast-fails.
	err := cb.Ejecutar(func() error { return nil })
	require.ErrorIs(t, err, ErrCircuitoAbierto)

	// After the dwell time one probe is allowed.
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, CircuitoSemiAbierto, cb.Estado())

	// Two successes close it again.
	require.NoError(t, cb.Ejecutar(func() error { return nil }))
	require.NoError(t, cb.Ejecutar(func() error { return nil }))
	assert.Equal(t, CircuitoCerrado, cb.Estado())
}

func TestCircuitoProbeFallidoReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		UmbralFallos:  1,
		UmbralExitos:  1,
		TiempoAbierto: 10 * time.Millisecond,
	})
	_ = cb.Ejecutar(func() error { return errFallo })
	assert.Equal(t, CircuitoAbierto, cb.Estado())

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, CircuitoSemiAbierto, cb.Estado())

	_ = cb.Ejecutar(func() error { return errFallo })
	assert.Equal(t, CircuitoAbierto, cb.Estado())
}

func TestCircuitoExitoReiniciaContadorDeFallos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{UmbralFallos: 2, UmbralExitos: 1, TiempoAbierto: time.Hour})

	_ = cb.Ejecutar(func() error { return errFallo })
	require.NoError(t, cb.Ejecutar(func() error { return nil }))
	_ = cb.Ejecutar(func() error { return errFallo })

	// Never two consecutive failures, so still closed.
	assert.Equal(t, CircuitoCerrado, cb.Estado())
}
