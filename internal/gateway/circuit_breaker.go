package gateway

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker guarding gateway calls (Closed → Open → Half-Open).
// When the gateway is down we fast-fail instead of burning the 3 s request
// timeout on every call; nothing is ever retried automatically.

// EstadoCircuito represents the breaker state.
type EstadoCircuito int

const (
	CircuitoCerrado EstadoCircuito = iota
	CircuitoAbierto
	CircuitoSemiAbierto
)

func (e EstadoCircuito) String() string {
	switch e {
	case CircuitoCerrado:
		return "cerrado"
	case CircuitoAbierto:
		return "abierto"
	case CircuitoSemiAbierto:
		return "semi-abierto"
	default:
		return "desconocido"
	}
}

// ErrCircuitoAbierto is returned while the breaker is fast-failing.
var ErrCircuitoAbierto = errors.New("circuito abierto: gateway no disponible")

// CircuitBreakerConfig holds the tunable thresholds.
type CircuitBreakerConfig struct {
	UmbralFallos  int           // consecutive failures to trip open
	UmbralExitos  int           // consecutive half-open successes to close
	TiempoAbierto time.Duration // open dwell time before probing
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{UmbralFallos: 5, UmbralExitos: 2, TiempoAbierto: 60 * time.Second}
}

type CircuitBreaker struct {
	mu          sync.Mutex
	estado      EstadoCircuito
	fallos      int
	exitos      int
	ultimoFallo time.Time
	cfg         CircuitBreakerConfig
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.UmbralFallos <= 0 {
		cfg.UmbralFallos = 5
	}
	if cfg.UmbralExitos <= 0 {
		cfg.UmbralExitos = 2
	}
	if cfg.TiempoAbierto <= 0 {
		cfg.TiempoAbierto = 60 * time.Second
	}
	return &CircuitBreaker{estado: CircuitoCerrado, cfg: cfg}
}

// Estado reports the current state, transitioning open → half-open once the
// dwell time has elapsed.
func (cb *CircuitBreaker) Estado() EstadoCircuito {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.estado == CircuitoAbierto && time.Since(cb.ultimoFallo) >= cb.cfg.TiempoAbierto {
		cb.estado = CircuitoSemiAbierto
		cb.exitos = 0
	}
	return cb.estado
}

// Ejecutar runs fn through the breaker, returning ErrCircuitoAbierto
// immediately while open.
func (cb *CircuitBreaker) Ejecutar(fn func() error) error {
	if cb.Estado() == CircuitoAbierto {
		return ErrCircuitoAbierto
	}

	err := fn()
	cb.reportar(err != nil)
	return err
}

// reportar records one call outcome.
func (cb *CircuitBreaker) reportar(fallo bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if fallo {
		cb.registrarFallo()
	} else {
		cb.registrarExito()
	}
}

func (cb *CircuitBreaker) registrarFallo() {
	cb.fallos++
	cb.ultimoFallo = time.Now()
	switch cb.estado {
	case CircuitoCerrado:
		if cb.fallos >= cb.cfg.UmbralFallos {
			cb.estado = CircuitoAbierto
			cb.exitos = 0
		}
	case CircuitoSemiAbierto:
		cb.estado = CircuitoAbierto
		cb.fallos = 0
	}
}

func (cb *CircuitBreaker) registrarExito() {
	switch cb.estado {
	case CircuitoCerrado:
		cb.fallos = 0
	case CircuitoSemiAbierto:
		cb.exitos++
		if cb.exitos >= cb.cfg.UmbralExitos {
			cb.estado = CircuitoCerrado
			cb.fallos = 0
			cb.exitos = 0
		}
	}
}
