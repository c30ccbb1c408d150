// Package gateway implements the typed HTTP client for the purchasing API
// Gateway. Every resource call goes through one base client with a fixed
// request timeout, a circuit breaker and centralized error normalization, so
// callers only ever see a *gateway.Error with a human-readable message.
package gateway

import "fmt"

// Kind classifies a normalized gateway failure.
type Kind int

const (
	// KindServidor: a response arrived with a non-2xx status.
	KindServidor Kind = iota
	// KindSinConexion: the request was sent but no response arrived
	// (connection refused, timeout, circuit open).
	KindSinConexion
	// KindSolicitud: the request could never be sent (bad URL, marshal
	// failure, context misuse).
	KindSolicitud
)

// Error is the single error type returned by every gateway call.
type Error struct {
	Kind    Kind
	Status  int // HTTP status when Kind == KindServidor, 0 otherwise
	Mensaje string
	causa   error
}

func (e *Error) Error() string { return e.Mensaje }

func (e *Error) Unwrap() error { return e.causa }

// errorPayload is the structured error envelope the gateway may return.
type errorPayload struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (p errorPayload) mensaje() string {
	if p.Message != "" {
		return p.Message
	}
	return p.Detail
}

// servidorError builds the normalized message for a received error response:
// the payload's message field when present, a generic status message otherwise.
func servidorError(status int, payload errorPayload, causa error) *Error {
	msg := payload.mensaje()
	if msg == "" {
		msg = fmt.Sprintf("Error del servidor: %d", status)
	}
	return &Error{Kind: KindServidor, Status: status, Mensaje: msg, causa: causa}
}

// sinConexionError names the expected gateway port so the operator knows what
// to start.
func sinConexionError(puerto string, causa error) *Error {
	return &Error{
		Kind:    KindSinConexion,
		Mensaje: fmt.Sprintf("No se pudo conectar al servidor. Verifique que el API Gateway esté ejecutándose en el puerto %s.", puerto),
		causa:   causa,
	}
}

func solicitudError(causa error) *Error {
	return &Error{
		Kind:    KindSolicitud,
		Mensaje: fmt.Sprintf("Error de configuración: %v", causa),
		causa:   causa,
	}
}
