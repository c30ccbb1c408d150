package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the base HTTP client shared by every resource API. All requests
// go against one base URL with a fixed timeout; failures are normalized to
// *Error before reaching callers.
type Client struct {
	baseURL string
	puerto  string
	http    *http.Client
	breaker *CircuitBreaker

	Proveedores ProveedoresAPI
	Productos   ProductosAPI
	Ordenes     OrdenesAPI
	Detalles    DetallesAPI
}

// New builds a gateway client. timeout applies per request (the original
// front-end used 3 s; config keeps that default).
func New(baseURL string, timeout time.Duration, cbCfg CircuitBreakerConfig) *Client {
	c := &Client{
		baseURL: baseURL,
		puerto:  puertoDe(baseURL),
		http:    &http.Client{Timeout: timeout},
		breaker: NewCircuitBreaker(cbCfg),
	}
	c.Proveedores = &proveedoresAPI{c: c}
	c.Productos = &productosAPI{c: c}
	c.Ordenes = &ordenesAPI{c: c}
	c.Detalles = &detallesAPI{c: c}
	return c
}

// puertoDe extracts the port the operator should check when the gateway is
// unreachable.
func puertoDe(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "8085"
	}
	if p := u.Port(); p != "" {
		return p
	}
	if u.Scheme == "https" {
		return "443"
	}
	return "80"
}

// EstadoCircuito exposes the breaker state for the health endpoint.
func (c *Client) EstadoCircuito() EstadoCircuito { return c.breaker.Estado() }

// CheckConnection issues a low-cost read against the supplier collection and
// collapses any failure into a boolean "disconnected" signal.
func (c *Client) CheckConnection(ctx context.Context) bool {
	_, err := c.Proveedores.GetAll(ctx)
	return err == nil
}

// do executes one JSON round-trip. body and out may be nil. Only transport
// failures feed the circuit breaker; a 4xx/5xx means the gateway is alive.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.breaker.Estado() == CircuitoAbierto {
		return sinConexionError(c.puerto, ErrCircuitoAbierto)
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return solicitudError(err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return solicitudError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.breaker.reportar(true)
		return sinConexionError(c.puerto, err)
	}
	defer resp.Body.Close()
	c.breaker.reportar(false)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ep errorPayload
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
			_ = json.Unmarshal(data, &ep)
		}
		return servidorError(resp.StatusCode, ep, nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindServidor, Status: resp.StatusCode, Mensaje: "Respuesta inválida del servidor", causa: err}
		}
	}
	return nil
}
