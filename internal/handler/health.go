package handler

import (
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"

	"github.com/gin-gonic/gin"
)

// Health reports our own liveness plus the gateway connectivity probe the
// order page uses to decide whether to render its full-page error state. The
// probe is a cheap read of the supplier collection; a degraded answer is a
// 503 so the front-end flips into "retry" mode on status alone.
func Health(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		conectado := gw.CheckConnection(c.Request.Context())

		status := http.StatusOK
		if !conectado {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":       conectado,
			"gateway":  estadoTexto(conectado),
			"circuito": gw.EstadoCircuito().String(),
		})
	}
}

func estadoTexto(conectado bool) string {
	if conectado {
		return "conectado"
	}
	return "desconectado"
}
