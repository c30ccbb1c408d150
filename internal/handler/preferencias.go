package handler

import (
	"errors"
	"net/http"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/apierror"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/dto"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/prefs"

	"github.com/gin-gonic/gin"
)

// PreferenciasHandler persists the dark-theme flag per client. The client
// identifies itself with X-Cliente-ID (any stable opaque string).
type PreferenciasHandler struct{ store prefs.Store }

func NewPreferenciasHandler(store prefs.Store) *PreferenciasHandler {
	return &PreferenciasHandler{store: store}
}

func clienteID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Cliente-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Falta la cabecera X-Cliente-ID"))
		return "", false
	}
	return id, true
}

func (h *PreferenciasHandler) ObtenerTema(c *gin.Context) {
	id, ok := clienteID(c)
	if !ok {
		return
	}
	tema, err := h.store.ObtenerTema(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo leer la preferencia de tema"))
		return
	}
	c.JSON(http.StatusOK, dto.TemaResponse{Tema: tema})
}

func (h *PreferenciasHandler) GuardarTema(c *gin.Context) {
	id, ok := clienteID(c)
	if !ok {
		return
	}
	var req dto.GuardarTemaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.store.GuardarTema(c.Request.Context(), id, req.Tema); err != nil {
		if errors.Is(err, prefs.ErrTemaInvalido) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo guardar la preferencia de tema"))
		return
	}
	c.JSON(http.StatusOK, dto.TemaResponse{Tema: req.Tema})
}
