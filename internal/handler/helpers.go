package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/apierror"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// paramID parses a numeric path parameter; ids are assigned by the gateway.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return id, true
}

// respondGatewayError maps a normalized gateway failure onto our own status:
// server errors pass their status through, an unreachable gateway becomes a
// 503, and request-construction errors are our bug, hence 500.
func respondGatewayError(c *gin.Context, err error) {
	var ge *gateway.Error
	if errors.As(err, &ge) {
		switch ge.Kind {
		case gateway.KindServidor:
			c.JSON(ge.Status, apierror.New(ge.Mensaje))
		case gateway.KindSinConexion:
			c.JSON(http.StatusServiceUnavailable, apierror.New(ge.Mensaje))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New(ge.Mensaje))
		}
		return
	}
	c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
}
