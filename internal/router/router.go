package router

import (
	"time"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/config"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/handler"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/middleware"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/prefs"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/seleccion"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Gateway client. rdb may be nil.
func New(cfg *config.Config, gw *gateway.Client, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Services ─────────────────────────────────────────────────────────────
	stockSvc := service.NewStockValidator(gw.Productos)
	ordenSvc := service.NewOrdenService(gw.Ordenes, gw.Detalles, gw.Proveedores, stockSvc)
	sesiones := seleccion.NewStore(cfg.SesionTTL())
	prefsStore := prefs.NewStore(rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	proveedoresH := handler.NewProveedoresHandler(gw.Proveedores)
	productosH := handler.NewProductosHandler(gw.Productos)
	ordenesH := handler.NewOrdenesHandler(gw.Ordenes, gw.Detalles, ordenSvc)
	sesionesH := handler.NewSesionesHandler(sesiones, gw.Productos, ordenSvc)
	preferenciasH := handler.NewPreferenciasHandler(prefsStore)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(gw))

	v1 := r.Group("/v1")
	{
		proveedores := v1.Group("/proveedores")
		{
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/:id", proveedoresH.ObtenerPorID)
			proveedores.POST("", proveedoresH.Crear)
			proveedores.PUT("/:id", proveedoresH.Actualizar)
			proveedores.DELETE("/:id", proveedoresH.Eliminar)
		}

		productos := v1.Group("/productos")
		{
			productos.GET("", productosH.Listar)
			productos.GET("/proveedor/:proveedorId", productosH.ListarPorProveedor)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		ordenes := v1.Group("/ordenes")
		{
			ordenes.GET("", ordenesH.Listar)
			ordenes.POST("/completa", ordenesH.CrearCompleta)
			ordenes.GET("/:id", ordenesH.ObtenerPorID)
			ordenes.GET("/:id/completa", ordenesH.ObtenerCompleta)
			ordenes.PUT("/:id", ordenesH.Actualizar)
			ordenes.DELETE("/:id", ordenesH.Eliminar)

			ordenes.GET("/:id/detalles", ordenesH.ListarDetalles)
			ordenes.POST("/:id/detalles", ordenesH.CrearDetalle)
			ordenes.PUT("/:id/detalles/:detalleId", ordenesH.ActualizarDetalle)
			ordenes.DELETE("/:id/detalles/:detalleId", ordenesH.EliminarDetalle)
		}

		sesionesG := v1.Group("/sesiones")
		{
			sesionesG.POST("", sesionesH.Crear)
			sesionesG.GET("/:id", sesionesH.Obtener)
			sesionesG.PUT("/:id/proveedor", sesionesH.SeleccionarProveedor)
			sesionesG.POST("/:id/productos", sesionesH.AgregarProducto)
			sesionesG.PUT("/:id/productos/:productoId/cantidad", sesionesH.CambiarCantidad)
			sesionesG.PUT("/:id/productos/:productoId/precio", sesionesH.CambiarPrecio)
			sesionesG.DELETE("/:id/productos/:productoId", sesionesH.QuitarProducto)
			sesionesG.POST("/:id/confirmar", sesionesH.Confirmar)
			sesionesG.POST("/:id/reiniciar", sesionesH.Reiniciar)
			sesionesG.DELETE("/:id", sesionesH.Eliminar)
		}

		v1.GET("/preferencias/tema", preferenciasH.ObtenerTema)
		v1.PUT("/preferencias/tema", preferenciasH.GuardarTema)
	}

	return r
}
