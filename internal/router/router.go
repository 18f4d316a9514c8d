package router

import (
	"time"

	"github.com/edulopezdev/forestBarber/internal/config"
	"github.com/edulopezdev/forestBarber/internal/handler"
	"github.com/edulopezdev/forestBarber/internal/middleware"
	"github.com/edulopezdev/forestBarber/internal/repository"
	"github.com/edulopezdev/forestBarber/internal/service"
	"github.com/edulopezdev/forestBarber/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	imagenRepo := repository.NewImagenRepository(db)
	atencionRepo := repository.NewAtencionRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	cierreRepo := repository.NewCierreDiarioRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	hasher := &service.BcryptHasher{}
	authSvc := service.NewAuthService(usuarioRepo, hasher, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, hasher)
	productoSvc := service.NewProductoService(productoRepo, imagenRepo, rdb)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	stockSvc := service.NewStockService(productoRepo, cierreRepo, dispatcher, cfg.StockMinimo, cfg.AlertsEmailTo)
	atencionSvc := service.NewAtencionService(atencionRepo, usuarioRepo, productoRepo, stockSvc)
	ventaSvc := service.NewVentaService(atencionRepo)
	pagoSvc := service.NewPagoService(pagoRepo, atencionRepo)
	cierreSvc := service.NewCierreService(cierreRepo, authSvc, stockSvc, dispatcher)
	turnoSvc := service.NewTurnoService(turnoRepo, usuarioRepo)
	reporteSvc := service.NewReporteService(ventaSvc, turnoSvc, cierreSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, usuarioSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	productosH := handler.NewProductosHandler(productoSvc, stockSvc, cfg.ImageStoragePath)
	atencionesH := handler.NewAtencionesHandler(atencionSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	cierresH := handler.NewCierresHandler(cierreSvc)
	turnosH := handler.NewTurnosHandler(turnoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/api/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Uploaded images are served straight from disk.
	r.Static("/api/archivos", cfg.ImageStoragePath)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		staff := middleware.RequireRole("Administrador", "Barbero")
		admin := middleware.RequireRole("Administrador")

		api.GET("/auth/perfil", authH.Perfil)
		api.PUT("/auth/perfil", authH.ActualizarPerfil)

		usuarios := api.Group("/usuarios")
		{
			usuarios.GET("/clientes", staff, usuariosH.ListarClientes)
			usuarios.GET("/roles", admin, usuariosH.ListarRoles)
			usuarios.POST("", staff, usuariosH.Crear)
			usuarios.GET("", admin, usuariosH.Listar)
			usuarios.GET("/:id", staff, usuariosH.Obtener)
			usuarios.PUT("/:id", admin, usuariosH.Actualizar)
			usuarios.PATCH("/:id/estado", admin, usuariosH.CambiarEstado)
			usuarios.DELETE("/:id", admin, usuariosH.Eliminar)
		}

		// Catalog reads are open to staff; writes and stock adjustments are
		// administrador only.
		api.GET("/productos", staff, productosH.Listar)
		api.GET("/productos/bajo-stock", staff, productosH.BajoStock)
		api.GET("/productos/:id", staff, productosH.Obtener)
		prods := api.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PATCH("/:id/stock", productosH.AjustarStock)
			prods.POST("/:id/imagen", productosH.SubirImagen)
		}

		atenciones := api.Group("/atenciones", staff)
		{
			atenciones.POST("", atencionesH.Crear)
			atenciones.GET("", atencionesH.Listar)
			atenciones.GET("/:id", atencionesH.Obtener)
			atenciones.PUT("/:id", atencionesH.Actualizar)
			atenciones.PUT("/:id/detalles", atencionesH.ActualizarDetalles)
			atenciones.DELETE("/:id", atencionesH.Eliminar)
			atenciones.GET("/barbero/:id/resumen", atencionesH.ResumenBarbero)
		}

		ventas := api.Group("/ventas", staff)
		{
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Obtener)
		}

		pagos := api.Group("/pagos", staff)
		{
			pagos.POST("", pagosH.Crear)
			pagos.GET("", pagosH.Listar)
			pagos.GET("/:id", pagosH.Obtener)
			pagos.GET("/atencion/:id", pagosH.ListarPorAtencion)
			pagos.DELETE("/:id", pagosH.Eliminar)
		}

		cierre := api.Group("/cierrediario", admin)
		{
			cierre.GET("", cierresH.Listar)
			cierre.GET("/resumen", cierresH.Resumen)
			cierre.GET("/fecha", cierresH.PorFecha)
			cierre.GET("/estado", cierresH.Estado)
			cierre.GET("/venta/:id", cierresH.VentaCerrada)
			cierre.GET("/:id", cierresH.Obtener)
			cierre.POST("/cerrar", cierresH.Cerrar)
			cierre.PUT("/bloquear/:id", cierresH.Bloquear)
		}

		turnos := api.Group("/turnos", staff)
		{
			turnos.POST("", turnosH.Crear)
			turnos.GET("", turnosH.Listar)
			turnos.GET("/estados", turnosH.Estados)
			turnos.GET("/fecha", turnosH.PorFecha)
			turnos.GET("/cliente/:id", turnosH.PorCliente)
			turnos.GET("/estado/:nombre", turnosH.PorEstado)
			turnos.GET("/:id", turnosH.Obtener)
			turnos.PUT("/:id", turnosH.Actualizar)
			turnos.DELETE("/:id", turnosH.Eliminar)
		}

		reportes := api.Group("/reportes", admin)
		{
			reportes.GET("/dia", reportesH.Dia)
			reportes.GET("/rango", reportesH.Rango)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
