package router

import (
	"time"

	"github.com/Xdennizhu20X/back-abg/internal/config"
	"github.com/Xdennizhu20X/back-abg/internal/handler"
	"github.com/Xdennizhu20X/back-abg/internal/infra"
	"github.com/Xdennizhu20X/back-abg/internal/middleware"
	"github.com/Xdennizhu20X/back-abg/internal/model"
	"github.com/Xdennizhu20X/back-abg/internal/repository"
	"github.com/Xdennizhu20X/back-abg/internal/service"
	"github.com/Xdennizhu20X/back-abg/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// movilización service, which the caller also feeds to the escalation cron.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, service.MovilizacionService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	predioRepo := repository.NewPredioRepository(db)
	movilizacionRepo := repository.NewMovilizacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg, dispatcher)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, dispatcher)
	predioSvc := service.NewPredioService(predioRepo)
	movilizacionSvc := service.NewMovilizacionService(movilizacionRepo, usuarioRepo, cfg, dispatcher, mailer)
	reporteSvc := service.NewReporteService(movilizacionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	prediosH := handler.NewPrediosHandler(predioSvc)
	movilizacionesH := handler.NewMovilizacionesHandler(movilizacionSvc, cfg.CronSecret)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	jwtMW := middleware.JWTAuth(cfg.JWTSecret, usuarioRepo)
	soloRevisores := middleware.RequireRole(model.RolTecnico, model.RolAdmin)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/forgot-password", middleware.LoginRateLimiter(), authH.ForgotPassword)
		auth.POST("/reset-password", authH.ResetPassword)
		auth.POST("/logout", jwtMW, authH.Logout)
		auth.GET("/profile", jwtMW, authH.Profile)
	}

	usuarios := api.Group("/usuarios")
	{
		// Alias público heredado del API original.
		usuarios.POST("/registro", authH.Register)
		usuarios.GET("/perfil", jwtMW, usuariosH.Perfil)

		admin := usuarios.Group("/admin", jwtMW, middleware.RequireRole(model.RolAdmin))
		{
			admin.GET("/usuarios", usuariosH.Listar)
			admin.PUT("/usuarios/:id", usuariosH.Actualizar)
			admin.PATCH("/usuarios/:id/aprobar", usuariosH.Aprobar)
			admin.DELETE("/usuarios/:id/rechazar", usuariosH.RechazarRegistro)
			admin.DELETE("/usuarios/:id", usuariosH.Eliminar)
		}
	}

	predios := api.Group("/predios", jwtMW)
	{
		predios.POST("", prediosH.Crear)
		predios.GET("", prediosH.Listar)
		predios.GET("/usuario/:usuarioId", prediosH.ListarPorUsuario)
		predios.PUT("/:id", prediosH.Actualizar)
		predios.DELETE("/:id", prediosH.Eliminar)
	}

	movilizaciones := api.Group("/movilizaciones")
	{
		// El enlace del certificado viaja por correo; se sirve sin sesión.
		movilizaciones.GET("/:id/certificado", movilizacionesH.Certificado)
		// Barrido accesible a un scheduler externo, protegido por X-Cron-Token.
		movilizaciones.POST("/actualizar-estados-automaticos", movilizacionesH.EjecutarSweep)

		protegido := movilizaciones.Group("", jwtMW)
		{
			protegido.POST("/registro-completo", middleware.RequireRole(model.RolGanadero), movilizacionesH.RegistrarCompleta)
			protegido.GET("", movilizacionesH.Listar)
			protegido.GET("/filtrar", movilizacionesH.Listar)
			protegido.GET("/pendientes/count", movilizacionesH.ContarPendientes)
			protegido.GET("/estadisticas", movilizacionesH.Estadisticas)
			protegido.GET("/:id", movilizacionesH.Obtener)
			protegido.GET("/:id/animales", movilizacionesH.Animales)
			protegido.PATCH("/:id/estado", soloRevisores, movilizacionesH.ActualizarEstado)
			protegido.PUT("/:id/estado", soloRevisores, movilizacionesH.ActualizarEstado)
			protegido.POST("/:id/validacion", soloRevisores, movilizacionesH.Validar)
			protegido.PUT("/:id/rechazar", soloRevisores, movilizacionesH.Rechazar)
		}
	}

	reportes := api.Group("/reportes", jwtMW)
	{
		reportes.GET("/movilizaciones", reportesH.DescargarMovilizaciones)
		reportes.GET("/usuario/:cedula", reportesH.DescargarPorCedula)
		reportes.GET("/datos-grafico", reportesH.DatosGrafico)
		reportes.GET("/datos-grafico-global", reportesH.DatosGraficoGlobal)
	}

	return r, movilizacionSvc
}
