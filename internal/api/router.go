package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/concertshift/timesheet/docs"
	"github.com/concertshift/timesheet/internal/api/handler"
	"github.com/concertshift/timesheet/internal/api/middleware"
	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth        ports.AuthService
	Shifts      ports.ShiftService
	Concerts    ports.ConcertService
	Translators ports.TranslatorService
	Reports     ports.ReportService
}

// RouterConfig carries everything the router needs besides the services.
type RouterConfig struct {
	JWTSecret string
	// Location is used to read date-only query parameters.
	Location *time.Location
	Logger   zerolog.Logger
	// Readiness is mounted at /health/ready when set.
	Readiness *handler.HealthDependenciesHandler
	// Registry receives the HTTP request metrics; the default Prometheus
	// registry is used when nil.
	Registry *prometheus.Registry
}

// @title                       Concert Shift Timesheet API
// @version                     1.0
// @description                 Clock-in/clock-out timesheets for concert translators.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(prometheusMiddleware(cfg.Registry))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	entryHandler := handler.NewTimeEntryHandler(svc.Shifts, cfg.Location)
	concertHandler := handler.NewConcertHandler(svc.Concerts)
	translatorHandler := handler.NewTranslatorHandler(svc.Translators)
	reportHandler := handler.NewReportHandler(svc.Reports, cfg.Location)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Time entries (any authenticated user, own entries only) ---
	entries := e.Group("/time-entries", authMiddleware)
	entries.POST("", entryHandler.Create)
	entries.GET("", entryHandler.List)
	entries.GET("/active", entryHandler.Active)
	entries.PATCH("/:id", entryHandler.Close)
	entries.DELETE("/:id", entryHandler.Delete)

	// --- Concerts ---
	concerts := e.Group("/concerts", authMiddleware)
	concerts.GET("", concertHandler.List)
	concerts.POST("", concertHandler.Create, adminOnly)
	concerts.PATCH("/:id", concertHandler.Update, adminOnly)
	concerts.GET("/:id/report", reportHandler.Concert, adminOnly)

	// --- Admin ---
	admin := e.Group("/admin", authMiddleware, adminOnly)
	admin.GET("/time-entries", entryHandler.ListAll)
	admin.PUT("/time-entries/:id", entryHandler.Edit)
	admin.GET("/reports/download", reportHandler.Global)

	translators := e.Group("/translators", authMiddleware, adminOnly)
	translators.GET("", translatorHandler.List)
	translators.POST("", translatorHandler.Create)
	translators.DELETE("/:id", translatorHandler.Delete)
	translators.GET("/:id/report", reportHandler.Translator)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness  – is the process alive?
	if cfg.Readiness != nil {
		e.GET("/health/ready", cfg.Readiness.Readiness) // readiness – are dependencies up?
	}

	// --- Ops ---
	e.GET("/metrics", metricsHandler(cfg.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "timesheet",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
