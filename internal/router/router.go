package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	authhandler "github.com/doi-radiologia/portal-api/internal/handler/auth"
	contenthandler "github.com/doi-radiologia/portal-api/internal/handler/content"
	healthhandler "github.com/doi-radiologia/portal-api/internal/handler/health"
	patienthandler "github.com/doi-radiologia/portal-api/internal/handler/patient"
	portalhandler "github.com/doi-radiologia/portal-api/internal/handler/portal"
	profilehandler "github.com/doi-radiologia/portal-api/internal/handler/profile"
	studyhandler "github.com/doi-radiologia/portal-api/internal/handler/study"
	"github.com/doi-radiologia/portal-api/internal/middleware"
	"github.com/doi-radiologia/portal-api/internal/model"
)

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	authH    *authhandler.Handler
	profileH *profilehandler.Handler
	patientH *patienthandler.Handler
	studyH   *studyhandler.Handler
	contentH *contenthandler.Handler
	portalH  *portalhandler.Handler
	healthH  *healthhandler.Handler
	metrics  *routerMetrics
	registry *prometheus.Registry
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	profileH *profilehandler.Handler,
	patientH *patienthandler.Handler,
	studyH *studyhandler.Handler,
	contentH *contenthandler.Handler,
	portalH *portalhandler.Handler,
	healthH *healthhandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()

	engine := gin.New()

	registry := prometheus.NewRegistry()
	metrics := initRouterMetrics(registry)

	r := &Router{
		engine:   engine,
		auth:     auth,
		authH:    authH,
		profileH: profileH,
		patientH: patientH,
		studyH:   studyH,
		contentH: contentH,
		portalH:  portalH,
		healthH:  healthH,
		metrics:  metrics,
		registry: registry,
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	// Dashboard shells and session restore live at browser paths,
	// outside the JSON API.
	root := r.engine.Group("")
	r.portalH.RegisterRoutes(root)

	rootSession := r.engine.Group("", r.auth.Authenticate())
	r.portalH.RegisterSessionRoute(rootSession)

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)

	// Public routes: authentication and landing-page content.
	r.authH.RegisterRoutes(api)
	r.contentH.RegisterPublicRoutes(api)

	// Any valid session: logout and image downloads.
	session := api.Group("")
	session.Use(r.auth.Authenticate())
	r.authH.RegisterProtectedRoutes(session)
	r.studyH.RegisterFileRoutes(session)

	client := api.Group("")
	client.Use(r.auth.Authenticate(), r.auth.RequireProfile())
	r.studyH.RegisterClientRoutes(client)

	// Staff routes: patient directory and study catalog.
	staff := api.Group("")
	staff.Use(r.auth.Authenticate(), r.auth.RequireRole(model.RoleAdmin, model.RoleEmpleado))
	r.patientH.RegisterRoutes(staff)
	r.studyH.RegisterStaffRoutes(staff)

	// Admin routes: user roles and site content.
	admin := api.Group("")
	admin.Use(r.auth.Authenticate(), r.auth.RequireRole(model.RoleAdmin))
	r.profileH.RegisterRoutes(admin)
	r.contentH.RegisterAdminRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(registry *prometheus.Registry) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "portal_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}

	registry.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
