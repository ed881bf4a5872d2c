package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hims-api/internal/middleware"
	"github.com/jwalitptl/hims-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// RecordHandler mounts read routes freely and guards writes with the given
// middleware.
type RecordHandler interface {
	RegisterRoutes(r *gin.RouterGroup, write gin.HandlerFunc)
}

type Handlers struct {
	Health        Handler
	Session       Handler
	Audit         Handler
	Departments   RecordHandler
	Doctors       RecordHandler
	Patients      RecordHandler
	Prescriptions RecordHandler
	MedicalTests  RecordHandler
	Metrics       gin.HandlerFunc
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	Timeout          time.Duration
	MaxBodySize      int64
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	gate     *middleware.AccessGate
	handlers Handlers
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	gate *middleware.AccessGate,
	handlers Handlers,
	m *metrics.Metrics,
	config RouterConfig,
) *Router {
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		gate:     gate,
		handlers: handlers,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Metrics(m),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
	)
	if config.Timeout > 0 {
		engine.Use(middleware.Timeout(config.Timeout))
	}
	if config.MaxBodySize > 0 {
		engine.Use(middleware.SizeLimit(config.MaxBodySize))
	}
	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	if r.handlers.Metrics != nil {
		r.engine.GET("/metrics", r.handlers.Metrics)
	}

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	// Public routes
	r.handlers.Health.RegisterRoutes(api)
	r.handlers.Session.RegisterRoutes(api)

	// Everything else needs an unlocked session.
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.handlers.Audit.RegisterRoutes(protected)

	edit := r.gate.Require(middleware.EditGate)
	r.handlers.Departments.RegisterRoutes(protected, edit)
	r.handlers.Doctors.RegisterRoutes(protected, edit)
	r.handlers.Patients.RegisterRoutes(protected, edit)

	clinical := r.gate.Require(middleware.ClinicalGate)
	r.handlers.Prescriptions.RegisterRoutes(protected, clinical)
	r.handlers.MedicalTests.RegisterRoutes(protected, clinical)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
