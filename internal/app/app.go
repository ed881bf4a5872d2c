// Package app wires configuration, store, services and handlers into the
// HTTP router.
package app

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hims-api/internal/config"
	auditHandler "github.com/jwalitptl/hims-api/internal/handler/audit"
	departmentHandler "github.com/jwalitptl/hims-api/internal/handler/department"
	doctorHandler "github.com/jwalitptl/hims-api/internal/handler/doctor"
	"github.com/jwalitptl/hims-api/internal/handler/health"
	medicalTestHandler "github.com/jwalitptl/hims-api/internal/handler/medicaltest"
	patientHandler "github.com/jwalitptl/hims-api/internal/handler/patient"
	prescriptionHandler "github.com/jwalitptl/hims-api/internal/handler/prescription"
	promHandler "github.com/jwalitptl/hims-api/internal/handler/prometheus"
	"github.com/jwalitptl/hims-api/internal/handler/session"
	"github.com/jwalitptl/hims-api/internal/middleware"
	"github.com/jwalitptl/hims-api/internal/repository/sqlstore"
	"github.com/jwalitptl/hims-api/internal/router"
	"github.com/jwalitptl/hims-api/internal/service"
	"github.com/jwalitptl/hims-api/internal/service/audit"
	"github.com/jwalitptl/hims-api/internal/service/confirm"
	"github.com/jwalitptl/hims-api/internal/service/department"
	"github.com/jwalitptl/hims-api/internal/service/doctor"
	"github.com/jwalitptl/hims-api/internal/service/medicaltest"
	"github.com/jwalitptl/hims-api/internal/service/patient"
	"github.com/jwalitptl/hims-api/internal/service/prescription"
	"github.com/jwalitptl/hims-api/pkg/auth"
	"github.com/jwalitptl/hims-api/pkg/logger"
	"github.com/jwalitptl/hims-api/pkg/messaging"
	"github.com/jwalitptl/hims-api/pkg/metrics"
	"github.com/jwalitptl/hims-api/pkg/security"
)

type Options struct {
	Config   *config.Config
	Store    *sqlstore.Store
	Broker   messaging.Broker
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *logger.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRouter builds the fully wired router.
func NewRouter(opts Options) (*router.Router, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	cfg := opts.Config

	if err := middleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps := service.Deps{
		Store:   opts.Store,
		Audit:   audit.NewService(opts.Broker, cfg.Redis.Channel, opts.Metrics, opts.Logger, opts.Now),
		Confirm: confirm.NewService(cfg.Confirmation.TTL),
		Logger:  opts.Logger,
		Now:     opts.Now,
	}

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	jwt := auth.NewJWTService(cfg.Access.JWTSecret, cfg.Access.SessionTTL, opts.Now)
	gate := middleware.NewAccessGate(hasher, map[middleware.Gate]string{
		middleware.EditGate:     cfg.Access.EditModeHash,
		middleware.ClinicalGate: cfg.Access.ClinicalHash,
	}, opts.Metrics)

	handlers := router.Handlers{
		Health:        health.NewHandler(opts.Store),
		Session:       session.NewHandler(hasher, cfg.Access.AppPasswordHash, jwt, opts.Now),
		Audit:         auditHandler.NewHandler(opts.Store.Repositories().Audit),
		Departments:   departmentHandler.NewHandler(department.NewService(deps)),
		Doctors:       doctorHandler.NewHandler(doctor.NewService(deps)),
		Patients:      patientHandler.NewHandler(patient.NewService(deps)),
		Prescriptions: prescriptionHandler.NewHandler(prescription.NewService(deps)),
		MedicalTests:  medicalTestHandler.NewHandler(medicaltest.NewService(deps)),
	}
	if opts.Gatherer != nil {
		handlers.Metrics = promHandler.New(opts.Gatherer).Handler()
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	r := router.NewRouter(middleware.NewAuthMiddleware(jwt), gate, handlers, opts.Metrics, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       corsConfig,
		Timeout:          cfg.Server.Timeout(),
		MaxBodySize:      middleware.DefaultMaxBodySize,
	})
	r.Setup()
	return r, nil
}
