package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/config"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/email"
	appointmentHandler "github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler/appointment"
	authHandler "github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler/auth"
	contactHandler "github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler/contact"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler/health"
	prescriptionHandler "github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler/prescription"
	userHandler "github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler/user"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/middleware"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository/memory"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/repository/postgres"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/router"
	appointmentService "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/appointment"
	authService "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/auth"
	contactService "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/contact"
	prescriptionService "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/prescription"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/seed"
	userService "github.com/tsireledzonetshilonwe/quick-health-hub/internal/service/user"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/security"
)

const metricsNamespace = "quickhealth"

// app holds everything serve and seed need, plus the connections to close.
type app struct {
	router *router.Router
	seed   *seed.Service

	db    *sqlx.DB
	redis *redis.Client
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	repos, err := a.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := a.openSessionStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	m := metrics.New(metricsNamespace)
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	sessions := session.NewManager(store, cfg.Session, cfg.IsProduction(), m)

	// Initialize services
	authSvc := authService.NewService(repos.Users, hasher, m)
	userSvc := userService.NewService(repos.Users, hasher)
	appointmentSvc := appointmentService.NewService(repos.Appointments, repos.Users)
	prescriptionSvc := prescriptionService.NewService(repos.Prescriptions, repos.Users)
	contactSvc := contactService.NewService(repos.Contacts, email.NewService(cfg.SMTP), cfg.SMTP.Inbox)
	a.seed = seed.NewService(repos, hasher)

	deps := map[string]health.Pinger{}
	if a.db != nil {
		deps["database"] = a.db
	}
	if a.redis != nil {
		deps["redis"] = health.PingFunc(func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		})
	}

	// Initialize handlers
	handlers := router.Handlers{
		Auth:         authHandler.NewHandler(authSvc, sessions),
		Health:       health.NewHandler(deps),
		Contact:      contactHandler.NewHandler(contactSvc),
		User:         userHandler.NewHandler(userSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Prescription: prescriptionHandler.NewHandler(prescriptionSvc),
	}

	a.router = router.NewRouter(sessions, handlers, m, router.RouterConfig{
		Production: cfg.IsProduction(),
		RateLimit: middleware.RateLimiterConfig{
			RPS:   cfg.Rate.RPS,
			Burst: cfg.Rate.Burst,
		},
		CORSConfig: middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins),
	})
	a.router.Setup()

	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg *config.Config) (*repository.Repositories, error) {
	if cfg.Database.Driver == config.StorageDriverMemory {
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		return memory.NewRepositories(), nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	a.db = db
	return postgres.NewRepositories(db), nil
}

func (a *app) openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if cfg.Session.Store == config.SessionStoreMemory {
		return session.NewMemoryStore(10 * time.Minute), nil
	}

	client, err := session.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.redis = client
	return session.NewRedisStore(client), nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
}
