package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/handler/prometheus"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/middleware"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/model"
	"github.com/tsireledzonetshilonwe/quick-health-hub/internal/session"
	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// AdminHandler also exposes routes under the ADMIN-only group.
type AdminHandler interface {
	Handler
	RegisterAdminRoutes(*gin.RouterGroup)
}

type Handlers struct {
	Auth         Handler
	Health       Handler
	Contact      AdminHandler
	User         AdminHandler
	Appointment  AdminHandler
	Prescription AdminHandler
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
	metrics  *metrics.Metrics
}

type RouterConfig struct {
	Production bool
	RateLimit  middleware.RateLimiterConfig
	CORSConfig middleware.CORSConfig
}

func NewRouter(
	sessions *session.Manager,
	handlers Handlers,
	m *metrics.Metrics,
	config RouterConfig,
) *Router {
	if config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		handlers: handlers,
		metrics:  m,
	}

	exposeCauses := !config.Production
	rateLimiter := middleware.NewRateLimiter(config.RateLimit)

	engine.Use(
		middleware.Recovery(exposeCauses),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.ErrorHandler(exposeCauses, m),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(config.Production)),
		middleware.CORS(config.CORSConfig),
		rateLimiter.RateLimit(),
		middleware.Session(sessions),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "Not found"})
	})

	return r
}

func (r *Router) Setup() {
	prometheus.New(r.metrics).RegisterRoutes(r.engine)

	api := r.engine.Group("/api")

	// Public routes
	r.handlers.Health.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api)
	r.handlers.Contact.RegisterRoutes(api)

	// Signed-in routes
	protected := api.Group("")
	protected.Use(middleware.Authenticate())
	r.handlers.User.RegisterRoutes(protected)
	r.handlers.Appointment.RegisterRoutes(protected)
	r.handlers.Prescription.RegisterRoutes(protected)

	admin := api.Group("/admin")
	admin.Use(middleware.Authenticate(), middleware.RequireRole(model.RoleAdmin))
	r.handlers.User.RegisterAdminRoutes(admin)
	r.handlers.Appointment.RegisterAdminRoutes(admin)
	r.handlers.Prescription.RegisterAdminRoutes(admin)
	r.handlers.Contact.RegisterAdminRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
