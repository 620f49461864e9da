package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/hms/hms-api/internal/handler/health"
	"github.com/hms/hms-api/internal/middleware"
	"github.com/hms/hms-api/internal/model"
)

// Handler registers its routes on a group; the group carries the
// authentication and role middleware declared here.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	MaxUploadSize int64
	CORS          middleware.CORSConfig
}

type Handlers struct {
	Auth        Handler
	Patient     Handler
	Appointment Handler
	Record      Handler
	Document    Handler
	Dashboard   Handler
	Staff       Handler
	Health      *health.Handler
}

type Router struct {
	engine  *gin.Engine
	metrics *routerMetrics
}

type routerMetrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hms_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hms_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

func (m *routerMetrics) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// NewRouter wires middleware and the role allow-list per route group. The
// allow-lists live here, in one place, rather than on individual handlers.
func NewRouter(cfg Config, authMW *middleware.AuthMiddleware, h Handlers) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := newRouterMetrics()
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(cfg.CORS),
		limiter.RateLimit(),
		metrics.instrument(),
	)

	h.Health.RegisterRoutes(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")

	// Login is the only unauthenticated endpoint.
	h.Auth.RegisterRoutes(api)

	clinical := api.Group("", authMW.Authenticate(), authMW.RequireRoles(middleware.AllowedClinical...))
	h.Patient.RegisterRoutes(clinical)
	h.Appointment.RegisterRoutes(clinical)
	h.Dashboard.RegisterRoutes(clinical)

	records := api.Group("", authMW.Authenticate(), authMW.RequireRoles(middleware.AllowedRecords...))
	h.Record.RegisterRoutes(records)

	documents := api.Group("",
		authMW.Authenticate(),
		authMW.RequireRoles(middleware.AllowedRecords...),
		middleware.SizeLimit(cfg.MaxUploadSize),
	)
	h.Document.RegisterRoutes(documents)

	admin := api.Group("", authMW.Authenticate(), authMW.RequireRoles(model.RoleAdmin))
	h.Staff.RegisterRoutes(admin)

	return &Router{engine: engine, metrics: metrics}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
