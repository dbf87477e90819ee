// Package server exposes the HTTP surface: ingestion, order queries,
// eligibility, return options, initiation, calendar and XLSX export, and
// policy lookup.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sendbackhq/sendback/internal/export"
	"github.com/sendbackhq/sendback/internal/extract"
	"github.com/sendbackhq/sendback/internal/policy"
	"github.com/sendbackhq/sendback/internal/repository"
)

// Config holds server wiring options.
type Config struct {
	AllowedOrigins []string
}

// Server bundles the router with its collaborators. All handlers are
// stateless; shared state is the store, the read-only policy table, and the
// extraction pipeline.
type Server struct {
	router     *gin.Engine
	orders     repository.OrderRepository
	pipeline   *extract.Pipeline
	policies   *policy.Store
	summarizer *policy.Summarizer
	exporter   *export.Service
	logger     *zap.Logger

	// now is injectable so deadline behavior is testable.
	now func() time.Time
}

func NewServer(
	cfg Config,
	orders repository.OrderRepository,
	pipeline *extract.Pipeline,
	policies *policy.Store,
	summarizer *policy.Summarizer,
	exporter *export.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:     gin.New(),
		orders:     orders,
		pipeline:   pipeline,
		policies:   policies,
		summarizer: summarizer,
		exporter:   exporter,
		logger:     logger,
		now:        time.Now,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(RequestLogger(logger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = false
	s.router.Use(cors.New(corsCfg))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)

	s.router.POST("/ingest/receipt", s.ingestReceipt)

	s.router.GET("/orders", s.listOrders)
	s.router.GET("/orders/export", s.exportOrders)
	s.router.GET("/order/:id", s.getOrder)
	s.router.GET("/order/:id/items", s.listOrderItems)
	s.router.GET("/order/:id/eligibility", s.orderEligibility)
	s.router.GET("/order/:id/options", s.orderOptions)
	s.router.POST("/order/:id/initiate", s.initiateReturn)
	s.router.GET("/order/:id/calendar", s.orderCalendar)

	s.router.GET("/policy", s.lookupPolicy)
}

// Handler returns the router for http.Server and tests.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"ok": true})
}
