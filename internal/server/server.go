// Package server exposes the tax engine over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/transform"
	"github.com/rgehrsitz/taxgo/pkg/logging"
)

// Options configures a Server
type Options struct {
	Logger *slog.Logger
	// Registry receives the server metrics; nil creates a private registry
	Registry *prometheus.Registry
	// Debug enables gin debug mode and engine debug logging
	Debug bool
}

// Server serves calculation and comparison requests for one tax configuration
type Server struct {
	config     *domain.TaxConfiguration
	calc       *calculation.CalculationEngine
	compare    *compare.CompareEngine
	solver     *breakeven.Solver
	transforms *transform.TransformRegistry
	templates  *transform.TemplateRegistry
	metrics    *Metrics
	registry   *prometheus.Registry
	logger     *slog.Logger
	router     *gin.Engine
}

// New builds a server and its routes
func New(cfg *domain.TaxConfiguration, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	calc := calculation.NewCalculationEngine(cfg)
	if opts.Debug {
		calc.SetLogger(logging.NewSlogAdapter(logger))
	}

	s := &Server{
		config:     cfg,
		calc:       calc,
		compare:    compare.NewCompareEngine(calc),
		solver:     breakeven.NewDefaultSolver(calc),
		transforms: transform.NewTransformRegistry(),
		templates:  transform.CreateBuiltInTemplates(),
		metrics:    NewMetrics(reg),
		registry:   reg,
		logger:     logger,
	}
	s.router = s.routes(opts.Debug)
	return s
}

func (s *Server) routes(debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), observe(s.logger, s.metrics))

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.POST("/calculate", s.handleCalculate)
		v1.POST("/compare", s.handleCompare)
		v1.POST("/whatif", s.handleWhatIf)
		v1.POST("/breakeven", s.handleBreakEven)
	}
	return router
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "fiscal_year", s.config.FiscalYear.Label)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
