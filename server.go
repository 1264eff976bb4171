package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/seo-optimizer/geochecker/analyzer"
	"github.com/seo-optimizer/geochecker/logging"
	"github.com/seo-optimizer/geochecker/metrics"
	"github.com/seo-optimizer/geochecker/middleware"
	"github.com/seo-optimizer/geochecker/stats"
)

const (
	errURLRequired   = "URL is required"
	errAnalyzeFailed = "Failed to analyze URL. Make sure it is accessible and valid."

	shutdownTimeout = 30 * time.Second
	cleanupInterval = time.Hour
)

// pageAnalyzer is the part of the analyzer the HTTP layer depends on.
type pageAnalyzer interface {
	Analyze(ctx context.Context, url string) (*analyzer.Result, error)
}

// handlers serves the JSON API.
type handlers struct {
	analyzer pageAnalyzer
	stats    *stats.Storage
	log      logging.Logger
	devMode  bool
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) analyze(c *gin.Context) {
	log := h.log.With(logging.String("request_id", middleware.RequestIDFrom(c)))

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("Unreadable analyze request", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errAnalyzeFailed})
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errURLRequired})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), url)
	if err != nil {
		log.Error("Analysis failed", logging.String("url", url), logging.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errAnalyzeFailed})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handlers) statistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Summary(h.devMode))
}

// routerDeps are the collaborators newRouter wires together.
type routerDeps struct {
	analyzer       pageAnalyzer
	stats          *stats.Storage
	collector      *metrics.PrometheusCollector
	registry       *prometheus.Registry
	log            logging.Logger
	allowedOrigins []string
	devMode        bool
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.log),
		middleware.Metrics(d.collector),
		middleware.ErrorHandler(d.log, errAnalyzeFailed),
		middleware.CORS(d.allowedOrigins),
	)

	h := &handlers{analyzer: d.analyzer, stats: d.stats, log: d.log, devMode: d.devMode}

	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/analyze", h.analyze)
		api.GET("/statistics", h.statistics)
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})))

	return r
}

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	gin.SetMode(a.cfg.Server.GinMode)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewPrometheusCollector(serviceName)
	if err := collector.Register(registry); err != nil {
		return err
	}

	storage := stats.NewStorage()
	router := newRouter(routerDeps{
		analyzer:       a.newAnalyzer(analyzer.WithRecorder(analyzer.MultiRecorder(collector, storage))),
		stats:          storage,
		collector:      collector,
		registry:       registry,
		log:            a.log,
		allowedOrigins: a.cfg.Server.AllowedOrigins,
		devMode:        a.cfg.DevMode,
	})

	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.cleanupStats(ctx, storage)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server starting", logging.String("addr", srv.Addr), logging.String("gin_mode", gin.Mode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("Server stopped")
	return nil
}

func (a *app) cleanupStats(ctx context.Context, storage *stats.Storage) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := storage.Cleanup(a.cfg.Server.StatsRetention); n > 0 {
				a.log.Debug("Dropped old statistics", logging.Int("months", n))
			}
		}
	}
}
