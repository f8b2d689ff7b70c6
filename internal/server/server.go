// Package server implements the HTTP front end: a Gin router serving
// static files from a directory, a /query endpoint backed by the
// multi-index query processor, a /quitquitquit shutdown trigger, and
// Prometheus metrics.
package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/semaphore"

	"github.com/chloe-mi/Mini-Google/internal/apperrors"
	"github.com/chloe-mi/Mini-Google/query"
)

// maxConcurrentQueries bounds in-flight request handling to the fixed
// worker-pool size the core's concurrency model specifies: 8.
const maxConcurrentQueries = 8

var (
	queriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpusidx_queries_total",
		Help: "Total number of queries processed by the HTTP front end.",
	})
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "corpusidx_query_duration_seconds",
		Help: "Latency of /query requests.",
	})
	queryResultCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "corpusidx_query_result_count",
		Help:    "Number of ranked results returned per query.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)

// Server holds the dependencies shared by every request handler: the
// query processor, the shared shutdown flag, and the worker-pool
// semaphore.
type Server struct {
	router     *gin.Engine
	processor  *query.Processor
	staticDir  string
	sem        *semaphore.Weighted
	shuttingMu sync.Mutex
	shutdown   bool
	onShutdown func()
}

// New builds a Server serving staticDir and answering queries against
// processor. onShutdown is invoked once when /quitquitquit is hit; the
// caller typically uses it to stop accepting new connections.
func New(processor *query.Processor, staticDir string, onShutdown func()) *Server {
	router := gin.Default()
	s := &Server{
		router:     router,
		processor:  processor,
		staticDir:  staticDir,
		sem:        semaphore.NewWeighted(maxConcurrentQueries),
		onShutdown: onShutdown,
	}
	s.routes()
	return s
}

// Handler returns the http.Handler to pass to http.Server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.Use(s.boundConcurrency)

	s.router.GET("/healthz", s.handleHealthz)
	s.router.GET("/query", s.handleQuery)
	s.router.GET("/quitquitquit", s.handleQuit)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.NoRoute(s.handleStatic)
}

// boundConcurrency caps concurrent in-flight request handling at
// maxConcurrentQueries, the Go-native expression of the spec's fixed
// 8-worker pool: net/http already multiplexes connections onto goroutines,
// so the pool is modeled as a bound on how many of those goroutines may be
// doing core work at once, rather than as a hand-rolled accept loop.
func (s *Server) boundConcurrency(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.sem.Acquire(ctx, 1); err != nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	defer s.sem.Release(1)
	c.Next()
}

func (s *Server) handleHealthz(c *gin.Context) {
	s.shuttingMu.Lock()
	down := s.shutdown
	s.shuttingMu.Unlock()

	if down {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusOK)
}

type queryResponse struct {
	QueryID string        `json:"query_id"`
	Terms   []string      `json:"terms"`
	Results []resultEntry `json:"results"`
}

type resultEntry struct {
	Name string `json:"name"`
	Rank uint64 `json:"rank"`
}

func (s *Server) handleQuery(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("terms"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrEmptyQuery.Error()})
		return
	}
	terms := strings.Fields(strings.ToLower(raw))

	start := time.Now()
	results, err := s.processor.ProcessQuery(terms)
	queryDuration.Observe(time.Since(start).Seconds())
	queriesTotal.Inc()
	if err != nil {
		log.Printf("server: query %q failed: %v", terms, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	queryResultCount.Observe(float64(len(results)))

	resp := queryResponse{QueryID: uuid.NewString(), Terms: terms, Results: make([]resultEntry, len(results))}
	for i, r := range results {
		resp.Results[i] = resultEntry{Name: r.Name, Rank: r.Rank}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleQuit(c *gin.Context) {
	s.shuttingMu.Lock()
	already := s.shutdown
	s.shutdown = true
	s.shuttingMu.Unlock()

	c.String(http.StatusOK, "shutting down\n")
	if !already && s.onShutdown != nil {
		go s.onShutdown()
	}
}

func (s *Server) handleStatic(c *gin.Context) {
	// http.ServeFile redirects any request path ending in "/index.html" to
	// its directory; serving the directory instead returns that same
	// index.html directly.
	if strings.HasSuffix(c.Request.URL.Path, "/index.html") {
		c.Request.URL.Path = strings.TrimSuffix(c.Request.URL.Path, "index.html")
	}
	c.File(s.staticDir + c.Request.URL.Path)
}

// ValidatePort checks the HTTP server's port argument against the spec's
// 1024-65535 range.
func ValidatePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if port < 1024 || port > 65535 {
		return 0, &portRangeError{port}
	}
	return port, nil
}

type portRangeError struct{ port int }

func (e *portRangeError) Error() string {
	return "port must be between 1024 and 65535, got " + strconv.Itoa(e.port)
}

// Shutdown cleanly stops httpServer, giving in-flight requests up to the
// given grace period to complete.
func Shutdown(ctx context.Context, httpServer *http.Server) error {
	return httpServer.Shutdown(ctx)
}
