// Package http is the engine's one external surface: a thin Gin
// router that decodes a Profile, runs the orchestrator, and streams
// its progress events back as newline-delimited JSON, terminated by a
// finalData event carrying either the success Response or the typed
// Failure (§6). It holds no business logic of its own.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/internal/orchestrator"
	"github.com/mealpath/mealplan-engine/pkg/events"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
	"github.com/mealpath/mealplan-engine/pkg/metrics"
)

// Server owns the router and the per-request wall-clock timeout
// (§5's 180s budget).
type Server struct {
	orch        *orchestrator.Orchestrator
	log         *applogger.Logger
	requestWall time.Duration
	eventsSink  events.Sink // optional, e.g. a Kafka sink; nil if not configured
}

func NewServer(orch *orchestrator.Orchestrator, log *applogger.Logger, requestWall time.Duration) *Server {
	return &Server{orch: orch, log: log.Tag("http"), requestWall: requestWall}
}

// WithEventsSink fans every run's progress events out to sink in
// addition to the per-request NDJSON stream, so an external
// subscriber (e.g. a Kafka consumer) sees the same events a caller
// does. Returns s for chaining at construction time.
func (s *Server) WithEventsSink(sink events.Sink) *Server {
	s.eventsSink = sink
	return s
}

// Router builds the Gin engine. The caller owns listening/shutdown.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(metricsMiddleware())

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/mealplan", s.handleMealPlan)
	}

	return router
}

// requestIDMiddleware stamps every request with a correlation id, so
// a run's progress log lines can be tied back to the HTTP request
// that triggered them.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "mealplan-engine", "timestamp": time.Now().UTC()})
}

type runOutcome struct {
	resp *orchestrator.Response
	fail *orchestrator.Failure
}

// handleMealPlan decodes the request profile, runs the orchestrator
// in the background, and relays progress events to the client as soon
// as they're published, so a slow run (market run + nutrition
// resolve across many ingredients) doesn't leave the caller staring
// at a blank connection for 180 seconds.
func (s *Server) handleMealPlan(c *gin.Context) {
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BLUEPRINT_INVALID", "reason": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestWall)
	defer cancel()

	channelSink := events.NewChannelSink(256)
	var sink events.Sink = channelSink
	if s.eventsSink != nil {
		sink = events.MultiSink{Sinks: []events.Sink{channelSink, s.eventsSink}}
	}
	resultCh := make(chan runOutcome, 1)
	go func() {
		start := time.Now()
		resp, fail := s.orch.Run(ctx, profile, sink)
		metrics.RunDuration.Observe(time.Since(start).Seconds())
		if fail != nil {
			metrics.RunsTotal.WithLabelValues(fail.Error).Inc()
		} else {
			metrics.RunsTotal.WithLabelValues("success").Inc()
		}
		sink.Close()
		resultCh <- runOutcome{resp: resp, fail: fail}
	}()

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)
	flusher, canFlush := c.Writer.(http.Flusher)

	for raw := range channelSink.Events() {
		writeLine(c, raw)
		if canFlush {
			flusher.Flush()
		}
	}

	outcome := <-resultCh
	if outcome.fail != nil {
		s.log.Warn("mealplan run failed", "error_code", outcome.fail.Error, "reason", outcome.fail.Reason)
		final, _ := json.Marshal(events.Final{Event: "finalData", Data: outcome.fail})
		writeLine(c, final)
		if canFlush {
			flusher.Flush()
		}
	}
}

func writeLine(c *gin.Context, raw json.RawMessage) {
	_, _ = c.Writer.Write(raw)
	_, _ = c.Writer.Write([]byte("\n"))
}

// corsMiddleware allows the engine to be called directly from a
// browser-based client without a separate API gateway in front of it.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
