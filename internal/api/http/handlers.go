package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/faleproxy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/faleproxy/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/faleproxy/backend/internal/proxy"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	pipeline  *proxy.Pipeline
	logger    *logging.Logger
	startTime time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(pipeline *proxy.Pipeline, logger *logging.Logger) *Handlers {
	return &Handlers{
		pipeline:  pipeline,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Root reports the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Faleproxy",
		"version": Version,
	})
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}

// Fetch retrieves a page, rewrites it and returns the envelope.
// Accepts a JSON or form-encoded body with a single url field.
func (h *Handlers) Fetch(c *gin.Context) {
	ctx := c.Request.Context()
	logger := h.logger.WithRequestID(string(tracing.GetTraceID(ctx)))

	var req proxy.FetchRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		// A url of the wrong JSON type cannot be a URL
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "url" {
			c.JSON(http.StatusBadRequest, proxy.FailureEnvelope(proxy.MsgInvalidURL))
			return
		}
		logger.Info("Malformed fetch request", zap.Error(err))
		c.JSON(http.StatusBadRequest, proxy.FailureEnvelope("Invalid request: "+err.Error()))
		return
	}

	envelope, status := h.pipeline.Run(ctx, req)

	if !envelope.Success {
		logger.Info("Fetch request failed",
			zap.String("url", req.URL),
			zap.Int("status", status),
			zap.String("error", envelope.Error),
		)
	}

	c.JSON(status, envelope)
}
