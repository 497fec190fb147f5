package proxy

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/faleproxy/backend/internal/infrastructure/monitoring"
)

// State is a pipeline stage
type State int

const (
	StateIdle State = iota
	StateValidating
	StateFetching
	StateGating
	StateTransforming
	StateDone
	StateFailed
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateFetching:
		return "fetching"
	case StateGating:
		return "gating"
	case StateTransforming:
		return "transforming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchRequest is the caller input
type FetchRequest struct {
	URL string `json:"url" form:"url"`
}

// Envelope is the uniform response shape. On success Content, Title and
// OriginalURL are set and Error is empty; on failure only Error is set.
type Envelope struct {
	Success     bool    `json:"success"`
	Content     string  `json:"content,omitempty"`
	Title       *string `json:"title,omitempty"` // pointer so an empty title is still emitted on success
	OriginalURL string  `json:"originalUrl,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// SuccessEnvelope builds a success envelope
func SuccessEnvelope(result *TransformResult, originalURL string) *Envelope {
	title := result.Title
	return &Envelope{
		Success:     true,
		Content:     result.HTML,
		Title:       &title,
		OriginalURL: originalURL,
	}
}

// FailureEnvelope builds a failure envelope
func FailureEnvelope(message string) *Envelope {
	return &Envelope{Success: false, Error: message}
}

// Pipeline sequences validation, fetch, content-type gate and transformation.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	fetcher     Fetcher
	transformer *Transformer
	logger      *zap.Logger
	metrics     *monitoring.Metrics
}

// NewPipeline creates a pipeline. A nil logger disables logging.
func NewPipeline(fetcher Fetcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fetcher:     fetcher,
		transformer: NewTransformer(),
		logger:      logger,
	}
}

// WithMetrics attaches a metrics collector
func (p *Pipeline) WithMetrics(metrics *monitoring.Metrics) *Pipeline {
	p.metrics = metrics
	return p
}

// Run executes one request and returns the envelope with its HTTP status
func (p *Pipeline) Run(ctx context.Context, req FetchRequest) (*Envelope, int) {
	start := time.Now()

	result, err := p.Execute(ctx, req)
	if err != nil {
		pe := AsError(err)
		p.recordOutcome(string(pe.Kind), start)
		return FailureEnvelope(pe.Message), pe.HTTPStatus()
	}

	p.recordOutcome("success", start)
	return SuccessEnvelope(result, req.URL), http.StatusOK
}

// Execute runs each stage once. Errors are *Error values tagged with the
// stage that failed.
func (p *Pipeline) Execute(ctx context.Context, req FetchRequest) (*TransformResult, error) {
	// Validating
	if req.URL == "" {
		return nil, ErrURLRequired.at(StateValidating)
	}
	base, err := ParseAbsolute(req.URL)
	if err != nil {
		return nil, AsError(err).at(StateValidating)
	}

	// Fetching
	fetchStart := time.Now()
	doc, err := p.fetcher.Fetch(ctx, base)
	p.recordFetch(fetchStart, err)
	if err != nil {
		p.logger.Error("Error fetching URL",
			zap.String("url", req.URL),
			zap.String("stage", StateFetching.String()),
			zap.Error(err),
		)
		return nil, NewFetchError(err).at(StateFetching)
	}

	// Gating
	if err := CheckContentType(doc.ContentType); err != nil {
		p.logger.Warn("Content type is not HTML",
			zap.String("url", req.URL),
			zap.String("content_type", doc.ContentType),
		)
		return nil, AsError(err).at(StateGating)
	}

	// Transforming
	result, err := p.transformer.Transform(doc.RawHTML, base)
	if err != nil {
		return nil, (&Error{Kind: KindTransform, Message: err.Error(), Cause: err}).at(StateTransforming)
	}

	p.recordRewrites(result.Stats)
	p.logger.Debug("Document transformed",
		zap.String("url", req.URL),
		zap.String("final_url", doc.FinalURL),
		zap.Int("urls_rewritten", result.Stats.URLsRewritten),
		zap.Int("style_urls_rewritten", result.Stats.StyleURLsRewritten),
		zap.Int("text_nodes_rewritten", result.Stats.TextNodesRewritten),
	)

	return result, nil
}

func (p *Pipeline) recordOutcome(outcome string, start time.Time) {
	if p.metrics != nil {
		p.metrics.RecordProxyRequest(outcome, time.Since(start))
	}
}

func (p *Pipeline) recordFetch(start time.Time, err error) {
	if p.metrics != nil {
		p.metrics.RecordFetch(err == nil, time.Since(start))
	}
}

func (p *Pipeline) recordRewrites(stats TransformStats) {
	if p.metrics != nil {
		p.metrics.RecordRewrites(stats.URLsRewritten, stats.StyleURLsRewritten, stats.TextNodesRewritten)
	}
}
