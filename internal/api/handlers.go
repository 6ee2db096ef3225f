package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veridict/veridict/internal/model"
)

// Analyzer is the slice of the pipeline the handlers use
type Analyzer interface {
	Analyze(ctx context.Context, raw string) (*model.Report, error)
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyzeRequest is the JSON body of an analysis request
type AnalyzeRequest struct {
	Input   string `json:"input" binding:"required"`
	Profile string `json:"profile"`
}

// Handler holds the HTTP request handlers. One analyzer per configured
// scoring profile, all built at startup.
type Handler struct {
	analyzers      map[string]Analyzer
	defaultProfile string
	logger         *zap.Logger
}

// NewHandler creates a handler serving the given analyzers
func NewHandler(analyzers map[string]Analyzer, defaultProfile string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		analyzers:      analyzers,
		defaultProfile: defaultProfile,
		logger:         logger,
	}
}

// Analyze handles POST /api/v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid request body: " + err.Error(),
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	profile := req.Profile
	if profile == "" {
		profile = h.defaultProfile
	}

	analyzer, ok := h.analyzers[profile]
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "unknown scoring profile: " + profile,
			Code:      "UNKNOWN_PROFILE",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	report, err := analyzer.Analyze(c.Request.Context(), req.Input)
	if err != nil {
		if errors.Is(err, model.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:     err.Error(),
				Code:      "EMPTY_INPUT",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		h.logger.Error("analysis failed",
			zap.String("profile", profile),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     err.Error(),
			Code:      "ANALYSIS_ERROR",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Profiles handles GET /api/v1/profiles
func (h *Handler) Profiles(c *gin.Context) {
	names := make([]string, 0, len(h.analyzers))
	for name := range h.analyzers {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{
		"profiles": names,
		"default":  h.defaultProfile,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "veridict",
	})
}
