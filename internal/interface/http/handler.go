package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/kundli/internal/domain/chart"
	"github.com/yanqian/kundli/internal/domain/horoscope"
	"github.com/yanqian/kundli/internal/domain/matchmaking"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chartSvc     chart.Service
	matchSvc     matchmaking.Service
	horoscopeSvc horoscope.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chartSvc chart.Service, matchSvc matchmaking.Service, horoscopeSvc horoscope.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chartSvc:     chartSvc,
		matchSvc:     matchSvc,
		horoscopeSvc: horoscopeSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// BirthChart computes a full chart for the posted birth data.
func (h *Handler) BirthChart(c *gin.Context) {
	var req chart.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chartSvc.Compute(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Matchmaking scores the compatibility of two birth dates.
func (h *Handler) Matchmaking(c *gin.Context) {
	var req matchmaking.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.matchSvc.Match(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Horoscope returns the daily transit reading for a sign.
func (h *Handler) Horoscope(c *gin.Context) {
	var req horoscope.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.horoscopeSvc.Daily(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
