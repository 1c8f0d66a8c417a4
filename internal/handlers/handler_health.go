package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/dmaulidia/fx_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// healthHandler answers liveness and rate-data freshness probes.
type healthHandler struct {
	exchangeRateService portssvc.ExchangeRateReaderSvc
}

// registerHealthRoutes registers health endpoints at the engine root.
func registerHealthRoutes(r *gin.Engine, ers portssvc.ExchangeRateReaderSvc) {
	h := &healthHandler{exchangeRateService: ers}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/health/freshness", h.freshness)
}

// freshness godoc
// @Summary Check rate-data freshness
// @Description Answers "is the system's rate data currently fresh?" for monitoring use
// @Tags health
// @Produce json
// @Success 200 {object} dto.FreshnessResponse
// @Failure 500 {object} map[string]string "Failed to check freshness"
// @Router /health/freshness [get]
func (h *healthHandler) freshness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list rates for freshness check", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check freshness"})
		return
	}

	resp := dto.FreshnessResponse{
		TotalPairs: len(rates),
		CheckedAt:  time.Now(),
	}
	for _, rate := range rates {
		if !h.exchangeRateService.IsFresh(rate) {
			resp.StalePairs++
		}
	}
	// An empty table is not fresh; nothing has been confirmed yet.
	resp.Fresh = resp.TotalPairs > 0 && resp.StalePairs == 0

	c.JSON(http.StatusOK, resp)
}
