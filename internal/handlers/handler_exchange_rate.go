package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/dmaulidia/fx_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	currencyService     portssvc.CurrencyReaderSvc
	refreshService      portssvc.RateRefreshSvc

	// Advertised client-cache TTL for the public read endpoints.
	cacheMaxAge time.Duration
}

// registerExchangeRateRoutes registers the public rate-table read API.
func registerExchangeRateRoutes(rg *gin.RouterGroup, ers portssvc.ExchangeRateSvcFacade, cs portssvc.CurrencyReaderSvc, cacheTTL time.Duration) {
	h := &exchangeRateHandler{exchangeRateService: ers, currencyService: cs, cacheMaxAge: cacheTTL}

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRateTable)
		rates.GET("/:from/:to", h.getExchangeRate)
	}
}

// setClientCacheHeader advertises how long consumers may cache rate reads.
func (h *exchangeRateHandler) setClientCacheHeader(c *gin.Context) {
	if h.cacheMaxAge > 0 {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheMaxAge.Seconds())))
	}
}

// registerAdminRateRoutes registers privileged rate maintenance routes.
func registerAdminRateRoutes(rg *gin.RouterGroup, ers portssvc.ExchangeRateSvcFacade, rrs portssvc.RateRefreshSvc) {
	h := &exchangeRateHandler{exchangeRateService: ers, refreshService: rrs}

	rates := rg.Group("/rates")
	{
		rates.PUT("/:from/:to", h.upsertExchangeRate)
		rates.POST("/seed", h.seedRates)
		rates.POST("/refresh", h.refreshRates)
	}
}

// getRateTable godoc
// @Summary Get the full rate table
// @Description Returns every stored rate with a per-pair freshness flag
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.RateTableResponse
// @Failure 500 {object} map[string]string "Failed to retrieve rates"
// @Router /rates [get]
func (h *exchangeRateHandler) getRateTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rates"})
		return
	}

	base, err := h.currencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		logger.Error("Failed to resolve base currency", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rates"})
		return
	}

	resp := dto.RateTableResponse{
		BaseCurrencyCode: base.CurrencyCode,
		Rates:            make([]dto.ExchangeRateResponse, 0, len(rates)),
		AsOf:             time.Now(),
	}
	for i := range rates {
		resp.Rates = append(resp.Rates, dto.ToExchangeRateResponse(&rates[i], h.exchangeRateService.IsFresh(rates[i])))
	}

	h.setClientCacheHeader(c)
	c.JSON(http.StatusOK, resp)
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the stored rate for the exact ordered currency pair
// @Tags exchange rates
// @Produce json
// @Param from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param to path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		default:
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	h.setClientCacheHeader(c)
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate, h.exchangeRateService.IsFresh(*rate)))
}

// upsertExchangeRate godoc
// @Summary Upsert an exchange rate
// @Description Creates or overwrites the rate for the ordered pair (admin correction/initialization)
// @Tags exchange rates
// @Accept json
// @Produce json
// @Param from path string true "From Currency Code (3 letters)"
// @Param to path string true "To Currency Code (3 letters)"
// @Param rate body dto.UpsertExchangeRateRequest true "Rate value"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input or non-positive rate"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to upsert exchange rate"
// @Security BearerAuth
// @Router /admin/rates/{from}/{to} [put]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}
	req.FromCurrencyCode = strings.ToUpper(c.Param("from"))
	req.ToCurrencyCode = strings.ToUpper(c.Param("to"))

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
	)

	updated, err := h.exchangeRateService.UpsertExchangeRate(c.Request.Context(), req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidRate), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Rejected exchange rate upsert", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to upsert exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate upserted", slog.Any("rate", updated.Rate))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(updated, h.exchangeRateService.IsFresh(*updated)))
}

// seedRates godoc
// @Summary Seed exchange rates
// @Description Writes forward and inverse seed rates for configured pairs not already present; re-runnable
// @Tags exchange rates
// @Produce json
// @Success 200 {array} dto.SeedRateResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to seed rates"
// @Security BearerAuth
// @Router /admin/rates/seed [post]
func (h *exchangeRateHandler) seedRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	results, err := h.refreshService.SeedRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to seed rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed rates"})
		return
	}

	logger.Info("Seed completed", slog.Int("currencies", len(results)))
	c.JSON(http.StatusOK, results)
}

// refreshRates godoc
// @Summary Refresh exchange rates from the live provider
// @Description Fetches live rates for all active non-base currencies; per-currency failures are reported without failing the batch
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.RefreshReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Rate provider unavailable"
// @Failure 500 {object} map[string]string "Failed to refresh rates"
// @Security BearerAuth
// @Router /admin/rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.refreshService.RefreshRates(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderUnavailable) {
			logger.Warn("Rate provider unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Rate provider unavailable; try again later"})
			return
		}
		logger.Error("Failed to refresh rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rates"})
		return
	}

	logger.Info("Refresh completed",
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
	)
	c.JSON(http.StatusOK, report)
}
