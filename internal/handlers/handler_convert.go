package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/dto"
	"github.com/dmaulidia/fx_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// convertHandler handles synchronous conversion calls, usable inline in
// pricing/display logic.
type convertHandler struct {
	conversionService portssvc.ConversionSvc
}

// registerConvertRoutes registers the conversion route.
func registerConvertRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvc) {
	h := &convertHandler{conversionService: conversionService}
	rg.POST("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Resolves the applicable rate (direct or composed via the base currency) and rounds half-to-even to the target currency's decimal places
// @Tags conversion
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "Amount and currency pair"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No stored rate route for the pair"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Router /convert [post]
func (h *convertHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	result, err := h.conversionService.Convert(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("No rate route for conversion",
				slog.String("from", req.FromCurrencyCode),
				slog.String("to", req.ToCurrencyCode),
			)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to convert", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
