package handlers

import (
	"errors"

	"github.com/dmaulidia/fx_rates_app/cmd/docs"
	portssvc "github.com/dmaulidia/fx_rates_app/internal/core/ports/services"
	"github.com/dmaulidia/fx_rates_app/internal/middleware"
	"github.com/dmaulidia/fx_rates_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	registerHealthRoutes(r, services.ExchangeRate)

	setupAPIV1Routes(r, cfg, services, limiterInstance)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	// Public read surface, rate-limited per client IP.
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))
	registerCurrencyRoutes(v1, services.Currency)
	registerExchangeRateRoutes(v1, services.ExchangeRate, services.Currency, cfg.CacheTTL)
	registerConvertRoutes(v1, services.Conversion)

	// Privileged admin surface for initialization and correction. Tokens come
	// from the storefront's auth system; this service only validates them.
	admin := r.Group("/api/v1/admin", middleware.AuthMiddleware(cfg.JWTSecret))
	registerAdminCurrencyRoutes(admin, services.Currency)
	registerAdminRateRoutes(admin, services.ExchangeRate, services.Refresh)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// bindingErrorMessage flattens validator errors into a single readable line;
// other binding failures fall back to the raw error text.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msg := "Invalid request:"
		for _, fe := range verrs {
			msg += " field '" + fe.Field() + "' failed on '" + fe.Tag() + "';"
		}
		return msg
	}
	return "Invalid request format: " + err.Error()
}
