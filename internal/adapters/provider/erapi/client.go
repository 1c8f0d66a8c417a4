package erapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	portsprov "github.com/dmaulidia/fx_rates_app/internal/core/ports/providers"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Client fetches exchange rates from an open.er-api.com style endpoint:
// GET {base_url}/latest/{BASE} returns every known rate against BASE.
type Client struct {
	client *resty.Client
	name   string
	logger *slog.Logger
}

// ensure Client implements the provider port
var _ portsprov.RateProvider = (*Client)(nil)

type latestResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// NewClient creates a rate provider client. The timeout bounds the whole
// request; a slow provider fails retryably instead of hanging a refresh.
func NewClient(baseURL, name string, timeout time.Duration, logger *slog.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{
		client: client,
		name:   name,
		logger: logger,
	}
}

// Name is the provenance tag for rates fetched from this provider.
func (c *Client) Name() string {
	return c.name
}

// FetchRates retrieves rates for the given codes against base. The response
// maps currency code to "units of code per 1 unit of base". Codes the
// provider does not quote are absent from the result; non-positive quoted
// values are dropped here so they never reach the store.
func (c *Client) FetchRates(ctx context.Context, base string, codes []string) (map[string]decimal.Decimal, error) {
	var result latestResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/latest/%s", base))
	if err != nil {
		c.logger.Warn("Rate provider request failed", slog.String("provider", c.name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProviderUnavailable, err.Error())
	}
	if resp.IsError() {
		c.logger.Warn("Rate provider returned error status",
			slog.String("provider", c.name),
			slog.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrProviderUnavailable, resp.StatusCode())
	}
	if result.Result != "success" {
		return nil, fmt.Errorf("%w: result %q", apperrors.ErrProviderUnavailable, result.Result)
	}
	if result.BaseCode != base {
		return nil, fmt.Errorf("%w: response base %q does not match requested %q",
			apperrors.ErrInvalidRate, result.BaseCode, base)
	}

	rates := make(map[string]decimal.Decimal, len(codes))
	for _, code := range codes {
		value, ok := result.Rates[code]
		if !ok {
			continue
		}
		if value <= 0 {
			c.logger.Warn("Dropping non-positive rate from provider",
				slog.String("provider", c.name),
				slog.String("currency", code),
				slog.Float64("rate", value),
			)
			continue
		}
		rates[code] = decimal.NewFromFloat(value)
	}

	return rates, nil
}
