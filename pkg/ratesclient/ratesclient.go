// Package ratesclient is the consumer-side SDK for the rate service's public
// read API. It embeds a short-TTL snapshot cache so storefront processes
// rendering many prices per screen hit the service once per window instead of
// once per price, and concurrent cache misses collapse into a single request.
package ratesclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmaulidia/fx_rates_app/pkg/ratecache"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// ErrPairNotCached indicates the requested pair is not in the current table
// snapshot. The service may still resolve it via composition; use Convert.
var ErrPairNotCached = errors.New("pair not in cached rate table")

// Rate is one entry of the service's rate table.
type Rate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`
	LastUpdated      time.Time       `json:"lastUpdated"`
	Fresh            bool            `json:"fresh"`
}

// Table is the full rate table snapshot as served by the read API.
type Table struct {
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	Rates            []Rate    `json:"rates"`
	AsOf             time.Time `json:"asOf"`
}

// ConvertResult is the service's answer to a conversion request.
type ConvertResult struct {
	Amount           decimal.Decimal `json:"amount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	Route            string          `json:"route"`
}

// Client consumes the rate service's public API.
type Client struct {
	http  *resty.Client
	table *ratecache.Cache[Table]
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	timeout time.Duration
	now     func() time.Time
}

// WithTimeout bounds each HTTP request to the service.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithNow overrides the cache clock, used by tests.
func WithNow(now func() time.Time) Option {
	return func(c *clientConfig) {
		c.now = now
	}
}

// New creates a client against the service base URL (e.g.
// "http://rates.internal:8080"). ttl is how long a fetched table snapshot is
// served before the next read triggers a refetch.
func New(baseURL string, ttl time.Duration, opts ...Option) *Client {
	cfg := clientConfig{timeout: 5 * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(cfg.timeout),
	}
	c.table = ratecache.New(c.fetchTable, ttl, ratecache.WithClock[Table](cfg.now))
	return c
}

func (c *Client) fetchTable(ctx context.Context) (Table, error) {
	var table Table
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&table).
		Get("/api/v1/rates")
	if err != nil {
		return Table{}, fmt.Errorf("fetch rate table: %w", err)
	}
	if resp.IsError() {
		return Table{}, fmt.Errorf("fetch rate table: status %d", resp.StatusCode())
	}
	return table, nil
}

// Table returns the current rate table, served from the snapshot cache while
// it is within TTL. On a failed refetch the last-good snapshot is returned
// together with the error.
func (c *Client) Table(ctx context.Context) (Table, error) {
	return c.table.Get(ctx)
}

// Rate looks up the exact ordered pair in the cached table. A pair absent
// from the snapshot is ErrPairNotCached; Convert can still resolve it through
// the service's composition path.
func (c *Client) Rate(ctx context.Context, fromCode, toCode string) (*Rate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)

	table, err := c.table.Get(ctx)
	if err != nil && len(table.Rates) == 0 {
		return nil, err
	}

	for i := range table.Rates {
		if table.Rates[i].FromCurrencyCode == fromCode && table.Rates[i].ToCurrencyCode == toCode {
			return &table.Rates[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrPairNotCached, fromCode, toCode)
}

// Convert asks the service to convert an amount. This always goes to the
// service, bypassing the table cache, because composition and rounding rules
// live server-side.
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*ConvertResult, error) {
	var result ConvertResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"amount":           amount,
			"fromCurrencyCode": strings.ToUpper(fromCode),
			"toCurrencyCode":   strings.ToUpper(toCode),
		}).
		SetResult(&result).
		Post("/api/v1/convert")
	if err != nil {
		return nil, fmt.Errorf("convert %s/%s: %w", fromCode, toCode, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("convert %s/%s: status %d", fromCode, toCode, resp.StatusCode())
	}
	return &result, nil
}

// Invalidate drops the TTL on the cached table so the next read refetches,
// e.g. after the caller learns rates were just corrected.
func (c *Client) Invalidate() {
	c.table.Invalidate()
}
