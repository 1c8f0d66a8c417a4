package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	portsrepo "github.com/dmaulidia/fx_rates_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgxExchangeRateRepository creates a new repository for exchange rate data.
func NewPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{pool: pool}
}

// UpsertExchangeRate creates or overwrites the record for the ordered pair.
// A single INSERT ... ON CONFLICT statement keeps the write atomic per pair:
// no reader ever observes a new rate with an old source or last_updated.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			from_currency_code, to_currency_code, rate, source, last_updated,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			last_updated = EXCLUDED.last_updated,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		rate.FromCurrencyCode, rate.ToCurrencyCode, rate.Rate, string(rate.Source), rate.LastUpdated,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		// The CHECK (rate > 0) constraint is the storage-level backstop for
		// validation that already happened at the service boundary.
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %s/%s", apperrors.ErrInvalidRate, rate.FromCurrencyCode, rate.ToCurrencyCode)
		}
		return fmt.Errorf("error upserting exchange rate %s/%s: %w", rate.FromCurrencyCode, rate.ToCurrencyCode, err)
	}
	return nil
}

// FindExchangeRate retrieves the record for the exact ordered pair. A missing
// direct record is ErrNotFound; composing via the base currency is the
// conversion engine's job, never the store's.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	query := rateSelect + ` WHERE from_currency_code = $1 AND to_currency_code = $2;`
	rate := &domain.ExchangeRate{}
	var source string
	err := r.pool.QueryRow(ctx, query, fromCode, toCode).Scan(
		&rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &source, &rate.LastUpdated,
		&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate %s/%s: %w", fromCode, toCode, err)
	}
	rate.Source = domain.RateSource(source)
	return rate, nil
}

// ListExchangeRates retrieves all stored rates ordered by target code, then
// source code, for diagnostics and the rate-table read API.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := rateSelect + ` ORDER BY to_currency_code, from_currency_code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		var rate domain.ExchangeRate
		var source string
		err := row.Scan(
			&rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &source, &rate.LastUpdated,
			&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
		)
		rate.Source = domain.RateSource(source)
		return rate, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

const rateSelect = `
	SELECT from_currency_code, to_currency_code, rate, source, last_updated,
		created_at, created_by, last_updated_at, last_updated_by
	FROM exchange_rates`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
