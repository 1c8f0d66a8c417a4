package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmaulidia/fx_rates_app/internal/apperrors"
	"github.com/dmaulidia/fx_rates_app/internal/core/domain"
	portsrepo "github.com/dmaulidia/fx_rates_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCurrencyRepository implements the currency repository ports using pgxpool.
type PgxCurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCurrencyRepository creates a new repository for currency data.
func NewPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{pool: pool}
}

// SaveCurrency inserts or updates a currency. The partial unique index on
// is_base makes a second active base currency a constraint violation, which
// is surfaced as ErrDuplicate.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	query := `
		INSERT INTO currencies (currency_code, symbol, name, is_base, is_active, decimal_places,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (currency_code) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			is_base = EXCLUDED.is_base,
			is_active = EXCLUDED.is_active,
			decimal_places = EXCLUDED.decimal_places,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.pool.Exec(ctx, query,
		currency.CurrencyCode,
		currency.Symbol,
		currency.Name,
		currency.IsBase,
		currency.IsActive,
		currency.DecimalPlaces,
		currency.CreatedAt,
		currency.CreatedBy,
		currency.LastUpdatedAt,
		currency.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: another active base currency already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save currency %s: %w", currency.CurrencyCode, err)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := currencySelect + ` WHERE currency_code = $1;`
	row := r.pool.QueryRow(ctx, query, currencyCode)
	return scanCurrency(row, currencyCode)
}

// FindBaseCurrency retrieves the single active base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := currencySelect + ` WHERE is_base AND is_active;`
	row := r.pool.QueryRow(ctx, query)
	return scanCurrency(row, "base")
}

// ListCurrencies retrieves currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	query := currencySelect
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY currency_code;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		var currency domain.Currency
		err := row.Scan(
			&currency.CurrencyCode,
			&currency.Symbol,
			&currency.Name,
			&currency.IsBase,
			&currency.IsActive,
			&currency.DecimalPlaces,
			&currency.CreatedAt,
			&currency.CreatedBy,
			&currency.LastUpdatedAt,
			&currency.LastUpdatedBy,
		)
		return currency, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

const currencySelect = `
	SELECT currency_code, symbol, name, is_base, is_active, decimal_places,
		created_at, created_by, last_updated_at, last_updated_by
	FROM currencies`

func scanCurrency(row pgx.Row, ref string) (*domain.Currency, error) {
	var currency domain.Currency
	err := row.Scan(
		&currency.CurrencyCode,
		&currency.Symbol,
		&currency.Name,
		&currency.IsBase,
		&currency.IsActive,
		&currency.DecimalPlaces,
		&currency.CreatedAt,
		&currency.CreatedBy,
		&currency.LastUpdatedAt,
		&currency.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency %s: %w", ref, err)
	}
	return &currency, nil
}
