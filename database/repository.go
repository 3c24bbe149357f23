package database

import (
	"context"
)

// VolatilityRepository runs the read queries behind the dashboard
type VolatilityRepository struct {
	db *Database
}

// NewVolatilityRepository creates a new volatility repository
func NewVolatilityRepository(db *Database) *VolatilityRepository {
	return &VolatilityRepository{db: db}
}

// GetLatestDailyIV returns the most recent daily_iv row of every symbol,
// highest ATM IV first. Rows without an ATM IV sort last on every backend.
func (r *VolatilityRepository) GetLatestDailyIV(ctx context.Context) ([]DailyIV, error) {
	var rows []DailyIV

	query := `
		SELECT d.symbol, d.date, d.stock_price, d.atm_iv, d.call_iv, d.put_iv, d.atm_dte, d.atm_expiry
		FROM daily_iv d
		INNER JOIN (
			SELECT symbol, MAX(date) AS md FROM daily_iv GROUP BY symbol
		) m ON d.symbol = m.symbol AND d.date = m.md
		ORDER BY (CASE WHEN d.atm_iv IS NULL THEN 1 ELSE 0 END), d.atm_iv DESC, d.symbol
	`

	if err := r.db.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, WrapDBError("GetLatestDailyIV", err)
	}
	return rows, nil
}

// GetLatestHV returns the newest historical_volatility row for a symbol, or nil if it has none
func (r *VolatilityRepository) GetLatestHV(ctx context.Context, symbol string) (*HistoricalVolatility, error) {
	var row HistoricalVolatility

	query := `
		SELECT symbol, date, close_price, hv_20, hv_50, hv_100
		FROM historical_volatility
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT 1
	`

	result := r.db.db.WithContext(ctx).Raw(query, symbol).Scan(&row)
	if result.Error != nil {
		return nil, WrapDBError("GetLatestHV", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

// GetHV20History returns up to limit non-null HV20 samples, newest first
func (r *VolatilityRepository) GetHV20History(ctx context.Context, symbol string, limit int) ([]HistoricalVolatility, error) {
	if limit <= 0 {
		limit = DefaultHVHistoryDays
	}

	var rows []HistoricalVolatility

	query := `
		SELECT symbol, date, hv_20
		FROM historical_volatility
		WHERE symbol = ? AND hv_20 IS NOT NULL
		ORDER BY date DESC
		LIMIT ?
	`

	if err := r.db.db.WithContext(ctx).Raw(query, symbol, limit).Scan(&rows).Error; err != nil {
		return nil, WrapDBError("GetHV20History", err)
	}
	return rows, nil
}

// GetHVSeries returns up to limit (date, close, HV20, HV50) rows with a non-null HV20,
// in ascending date order
func (r *VolatilityRepository) GetHVSeries(ctx context.Context, symbol string, limit int) ([]HistoricalVolatility, error) {
	if limit <= 0 {
		limit = DefaultHVChartPoints
	}

	var rows []HistoricalVolatility

	query := `
		SELECT symbol, date, close_price, hv_20, hv_50
		FROM historical_volatility
		WHERE symbol = ? AND hv_20 IS NOT NULL
		ORDER BY date DESC
		LIMIT ?
	`

	if err := r.db.db.WithContext(ctx).Raw(query, symbol, limit).Scan(&rows).Error; err != nil {
		return nil, WrapDBError("GetHVSeries", err)
	}

	// Newest-first LIMIT keeps the latest window; flip it for charting
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// GetOptionChain returns every leg of a symbol's chain on one snapshot date,
// ordered by strike then option type
func (r *VolatilityRepository) GetOptionChain(ctx context.Context, symbol, date string) ([]OptionChainSnapshot, error) {
	var rows []OptionChainSnapshot

	query := `
		SELECT option_type, strike_price, implied_volatility, delta, gamma, theta, vega,
		       bid_price, ask_price, volume, open_interest
		FROM option_chain_snapshot
		WHERE symbol = ? AND date = ?
		ORDER BY strike_price, option_type
	`

	if err := r.db.db.WithContext(ctx).Raw(query, symbol, date).Scan(&rows).Error; err != nil {
		return nil, WrapDBError("GetOptionChain", err)
	}
	return rows, nil
}
