package database

import (
	"context"
	"fmt"

	"iv-tracker/database/types"
)

// Dashboard Query Methods

// GetNearTermExpiries lists the (symbol, expiry) pairs expiring within maxDTE days
// on the latest chain snapshot date, ordered by symbol then DTE
func (r *VolatilityRepository) GetNearTermExpiries(ctx context.Context, maxDTE int) ([]NearTermExpiryRow, error) {
	if maxDTE <= 0 {
		maxDTE = DefaultNearTermMaxDTE
	}

	var rows []NearTermExpiryRow

	query := `
		SELECT symbol, expiry_date, MIN(dte) AS dte, MAX(stock_price) AS stock_price
		FROM option_chain_snapshot
		WHERE dte <= ?
		AND date = (SELECT MAX(date) FROM option_chain_snapshot)
		GROUP BY symbol, expiry_date
		ORDER BY symbol, MIN(dte), expiry_date
	`

	if err := r.db.db.WithContext(ctx).Raw(query, maxDTE).Scan(&rows).Error; err != nil {
		return nil, WrapDBError("GetNearTermExpiries", err)
	}
	return rows, nil
}

// GetNearTermChain returns the legs of one expiry from the symbol's own latest snapshot
func (r *VolatilityRepository) GetNearTermChain(ctx context.Context, symbol string, expiry types.Date) ([]OptionChainSnapshot, error) {
	var rows []OptionChainSnapshot

	query := `
		SELECT option_type, strike_price, implied_volatility, delta, gamma, theta, vega,
		       bid_price, ask_price, volume, open_interest
		FROM option_chain_snapshot
		WHERE symbol = ? AND expiry_date = ?
		AND date = (SELECT MAX(date) FROM option_chain_snapshot WHERE symbol = ?)
		ORDER BY strike_price, option_type
	`

	if err := r.db.db.WithContext(ctx).Raw(query, symbol, expiry.String(), symbol).Scan(&rows).Error; err != nil {
		return nil, WrapDBError("GetNearTermChain", err)
	}
	return rows, nil
}

// CountRows returns the number of rows in one of the collector tables
func (r *VolatilityRepository) CountRows(ctx context.Context, table string) (int64, error) {
	if !isStatsTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var count int64
	if err := r.db.db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
		return 0, WrapDBError("CountRows("+table+")", err)
	}
	return count, nil
}

// GetStats counts every stats table
func (r *VolatilityRepository) GetStats(ctx context.Context) (types.Stats, error) {
	var stats types.Stats

	counts := make(map[string]int64, len(StatsTables))
	for _, table := range StatsTables {
		n, err := r.CountRows(ctx, table)
		if err != nil {
			return stats, err
		}
		counts[table] = n
	}

	stats.DailyIV = counts[TableDailyIV]
	stats.OptionChainSnapshot = counts[TableOptionChainSnapshot]
	stats.HistoricalVolatility = counts[TableHistoricalVolatility]
	return stats, nil
}

func isStatsTable(table string) bool {
	for _, t := range StatsTables {
		if t == table {
			return true
		}
	}
	return false
}
