// Package database provides read-only access to the iv-scanner collector database.
//
// This package includes:
//   - Connection management using GORM over SQLite (default) or PostgreSQL
//   - Query methods for the three collector tables
//   - Error types carrying the failing operation
//
// Source Tables:
//   - daily_iv: one ATM IV row per symbol per day
//   - historical_volatility: close price and HV20/HV50/HV100 per symbol per day
//   - option_chain_snapshot: full option chain per symbol per day
//
// The schema is owned by the collector. This package never writes.
//
// Data Models:
//
//	Row models are defined in the models_pkg package, payload records in the types package.
package database

import (
	"gorm.io/gorm"

	models "iv-tracker/database/models_pkg"
)

// Database holds the GORM database connection
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Row models - type aliases so callers only import database
type DailyIV = models.DailyIV
type HistoricalVolatility = models.HistoricalVolatility
type OptionChainSnapshot = models.OptionChainSnapshot
type NearTermExpiryRow = models.NearTermExpiryRow
