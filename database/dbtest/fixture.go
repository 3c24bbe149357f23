// Package dbtest builds throwaway collector databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Schema mirrors the tables the iv-scanner collector creates
const Schema = `
CREATE TABLE daily_iv (
	symbol TEXT NOT NULL,
	date TEXT NOT NULL,
	stock_price REAL,
	atm_iv REAL,
	call_iv REAL,
	put_iv REAL,
	atm_dte INTEGER,
	atm_expiry TEXT,
	PRIMARY KEY (symbol, date)
);
CREATE TABLE historical_volatility (
	symbol TEXT NOT NULL,
	date TEXT NOT NULL,
	close_price REAL,
	hv_20 REAL,
	hv_50 REAL,
	hv_100 REAL,
	PRIMARY KEY (symbol, date)
);
CREATE TABLE option_chain_snapshot (
	symbol TEXT NOT NULL,
	date TEXT NOT NULL,
	expiry_date TEXT NOT NULL,
	dte INTEGER,
	stock_price REAL,
	option_type TEXT,
	strike_price REAL,
	implied_volatility REAL,
	delta REAL,
	gamma REAL,
	theta REAL,
	vega REAL,
	bid_price REAL,
	ask_price REAL,
	volume INTEGER,
	open_interest INTEGER
);
`

// DailyIV is a daily_iv fixture row. Nil pointers insert NULL.
type DailyIV struct {
	Symbol     string
	Date       string
	StockPrice *float64
	ATMIV      *float64
	CallIV     *float64
	PutIV      *float64
	ATMDTE     *int
	ATMExpiry  string
}

// HV is a historical_volatility fixture row
type HV struct {
	Symbol     string
	Date       string
	ClosePrice *float64
	HV20       *float64
	HV50       *float64
	HV100      *float64
}

// Leg is an option_chain_snapshot fixture row
type Leg struct {
	Symbol       string
	Date         string
	Expiry       string
	DTE          int
	StockPrice   float64
	Type         string
	Strike       float64
	IV           *float64
	Delta        *float64
	Theta        *float64
	Vega         *float64
	Bid          *float64
	Ask          *float64
	Volume       *int
	OpenInterest *int
}

// Fixture is a writable collector database on disk
type Fixture struct {
	Path string
	db   *gorm.DB
}

// New creates an empty collector database under t.TempDir()
func New(t testing.TB) *Fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "iv_scanner.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &Fixture{Path: path, db: db}
	f.Exec(t, Schema)
	return f
}

// Exec runs raw SQL against the fixture
func (f *Fixture) Exec(t testing.TB, sql string, args ...interface{}) {
	t.Helper()
	if err := f.db.Exec(sql, args...).Error; err != nil {
		t.Fatalf("exec fixture sql: %v", err)
	}
}

// AddDailyIV inserts daily_iv rows
func (f *Fixture) AddDailyIV(t testing.TB, rows ...DailyIV) {
	t.Helper()
	for _, r := range rows {
		f.Exec(t, `INSERT INTO daily_iv (symbol, date, stock_price, atm_iv, call_iv, put_iv, atm_dte, atm_expiry)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Symbol, r.Date, r.StockPrice, r.ATMIV, r.CallIV, r.PutIV, r.ATMDTE, r.ATMExpiry)
	}
}

// AddHV inserts historical_volatility rows
func (f *Fixture) AddHV(t testing.TB, rows ...HV) {
	t.Helper()
	for _, r := range rows {
		f.Exec(t, `INSERT INTO historical_volatility (symbol, date, close_price, hv_20, hv_50, hv_100)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.Symbol, r.Date, r.ClosePrice, r.HV20, r.HV50, r.HV100)
	}
}

// AddLegs inserts option_chain_snapshot rows
func (f *Fixture) AddLegs(t testing.TB, rows ...Leg) {
	t.Helper()
	for _, r := range rows {
		f.Exec(t, `INSERT INTO option_chain_snapshot (symbol, date, expiry_date, dte, stock_price, option_type,
				strike_price, implied_volatility, delta, gamma, theta, vega, bid_price, ask_price, volume, open_interest)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?, ?, ?, ?, ?)`,
			r.Symbol, r.Date, r.Expiry, r.DTE, r.StockPrice, r.Type,
			r.Strike, r.IV, r.Delta, r.Theta, r.Vega, r.Bid, r.Ask, r.Volume, r.OpenInterest)
	}
}

// F returns a pointer to v
func F(v float64) *float64 {
	return &v
}

// I returns a pointer to v
func I(v int) *int {
	return &v
}
