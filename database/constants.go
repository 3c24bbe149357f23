package database

// Source tables written by the iv-scanner collector
const (
	TableDailyIV              = "daily_iv"
	TableOptionChainSnapshot  = "option_chain_snapshot"
	TableHistoricalVolatility = "historical_volatility"
)

// StatsTables lists the tables counted for the dashboard footer, in display order
var StatsTables = []string{
	TableDailyIV,
	TableOptionChainSnapshot,
	TableHistoricalVolatility,
}

// Query limits
const (
	DefaultHVHistoryDays  = 252 // One trading year of HV20 samples
	DefaultHVChartPoints  = 130 // Roughly six months of chart points
	DefaultNearTermMaxDTE = 16
)
