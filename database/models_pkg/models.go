package models

import (
	"database/sql"

	"iv-tracker/database/types"
)

// DailyIV is the collector's end-of-day ATM implied volatility reading for one symbol.
//
// Key Fields:
//   - Symbol: Market-prefixed ticker (e.g. US.AAPL)
//   - Date: Snapshot date (YYYY-MM-DD)
//   - ATMIV: IV of the at-the-money expiry, averaged from CallIV and PutIV
//   - ATMDTE / ATMExpiry: The expiry the ATM reading was taken from
//
// Numeric columns are scanned through types.Number so a malformed
// value becomes null instead of failing the whole query.
type DailyIV struct {
	Symbol     string       `gorm:"column:symbol"`
	Date       types.Date   `gorm:"column:date"`
	StockPrice types.Number `gorm:"column:stock_price"`
	ATMIV      types.Number `gorm:"column:atm_iv"`
	CallIV     types.Number `gorm:"column:call_iv"`
	PutIV      types.Number `gorm:"column:put_iv"`
	ATMDTE     types.Number `gorm:"column:atm_dte"`
	ATMExpiry  types.Date   `gorm:"column:atm_expiry"`
}

// TableName specifies the table name for DailyIV
func (DailyIV) TableName() string {
	return "daily_iv"
}

// HistoricalVolatility holds realized volatility over trailing 20/50/100-day windows.
type HistoricalVolatility struct {
	Symbol     string       `gorm:"column:symbol"`
	Date       types.Date   `gorm:"column:date"`
	ClosePrice types.Number `gorm:"column:close_price"`
	HV20       types.Number `gorm:"column:hv_20"`
	HV50       types.Number `gorm:"column:hv_50"`
	HV100      types.Number `gorm:"column:hv_100"`
}

// TableName specifies the table name for HistoricalVolatility
func (HistoricalVolatility) TableName() string {
	return "historical_volatility"
}

// OptionChainSnapshot is one strike/type leg of a symbol's chain on a given date.
//
// Key Fields:
//   - OptionType: CALL or PUT (only the first letter is used downstream)
//   - ExpiryDate / DTE: The expiry this leg belongs to
//   - Greeks: Delta, Gamma, Theta, Vega as reported by the broker
//   - Volume / OpenInterest: May be null for illiquid strikes
type OptionChainSnapshot struct {
	Symbol            string         `gorm:"column:symbol"`
	Date              types.Date     `gorm:"column:date"`
	ExpiryDate        types.Date     `gorm:"column:expiry_date"`
	DTE               types.Number   `gorm:"column:dte"`
	StockPrice        types.Number   `gorm:"column:stock_price"`
	OptionType        sql.NullString `gorm:"column:option_type"`
	StrikePrice       types.Number   `gorm:"column:strike_price"`
	ImpliedVolatility types.Number   `gorm:"column:implied_volatility"`
	Delta             types.Number   `gorm:"column:delta"`
	Gamma             types.Number   `gorm:"column:gamma"`
	Theta             types.Number   `gorm:"column:theta"`
	Vega              types.Number   `gorm:"column:vega"`
	BidPrice          types.Number   `gorm:"column:bid_price"`
	AskPrice          types.Number   `gorm:"column:ask_price"`
	Volume            types.Number   `gorm:"column:volume"`
	OpenInterest      types.Number   `gorm:"column:open_interest"`
}

// TableName specifies the table name for OptionChainSnapshot
func (OptionChainSnapshot) TableName() string {
	return "option_chain_snapshot"
}

// NearTermExpiryRow is one (symbol, expiry) pair from the latest chain snapshot
type NearTermExpiryRow struct {
	Symbol     string       `gorm:"column:symbol"`
	ExpiryDate types.Date   `gorm:"column:expiry_date"`
	DTE        types.Number `gorm:"column:dte"`
	StockPrice types.Number `gorm:"column:stock_price"`
}
