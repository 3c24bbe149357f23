package types

// Dashboard payload. JSON keys are short because the whole structure is
// inlined into the HTML page and read by the dashboard script.

// Dashboard is the complete payload embedded in the generated page
type Dashboard struct {
	Symbols  []SymbolSnapshot `json:"symbols"`
	NearTerm []NearTermExpiry `json:"near"`
	Stats    Stats            `json:"stats"`
	// Generation time, YYYY-MM-DD HH:MM local
	Timestamp string `json:"ts"`
}

// SymbolSnapshot holds the latest volatility picture for one ticker
type SymbolSnapshot struct {
	Ticker     string      `json:"tk"`
	StockPrice *float64    `json:"px"`
	ATMIV      *float64    `json:"iv"`
	CallIV     *float64    `json:"civ"`
	PutIV      *float64    `json:"piv"`
	DTE        *int64      `json:"dte"`
	Expiry     *string     `json:"exp"`
	HV20       *float64    `json:"hv20"`
	HV50       *float64    `json:"hv50"`
	HV100      *float64    `json:"hv100"`
	IVHVRatio  *float64    `json:"ratio"`
	Percentile *float64    `json:"pct"`
	Score      int         `json:"sc"`
	Date       string      `json:"dt"`
	HVChart    []HVPoint   `json:"hvc"`
	Chain      []OptionLeg `json:"ch"`
}

// HVPoint is one day of the historical volatility chart
type HVPoint struct {
	Date  string   `json:"d"`
	Price *float64 `json:"p"`
	HV20  *float64 `json:"h20"`
	HV50  *float64 `json:"h50"`
}

// OptionLeg is one strike/type row of a chain snapshot
type OptionLeg struct {
	Type         string   `json:"t"` // "C" or "P"
	Strike       *float64 `json:"s"`
	IV           *float64 `json:"iv"`
	Delta        *float64 `json:"d"`
	Theta        *float64 `json:"th"`
	Vega         *float64 `json:"v"`
	Bid          *float64 `json:"b"`
	Ask          *float64 `json:"a"`
	Volume       int64    `json:"vol"`
	OpenInterest int64    `json:"oi"`
}

// NearTermLeg is an OptionLeg with its mid-price
type NearTermLeg struct {
	OptionLeg
	Mid *float64 `json:"m"`
}

// NearTermExpiry is the wheel-trading view of one short-dated expiry
type NearTermExpiry struct {
	Ticker     string        `json:"tk"`
	Symbol     string        `json:"sym"`
	StockPrice *float64      `json:"px"`
	Expiry     string        `json:"exp"`
	DTE        *int64        `json:"dte"`
	ATMIV      *float64      `json:"atm_iv"`
	Chain      []NearTermLeg `json:"ch"`
	CSP        []NearTermLeg `json:"csp"` // Cash-secured put candidates
	CC         []NearTermLeg `json:"cc"`  // Covered call candidates
}

// Stats holds source table row counts
type Stats struct {
	DailyIV              int64 `json:"daily_iv"`
	OptionChainSnapshot  int64 `json:"option_chain_snapshot"`
	HistoricalVolatility int64 `json:"historical_volatility"`
}
