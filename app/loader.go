package app

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"iv-tracker/config"
	"iv-tracker/database"
	"iv-tracker/database/types"
	"iv-tracker/helpers"
)

// TimestampLayout is the dashboard generation time format
const TimestampLayout = "2006-01-02 15:04"

// Loader reads the collector database and assembles the dashboard payload
type Loader struct {
	repo     *database.VolatilityRepository
	analysis config.AnalysisConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewLoader creates a new loader
func NewLoader(repo *database.VolatilityRepository, analysis config.AnalysisConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		repo:     repo,
		analysis: analysis,
		logger:   logger,
		now:      time.Now,
	}
}

// Load runs every query and returns the complete payload.
// The first query error aborts the load.
func (l *Loader) Load(ctx context.Context) (*types.Dashboard, error) {
	symbols, err := l.loadSymbols(ctx)
	if err != nil {
		return nil, err
	}

	nearTerm, err := l.loadNearTerm(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := l.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Dashboard data loaded",
		zap.Int("symbols", len(symbols)),
		zap.Int("near_term_expiries", len(nearTerm)),
		zap.Int64("chain_rows", stats.OptionChainSnapshot))

	return &types.Dashboard{
		Symbols:   symbols,
		NearTerm:  nearTerm,
		Stats:     stats,
		Timestamp: l.now().Format(TimestampLayout),
	}, nil
}

func (l *Loader) loadSymbols(ctx context.Context) ([]types.SymbolSnapshot, error) {
	rows, err := l.repo.GetLatestDailyIV(ctx)
	if err != nil {
		return nil, err
	}

	symbols := make([]types.SymbolSnapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := l.loadSymbol(ctx, row)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, snap)
	}
	return symbols, nil
}

func (l *Loader) loadSymbol(ctx context.Context, row database.DailyIV) (types.SymbolSnapshot, error) {
	iv := row.ATMIV.Ptr()

	var hv20, hv50, hv100 *float64
	latest, err := l.repo.GetLatestHV(ctx, row.Symbol)
	if err != nil {
		return types.SymbolSnapshot{}, err
	}
	if latest != nil {
		hv20, hv50, hv100 = latest.HV20.Ptr(), latest.HV50.Ptr(), latest.HV100.Ptr()
	}

	history, err := l.repo.GetHV20History(ctx, row.Symbol, l.analysis.HVHistoryDays)
	if err != nil {
		return types.SymbolSnapshot{}, err
	}
	samples := make([]float64, 0, len(history))
	for _, h := range history {
		if h.HV20.Valid {
			samples = append(samples, h.HV20.Float64)
		}
	}

	ratio := IVHVRatio(iv, hv20)
	pct := IVPercentile(iv, samples)

	var ivLevel float64
	if iv != nil {
		ivLevel = *iv
	}
	score := Score(ivLevel, ratio, pct)

	series, err := l.repo.GetHVSeries(ctx, row.Symbol, l.analysis.HVChartPoints)
	if err != nil {
		return types.SymbolSnapshot{}, err
	}
	chart := make([]types.HVPoint, 0, len(series))
	for _, s := range series {
		chart = append(chart, types.HVPoint{
			Date:  s.Date.String(),
			Price: helpers.SafeRound(s.ClosePrice.Ptr(), 2),
			HV20:  helpers.SafeRound(s.HV20.Ptr(), 4),
			HV50:  helpers.SafeRound(s.HV50.Ptr(), 4),
		})
	}

	chainRows, err := l.repo.GetOptionChain(ctx, row.Symbol, row.Date.String())
	if err != nil {
		return types.SymbolSnapshot{}, err
	}
	chain := make([]types.OptionLeg, 0, len(chainRows))
	for _, c := range chainRows {
		chain = append(chain, buildLeg(c))
	}

	l.logger.Debug("Symbol loaded",
		zap.String("symbol", row.Symbol),
		zap.Int("score", score),
		zap.Int("hv_points", len(chart)),
		zap.Int("legs", len(chain)))

	return types.SymbolSnapshot{
		Ticker:     Ticker(row.Symbol),
		StockPrice: helpers.Finite(row.StockPrice.Ptr()),
		ATMIV:      helpers.SafeRound(iv, 4),
		CallIV:     helpers.SafeRound(row.CallIV.Ptr(), 4),
		PutIV:      helpers.SafeRound(row.PutIV.Ptr(), 4),
		DTE:        row.ATMDTE.IntPtr(),
		Expiry:     row.ATMExpiry.Ptr(),
		HV20:       helpers.SafeRound(hv20, 4),
		HV50:       helpers.SafeRound(hv50, 4),
		HV100:      helpers.SafeRound(hv100, 4),
		IVHVRatio:  ratio,
		Percentile: pct,
		Score:      score,
		Date:       row.Date.String(),
		HVChart:    chart,
		Chain:      chain,
	}, nil
}

func (l *Loader) loadNearTerm(ctx context.Context) ([]types.NearTermExpiry, error) {
	expiries, err := l.repo.GetNearTermExpiries(ctx, l.analysis.NearTermMaxDTE)
	if err != nil {
		return nil, err
	}

	nearTerm := make([]types.NearTermExpiry, 0, len(expiries))
	for _, e := range expiries {
		chainRows, err := l.repo.GetNearTermChain(ctx, e.Symbol, e.ExpiryDate)
		if err != nil {
			return nil, err
		}

		legs := make([]types.NearTermLeg, 0, len(chainRows))
		for _, c := range chainRows {
			leg := buildLeg(c)
			legs = append(legs, types.NearTermLeg{
				OptionLeg: leg,
				Mid:       MidPrice(leg.Bid, leg.Ask),
			})
		}

		px := helpers.Finite(e.StockPrice.Ptr())
		nearTerm = append(nearTerm, types.NearTermExpiry{
			Ticker:     Ticker(e.Symbol),
			Symbol:     e.Symbol,
			StockPrice: px,
			Expiry:     e.ExpiryDate.String(),
			DTE:        e.DTE.IntPtr(),
			ATMIV:      ATMIV(legs, px),
			Chain:      legs,
			CSP:        SelectCandidates(legs, CashSecuredPut, l.analysis.CandidateLimit),
			CC:         SelectCandidates(legs, CoveredCall, l.analysis.CandidateLimit),
		})
	}
	return nearTerm, nil
}

// buildLeg shapes a chain row for the payload
func buildLeg(c database.OptionChainSnapshot) types.OptionLeg {
	return types.OptionLeg{
		Type:         legType(c.OptionType.String),
		Strike:       helpers.Finite(c.StrikePrice.Ptr()),
		IV:           helpers.SafeRound(c.ImpliedVolatility.Ptr(), 4),
		Delta:        helpers.SafeRound(c.Delta.Ptr(), 3),
		Theta:        helpers.SafeRound(c.Theta.Ptr(), 3),
		Vega:         helpers.SafeRound(c.Vega.Ptr(), 3),
		Bid:          helpers.SafeRound(c.BidPrice.Ptr(), 2),
		Ask:          helpers.SafeRound(c.AskPrice.Ptr(), 2),
		Volume:       c.Volume.IntOrZero(),
		OpenInterest: c.OpenInterest.IntOrZero(),
	}
}

// legType keeps the first character of CALL/PUT
func legType(optionType string) string {
	if optionType == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(optionType)
	return string(r)
}
