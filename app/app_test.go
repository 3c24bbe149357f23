package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iv-tracker/config"
	"iv-tracker/database"
	"iv-tracker/database/types"
)

func testConfig(t *testing.T, dbPath string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	tplPath := filepath.Join(dir, "template.html")
	require.NoError(t, os.WriteFile(tplPath, []byte(testTemplate), 0o644))

	return &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabasePath:   dbPath,
		TemplatePath:   tplPath,
		OutputPath:     filepath.Join(dir, "index.html"),
		Analysis:       testAnalysis(),
	}
}

// embeddedJSON returns the payload text substituted into testTemplate
func embeddedJSON(t *testing.T, html string) string {
	t.Helper()

	const prefix = "const DATA = "
	start := strings.Index(html, prefix)
	end := strings.LastIndex(html, ";</script>")
	require.True(t, start >= 0 && end > start, "payload not found in %q", html)
	return html[start+len(prefix) : end]
}

func extractPayload(t *testing.T, html string) types.Dashboard {
	t.Helper()

	var dash types.Dashboard
	require.NoError(t, json.Unmarshal([]byte(embeddedJSON(t, html)), &dash))
	return dash
}

func TestGenerate(t *testing.T) {
	f := seedFixture(t)
	cfg := testConfig(t, f.Path)

	var stdout bytes.Buffer
	a := New(cfg, nil, &stdout)
	a.now = func() time.Time { return fixedNow }

	require.NoError(t, a.Generate(context.Background()))
	assert.Equal(t, "✅ Generated index.html — 2 symbols, 9 chains\n", stdout.String())

	html, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	dash := extractPayload(t, string(html))
	assert.Equal(t, "2025-01-10 16:30", dash.Timestamp)
	require.Len(t, dash.Symbols, 2)
	assert.Equal(t, "AAPL", dash.Symbols[1].Ticker)
	assert.Equal(t, 75, dash.Symbols[1].Score)
	require.Len(t, dash.NearTerm, 1)
	assert.Len(t, dash.NearTerm[0].CSP, 2)
}

func TestGenerate_TwiceIsByteIdentical(t *testing.T) {
	f := seedFixture(t)
	cfg := testConfig(t, f.Path)

	a := New(cfg, nil, &bytes.Buffer{})
	a.now = func() time.Time { return fixedNow }

	require.NoError(t, a.Generate(context.Background()))
	first, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	require.NoError(t, a.Generate(context.Background()))
	second, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerate_MissingDatabase(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.db"))

	var stdout bytes.Buffer
	err := New(cfg, nil, &stdout).Generate(context.Background())
	require.Error(t, err)

	var nf *database.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Empty(t, stdout.String())

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "no output on failure")
}

func TestGenerate_InvalidConfig(t *testing.T) {
	f := seedFixture(t)
	cfg := testConfig(t, f.Path)
	cfg.DatabaseDriver = "oracle"

	err := New(cfg, nil, &bytes.Buffer{}).Generate(context.Background())

	var vErr *config.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "DB_DRIVER", vErr.Field)
}

func TestStats(t *testing.T) {
	f := seedFixture(t)
	cfg := testConfig(t, f.Path)

	stats, err := New(cfg, nil, &bytes.Buffer{}).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.DailyIV)
	assert.Equal(t, int64(9), stats.OptionChainSnapshot)
	assert.Equal(t, int64(hvRowCount), stats.HistoricalVolatility)
}

func TestNewRunSummary(t *testing.T) {
	dash := sampleDashboard()
	summary := NewRunSummary("ivtracker:dashboard", dash)

	assert.Equal(t, RunSummary{
		Key:       "ivtracker:dashboard",
		Symbols:   1,
		NearTerm:  0,
		Chains:    1234,
		Timestamp: "2025-01-10 16:30",
	}, summary)
}
