package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"iv-tracker/database/types"
	"iv-tracker/helpers"
)

// Placeholder is the token in the template replaced by the JSON payload.
// It is valid JavaScript on its own so the template can be opened unrendered.
const Placeholder = `/*__DATA__*/"placeholder"`

// ErrPlaceholderMissing is returned for a template without Placeholder
var ErrPlaceholderMissing = errors.New("template has no data placeholder")

// Emitter writes the dashboard page
type Emitter struct {
	templatePath string
	outputPath   string
	out          io.Writer // Receives the one-line summary
	logger       *zap.Logger
}

// NewEmitter creates a new emitter
func NewEmitter(templatePath, outputPath string, out io.Writer, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		templatePath: templatePath,
		outputPath:   outputPath,
		out:          out,
		logger:       logger,
	}
}

// MarshalPayload encodes the dashboard as compact JSON
func MarshalPayload(dash *types.Dashboard) ([]byte, error) {
	payload, err := json.Marshal(dash)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return payload, nil
}

// RenderTemplate substitutes the payload for the placeholder
func RenderTemplate(tpl string, payload []byte) (string, error) {
	if !strings.Contains(tpl, Placeholder) {
		return "", ErrPlaceholderMissing
	}
	return strings.Replace(tpl, Placeholder, string(payload), 1), nil
}

// Emit renders the page, overwrites the output file and prints the summary.
// Nothing is written unless rendering succeeds. The encoded payload is returned
// for other sinks.
func (e *Emitter) Emit(dash *types.Dashboard) ([]byte, error) {
	payload, err := MarshalPayload(dash)
	if err != nil {
		return nil, err
	}

	tpl, err := os.ReadFile(e.templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	if n := strings.Count(string(tpl), Placeholder); n > 1 {
		e.logger.Warn("Template has more than one placeholder, only the first is replaced",
			zap.String("template", e.templatePath),
			zap.Int("count", n))
	}

	html, err := RenderTemplate(string(tpl), payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.templatePath, err)
	}

	if err := os.WriteFile(e.outputPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", e.outputPath, err)
	}

	e.logger.Info("Dashboard written",
		zap.String("output", e.outputPath),
		zap.Int("payload_bytes", len(payload)))

	fmt.Fprintf(e.out, "✅ Generated %s — %d symbols, %s chains\n",
		filepath.Base(e.outputPath), len(dash.Symbols), helpers.FormatCount(dash.Stats.OptionChainSnapshot))

	return payload, nil
}
