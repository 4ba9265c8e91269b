// Package generator fabricates synthetic LLM API call records.
package generator

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/model"
)

// Distribution parameters for the simulated traffic.
const (
	promptMean      = 180
	promptStdDev    = 120
	minPrompt       = 1
	completionMean  = 320
	completionStdDv = 400
	minCompletion   = 0

	latencyPerCompletionToken = 0.4
	latencyStdDevFactor       = 0.25
	minLatencyMs              = 30

	minInputChars      = 50
	maxInputChars      = 8000
	charsPerCompletion = 4
)

// Generator produces records from a fixed config and random source.
type Generator struct {
	cfg     config.GeneratorConfig
	pricing config.PricingConfig
	rng     *rand.Rand
	start   time.Time
}

// NewRand returns a random source for seed. Seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data, not security sensitive
}

// New validates cfg and returns a Generator. A nil rng is replaced by
// NewRand(cfg.Seed).
func New(cfg config.GeneratorConfig, pricing config.PricingConfig, rng *rand.Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := pricing.Validate(); err != nil {
		return nil, err
	}
	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	return &Generator{cfg: cfg, pricing: pricing, rng: rng, start: start}, nil
}

// Record builds the record at index i. Each call consumes randomness, so
// records must be requested in index order for a seed to be reproducible.
func (g *Generator) Record(i int) model.Record {
	spec := g.cfg.Models[g.rng.Intn(len(g.cfg.Models))]

	prompt := max(minPrompt, int64(g.gauss(promptMean, promptStdDev)))
	completion := max(minCompletion, int64(g.gauss(completionMean, completionStdDv)))

	base := spec.BaseLatencyMs
	latency := max(minLatencyMs, int64(g.gauss(
		base+float64(completion)*latencyPerCompletionToken,
		base*latencyStdDevFactor,
	)))

	status := model.StatusOK
	var reason *string
	if g.rng.Float64() < g.cfg.ErrorRate {
		status = model.StatusError
		r := g.cfg.ErrorReasons[g.rng.Intn(len(g.cfg.ErrorReasons))]
		reason = &r
	}

	ts := g.start.Add(time.Duration(i) * g.cfg.Interval())

	return model.Record{
		Timestamp:        FormatTimestamp(ts),
		RequestID:        RequestID(i),
		Model:            spec.Name,
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
		LatencyMs:        latency,
		Status:           status,
		Error:            reason,
		InputChars:       minInputChars + int64(g.rng.Intn(maxInputChars-minInputChars+1)),
		OutputChars:      max(0, completion*charsPerCompletion),
		CostUSD:          g.pricing.CalculateCost(spec.Name, prompt, completion),
	}
}

// Generate builds the configured number of records in index order.
func (g *Generator) Generate() []model.Record {
	records := make([]model.Record, g.cfg.Records)
	for i := range records {
		records[i] = g.Record(i)
	}
	return records
}

func (g *Generator) gauss(mean, stdDev float64) float64 {
	return g.rng.NormFloat64()*stdDev + mean
}

// RequestID formats the dense sequential identifier for index i.
func RequestID(i int) string {
	return fmt.Sprintf("req_%06d", i)
}

// FormatTimestamp renders t in UTC as an ISO-8601 string with a literal "Z".
// Microseconds are included only when non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	layout := "2006-01-02T15:04:05"
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		layout += ".000000"
	}
	return t.Format(layout) + "Z"
}

// WriteJSONL writes one JSON object per line in slice order.
func WriteJSONL(w io.Writer, records []model.Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("encoding %s: %w", records[i].RequestID, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes records to path as JSON Lines, creating the parent
// directory if needed.
func WriteFile(path string, records []model.Record) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating dataset dir: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path comes from config
	if err != nil {
		return fmt.Errorf("creating dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing dataset: %w", cerr)
		}
	}()

	if err := WriteJSONL(f, records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CheckRecord reports the first invariant a record violates, or nil.
func CheckRecord(r model.Record, pricing config.PricingConfig) error {
	switch {
	case r.TotalTokens != r.PromptTokens+r.CompletionTokens:
		return fmt.Errorf("%s: total_tokens %d != %d + %d", r.RequestID, r.TotalTokens, r.PromptTokens, r.CompletionTokens)
	case r.PromptTokens < minPrompt:
		return fmt.Errorf("%s: prompt_tokens %d < %d", r.RequestID, r.PromptTokens, minPrompt)
	case r.CompletionTokens < minCompletion:
		return fmt.Errorf("%s: completion_tokens %d < %d", r.RequestID, r.CompletionTokens, minCompletion)
	case r.LatencyMs < minLatencyMs:
		return fmt.Errorf("%s: latency_ms %d < %d", r.RequestID, r.LatencyMs, minLatencyMs)
	case r.Failed() != (r.Error != nil):
		return fmt.Errorf("%s: status %q inconsistent with error %v", r.RequestID, r.Status, r.Error)
	}
	want := pricing.CalculateCost(r.Model, r.PromptTokens, r.CompletionTokens)
	if math.Abs(r.CostUSD-want) > 0.5e-6 {
		return fmt.Errorf("%s: cost_usd %v, want %v", r.RequestID, r.CostUSD, want)
	}
	return nil
}
