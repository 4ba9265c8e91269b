package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/generator"
	"github.com/theirongolddev/llmsim/internal/model"
	"github.com/theirongolddev/llmsim/internal/source"
)

var validStatuses = []string{model.StatusOK, model.StatusError}

// cleaned reads JSONL lines and runs the cleaning steps.
func cleaned(t *testing.T, lines ...string) *source.Table {
	t.Helper()
	table, err := source.Read(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return Clean(table, validStatuses).Table
}

func TestAggregateModels_ThreeOKRows(t *testing.T) {
	table := cleaned(t,
		`{"request_id":"req_000000","model":"gpt-4o","latency_ms":100,"total_tokens":10,"status":"ok","error":null,"cost_usd":0.01}`,
		`{"request_id":"req_000001","model":"gpt-4o","latency_ms":200,"total_tokens":20,"status":"ok","error":null,"cost_usd":0.02}`,
		`{"request_id":"req_000002","model":"gpt-4o","latency_ms":300,"total_tokens":30,"status":"ok","error":null,"cost_usd":0.03}`,
	)

	got := AggregateModels(table)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "gpt-4o", s.Model)
	assert.Equal(t, 3, s.Requests)
	assert.Equal(t, 0, s.Errors)
	assert.InDelta(t, 200, s.MedianLatencyMs, 1e-9)
	assert.InDelta(t, 290, s.P95LatencyMs, 1e-9)
	assert.InDelta(t, 20, s.MeanTotalTokens, 1e-9)
	assert.InDelta(t, 0.02, s.MedianCostUSD, 1e-9)
	assert.InDelta(t, 0.06, s.TotalCostUSD, 1e-9)
}

func TestAggregateModels_PendingExcluded(t *testing.T) {
	table := cleaned(t,
		`{"request_id":"a","model":"gpt-4o","status":"ok","cost_usd":0.01}`,
		`{"request_id":"b","model":"gpt-4o","status":"pending","cost_usd":5.0}`,
		`{"request_id":"c","model":"pending-only","status":"pending","cost_usd":9.0}`,
		`{"request_id":"d","model":"gpt-4o","status":"error","error":"timeout","cost_usd":0.02}`,
	)

	got := AggregateModels(table)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Requests)
	assert.Equal(t, 1, got[0].Errors)
	assert.InDelta(t, 0.03, got[0].TotalCostUSD, 1e-9)

	for _, row := range TopByCost(table, 20) {
		s, _ := row.String("status")
		assert.NotEqual(t, "pending", s)
	}
}

func TestAggregateModels_SortedAndMissingValues(t *testing.T) {
	table := cleaned(t,
		`{"model":"zeta","status":"ok","latency_ms":"n/a","cost_usd":null}`,
		`{"model":"alpha","status":"ok","latency_ms":50,"cost_usd":"0.5"}`,
		`{"status":"ok","latency_ms":70,"cost_usd":1}`,
		`{"model":"alpha","status":"ok","latency_ms":null,"cost_usd":0.25}`,
	)

	got := AggregateModels(table)
	require.Len(t, got, 2, "row without a model is not grouped")
	assert.Equal(t, "alpha", got[0].Model)
	assert.Equal(t, "zeta", got[1].Model)

	assert.Equal(t, 2, got[0].Requests)
	assert.Equal(t, 50.0, got[0].MedianLatencyMs)
	assert.InDelta(t, 0.75, got[0].TotalCostUSD, 1e-9)

	assert.True(t, math.IsNaN(got[1].MedianLatencyMs))
	assert.True(t, math.IsNaN(got[1].P95LatencyMs))
	assert.True(t, math.IsNaN(got[1].MeanTotalTokens), "column absent everywhere")
	assert.Equal(t, 0.0, got[1].TotalCostUSD)
}

func TestTopByCost(t *testing.T) {
	table := cleaned(t,
		`{"request_id":"r0","status":"ok","cost_usd":0.2}`,
		`{"request_id":"r1","status":"ok","cost_usd":null}`,
		`{"request_id":"r2","status":"ok","cost_usd":0.5}`,
		`{"request_id":"r3","status":"ok","cost_usd":0.2}`,
		`{"request_id":"r4","status":"ok","cost_usd":0.9}`,
	)

	ids := func(rows []source.Row) []string {
		var out []string
		for _, r := range rows {
			id, _ := r.String("request_id")
			out = append(out, id)
		}
		return out
	}

	assert.Equal(t, []string{"r4", "r2", "r0", "r3", "r1"}, ids(TopByCost(table, 20)))
	assert.Equal(t, []string{"r4", "r2"}, ids(TopByCost(table, 2)))
	assert.Empty(t, TopByCost(table, 0))

	first, _ := table.Rows[0].String("request_id")
	assert.Equal(t, "r0", first, "input order untouched")
}

func TestCostAndErrorsByModel(t *testing.T) {
	table := cleaned(t,
		`{"model":"a","status":"ok","cost_usd":0.1}`,
		`{"model":"b","status":"error","cost_usd":0.5}`,
		`{"model":"c","status":"error","cost_usd":0.2}`,
		`{"model":"c","status":"error","cost_usd":0.2}`,
		`{"model":"d","status":"ok","cost_usd":null}`,
	)

	cost := CostByModel(table)
	require.Len(t, cost, 4)
	assert.Equal(t, "b", cost[0].Model)
	assert.Equal(t, "c", cost[1].Model)
	assert.Equal(t, "a", cost[2].Model)
	assert.Equal(t, model.ModelValue{Model: "d", Value: 0}, cost[3])

	errs := ErrorsByModel(table)
	assert.Equal(t, []model.ModelValue{
		{Model: "c", Value: 2},
		{Model: "b", Value: 1},
	}, errs)
}

func TestLatencyValues(t *testing.T) {
	table := cleaned(t,
		`{"status":"ok","latency_ms":10}`,
		`{"status":"ok","latency_ms":null}`,
		`{"status":"error","latency_ms":"30"}`,
	)
	assert.Equal(t, []float64{10, 30}, LatencyValues(table))
}

func TestRoundTrip_GeneratedDataset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generator.Records = 500
	cfg.Generator.StartTime = "2025-06-01T10:00:00Z"

	g, err := generator.New(cfg.Generator, cfg.Pricing, generator.NewRand(7))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data", "llm_api_responses.jsonl")
	require.NoError(t, generator.WriteFile(path, g.Generate()))

	result, err := Load(path, cfg.Report.Statuses)
	require.NoError(t, err)
	assert.Equal(t, 500, result.TotalRows)
	assert.Equal(t, 0, result.Uncoercible)
	assert.Equal(t, 0, result.Dropped)

	summaries := AggregateModels(result.Table)
	require.NotEmpty(t, summaries)

	total := 0
	for i, s := range summaries {
		total += s.Requests
		assert.LessOrEqual(t, s.Errors, s.Requests)
		assert.GreaterOrEqual(t, s.MedianLatencyMs, 30.0)
		assert.GreaterOrEqual(t, s.P95LatencyMs, s.MedianLatencyMs)
		if i > 0 {
			assert.Less(t, summaries[i-1].Model, s.Model)
		}
	}
	assert.Equal(t, len(result.Table.Rows), total)

	top := TopByCost(result.Table, cfg.Report.TopN)
	assert.Len(t, top, 20)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Float("cost_usd"), top[i].Float("cost_usd"))
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.jsonl"), validStatuses)
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"model\":\"a\"}\n{oops\n"), 0o600))
	_, err = Load(path, validStatuses)
	require.ErrorIs(t, err, source.ErrMalformedLine)
	assert.Contains(t, err.Error(), "line 2")
}
