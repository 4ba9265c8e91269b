package report

import (
	"bytes"
	"encoding/csv"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/llmsim/internal/model"
	"github.com/theirongolddev/llmsim/internal/pipeline"
	"github.com/theirongolddev/llmsim/internal/source"
)

func testOptions(dir string) Options {
	return Options{
		OutputDir: dir,
		TopN:      20,
		HistBins:  60,
		Size:      ChartSize{WidthIn: 8, HeightIn: 4},
		Palette:   DefaultPalette,
	}
}

func testTable(t *testing.T, lines ...string) *source.Table {
	t.Helper()
	table, err := source.Read(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return pipeline.Clean(table, []string{model.StatusOK, model.StatusError}).Table
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, []model.ModelSummary{
		{Model: "gpt-4o", Requests: 3, Errors: 1, MedianLatencyMs: 200, P95LatencyMs: 290,
			MeanTotalTokens: 20.5, MedianCostUSD: 0.02, TotalCostUSD: 0.06},
		{Model: "empty", Requests: 1, MedianLatencyMs: math.NaN(), P95LatencyMs: math.NaN(),
			MeanTotalTokens: math.NaN(), MedianCostUSD: math.NaN()},
	})
	require.NoError(t, err)

	want := "model,requests,errors,median_latency_ms,p95_latency_ms,mean_total_tokens,median_cost_usd,total_cost_usd\n" +
		"gpt-4o,3,1,200,290,20.5,0.02,0.06\n" +
		"empty,1,0,,,,,0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteRows_MissingCellsEmpty(t *testing.T) {
	table := testTable(t,
		`{"request_id":"a","status":"ok","error":null,"cost_usd":0.5,"note":"x, y"}`,
		`{"request_id":"b","status":"error","error":"timeout","cost_usd":"oops"}`,
	)

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, table.Columns, table.Rows))

	want := "request_id,status,error,cost_usd,note\n" +
		"a,ok,,0.5,\"x, y\"\n" +
		"b,error,timeout,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_AllOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	table := testTable(t,
		`{"request_id":"r0","model":"gpt-4o","latency_ms":100,"total_tokens":10,"status":"ok","error":null,"cost_usd":0.01}`,
		`{"request_id":"r1","model":"gpt-4o","latency_ms":200,"total_tokens":20,"status":"ok","error":null,"cost_usd":0.02}`,
		`{"request_id":"r2","model":"gpt-4o","latency_ms":300,"total_tokens":30,"status":"ok","error":null,"cost_usd":0.03}`,
		`{"request_id":"r3","model":"codex-lite","latency_ms":90,"total_tokens":5,"status":"error","error":"timeout","cost_usd":0.04}`,
		`{"request_id":"r4","model":"codex-lite","latency_ms":95,"total_tokens":5,"status":"pending","error":null,"cost_usd":1.0}`,
	)

	res, err := Write(testOptions(dir), table)
	require.NoError(t, err)
	assert.Len(t, res.Files, 5)

	summary := readCSV(t, filepath.Join(dir, SummaryFile))
	require.Len(t, summary, 3)
	assert.Equal(t, model.SummaryColumns, summary[0])
	assert.Equal(t, []string{"codex-lite", "1", "1", "90", "90", "5", "0.04", "0.04"}, summary[1])
	assert.Equal(t, "gpt-4o", summary[2][0])
	assert.Equal(t, "3", summary[2][1])
	assert.Equal(t, "0", summary[2][2])

	top := readCSV(t, filepath.Join(dir, "top_20_costly_requests.csv"))
	require.Len(t, top, 5, "header plus four valid rows")
	assert.Equal(t, table.Columns, top[0])
	assert.Equal(t, "r3", top[1][0])
	assert.Equal(t, "r0", top[4][0])

	for _, name := range []string{LatencyHistFile, CostByModelFile, ErrorsByModelFile} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		_ = f.Close()
		require.NoError(t, err, name)
		assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy(), "%s should be landscape", name)
	}
}

func TestWrite_NoErrorsStillWritesChart(t *testing.T) {
	dir := t.TempDir()
	table := testTable(t,
		`{"request_id":"r0","model":"a","latency_ms":100,"status":"ok","cost_usd":0.01}`,
		`{"request_id":"r1","model":"b","latency_ms":140,"status":"ok","cost_usd":0.02}`,
	)

	_, err := Write(testOptions(dir), table)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ErrorsByModelFile))
}

func TestWrite_OutputDirBlocked(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := Write(testOptions(filepath.Join(blocker, "out")), &source.Table{})
	assert.Error(t, err)
}

func TestHexColor(t *testing.T) {
	fallback := color.RGBA{A: 0xFF}

	c := HexColor("#FF0000", fallback)
	r, g, b, _ := c.RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	assert.Equal(t, fallback, HexColor("6", fallback))
}

func TestTopFile(t *testing.T) {
	assert.Equal(t, "top_20_costly_requests.csv", TopFile(20))
	assert.Equal(t, "top_5_costly_requests.csv", TopFile(5))
}

func TestWrite_InfinityTreatedAsMissing(t *testing.T) {
	dir := t.TempDir()
	table := testTable(t,
		`{"request_id":"a","model":"gpt-4o","status":"ok","latency_ms":"Infinity","cost_usd":"inf"}`,
		`{"request_id":"b","model":"gpt-4o","status":"ok","latency_ms":120,"cost_usd":0.02}`,
		`{"request_id":"c","model":"codex-lite","status":"error","error":"timeout","latency_ms":300,"cost_usd":0.01}`,
	)

	res, err := Write(testOptions(dir), table)
	require.NoError(t, err)
	assert.Len(t, res.Files, 5)

	summary := readCSV(t, filepath.Join(dir, SummaryFile))
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"gpt-4o", "2", "0", "120", "120", "", "0.02", "0.02"}, summary[2])

	top := readCSV(t, filepath.Join(dir, TopFile(20)))
	require.Len(t, top, 4)
	assert.Equal(t, "a", top[3][0], "missing cost sorts last")
}
