package model

// ModelSummary holds aggregated metrics for a single model.
// NaN marks a statistic with no non-missing input values.
type ModelSummary struct {
	Model           string
	Requests        int
	Errors          int
	MedianLatencyMs float64
	P95LatencyMs    float64
	MeanTotalTokens float64
	MedianCostUSD   float64
	TotalCostUSD    float64
}

// SummaryColumns is the header of model_summary.csv, in column order.
var SummaryColumns = []string{
	"model",
	"requests",
	"errors",
	"median_latency_ms",
	"p95_latency_ms",
	"mean_total_tokens",
	"median_cost_usd",
	"total_cost_usd",
}

// ModelValue is a single per-model measure used for bar charts.
type ModelValue struct {
	Model string
	Value float64
}
