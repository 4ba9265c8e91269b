// Package model defines domain types for llmsim records and summaries.
package model

// Record statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error reasons a failed record can carry.
const (
	ErrTimeout       = "timeout"
	ErrRateLimit     = "rate_limit"
	ErrInternalError = "internal_error"
)

// DefaultErrorReasons is the reason set drawn from when a record fails.
var DefaultErrorReasons = []string{ErrTimeout, ErrRateLimit, ErrInternalError}

// Record is one simulated API call as written to the dataset file.
// Field order matches the on-disk key order.
type Record struct {
	Timestamp        string  `json:"timestamp"`
	RequestID        string  `json:"request_id"`
	Model            string  `json:"model"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	TotalTokens      int64   `json:"total_tokens"`
	LatencyMs        int64   `json:"latency_ms"`
	Status           string  `json:"status"`
	Error            *string `json:"error"`
	InputChars       int64   `json:"input_chars"`
	OutputChars      int64   `json:"output_chars"`
	CostUSD          float64 `json:"cost_usd"`
}

// Failed reports whether the record carries an error status.
func (r Record) Failed() bool {
	return r.Status == StatusError
}
