package domain

import "time"

// Dispatch is one call the gateway made to Termii.
type Dispatch struct {
	ID         string    `db:"id" json:"id"`
	Operation  string    `db:"operation" json:"operation"`
	StatusCode int       `db:"status_code" json:"statusCode"`
	Error      *string   `db:"error" json:"error,omitempty"`
	DurationMs int64     `db:"duration_ms" json:"durationMs"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Succeeded reports whether Termii answered with a 2xx status.
func (d Dispatch) Succeeded() bool {
	return d.Error == nil && d.StatusCode >= 200 && d.StatusCode < 300
}

type DispatchStats struct {
	Succeeded int64 `db:"succeeded" json:"succeeded"`
	Failed    int64 `db:"failed" json:"failed"`
}

// BalanceSnapshot is the wallet balance observed at CheckedAt.
type BalanceSnapshot struct {
	User      string    `json:"user,omitempty"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
	CheckedAt time.Time `json:"checkedAt"`
}

type LowBalanceAlert struct {
	Balance        float64   `json:"balance"`
	Currency       string    `json:"currency"`
	Threshold      float64   `json:"threshold"`
	ConsecutiveLow int       `json:"consecutiveLow"`
	RunNumber      int64     `json:"runNumber"`
	CheckedAt      time.Time `json:"checkedAt"`
}
