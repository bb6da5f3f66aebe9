package summary

import (
	"strconv"

	"github.com/acct-ai/transaction-summary/pkg/stores"
)

// Response statuses as seen by API consumers.
const (
	StatusSuccess = "success"
	StatusNoData  = "no_data"
	StatusError   = "error"
)

// Response is the assembled payload for one successful request (including
// the no-data case).
type Response struct {
	Status       string          `json:"status"`
	Summary      string          `json:"summary"`
	Stats        Stats           `json:"stats"`
	SummaryKey   *string         `json:"summaryKey"`
	Transactions []stores.Record `json:"transactions"`
}

// ErrorResponse is the fixed-shape failure body. No partial stats are ever
// included.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ApplyLimit truncates records to the first limit entries, preserving order.
// A zero or negative limit leaves the slice untouched.
func ApplyLimit(records []stores.Record, limit int) []stores.Record {
	if limit <= 0 || limit >= len(records) {
		return records
	}
	return records[:limit]
}

// ParseLimit interprets the textual limit query parameter. Absent,
// non-numeric, zero, or negative values all mean "no limit".
func ParseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
