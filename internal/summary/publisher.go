package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/acct-ai/transaction-summary/pkg/stores"
)

const (
	snapshotContentType = "application/json"
	snapshotTimeLayout  = "20060102150405"
)

// Publisher persists one snapshot per request: the human-readable summary
// sentence plus the stats it was built from, keyed by a second-granularity
// UTC timestamp. Two publishes within the same second produce the same key
// and the later write wins, matching the store's plain-put semantics.
type Publisher struct {
	store  stores.ObjectStore
	prefix string
	now    func() time.Time
}

// NewPublisher creates a publisher writing under the given key prefix,
// e.g. "summaries/".
func NewPublisher(store stores.ObjectStore, prefix string) *Publisher {
	return &Publisher{
		store:  store,
		prefix: prefix,
		now:    time.Now,
	}
}

// Snapshot is the result of a successful publish.
type Snapshot struct {
	SummaryText string
	Key         string
}

// Publish writes the snapshot blob and returns its key alongside the summary
// sentence.
func (p *Publisher) Publish(ctx context.Context, stats Stats) (*Snapshot, error) {
	text := summaryText(stats)
	key := fmt.Sprintf("%ssummary-%s.json", p.prefix, p.now().UTC().Format(snapshotTimeLayout))

	body, err := json.Marshal(map[string]interface{}{
		"summary": text,
		"stats":   stats,
	})
	if err != nil {
		return nil, &StoreWriteError{Key: key, Err: err}
	}

	if err := p.store.PutObject(ctx, key, body, snapshotContentType); err != nil {
		return nil, &StoreWriteError{Key: key, Err: err}
	}

	return &Snapshot{SummaryText: text, Key: key}, nil
}

// summaryText renders the one-line report, e.g.
// "3 transactions captured. Top vendor: Acme. Total spend: $20.00."
func summaryText(stats Stats) string {
	vendor := "N/A"
	if stats.BiggestVendor != nil {
		vendor = *stats.BiggestVendor
	}
	return fmt.Sprintf("%d transactions captured. Top vendor: %s. Total spend: $%s.",
		stats.TotalTransactions, vendor, humanize.FormatFloat("#,###.##", stats.TotalAmount))
}
