package summary

import (
	"context"

	"github.com/acct-ai/transaction-summary/pkg/stores"
)

// Loader reads the complete record set from the store, transparently
// following continuation tokens until the scan is exhausted.
type Loader struct {
	store stores.RecordStore
}

// NewLoader creates a loader backed by the given record store.
func NewLoader(store stores.RecordStore) *Loader {
	return &Loader{store: store}
}

// LoadAll returns every record in the store, in scan order. Any page failure
// aborts the whole load. Cancellation is checked between pages, the only
// point where aborting cannot lose a fetched record.
func (l *Loader) LoadAll(ctx context.Context) ([]stores.Record, error) {
	var records []stores.Record
	var token stores.PageToken

	for {
		if err := ctx.Err(); err != nil {
			return nil, &StoreUnavailableError{Err: err}
		}

		page, err := l.store.Scan(ctx, token)
		if err != nil {
			return nil, &StoreUnavailableError{Err: err}
		}

		records = append(records, page.Items...)

		if page.NextToken == nil {
			return records, nil
		}
		token = page.NextToken
	}
}
