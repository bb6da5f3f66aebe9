package stores

import "context"

// Record is a single transaction item as stored. The field set is open:
// everything the store returns is carried through untouched, with numeric
// attributes held as decimal.Decimal until the serialization boundary.
type Record map[string]interface{}

// PageToken is an opaque continuation marker. A nil token on input starts a
// scan from the beginning; a nil token on output means the scan is exhausted.
type PageToken interface{}

// Page is one chunk of a full-table scan.
type Page struct {
	Items     []Record
	NextToken PageToken
}

// RecordStore defines the read capability consumed by the loader.
type RecordStore interface {
	Initialize(ctx context.Context) error
	Close() error

	// Scan fetches a single page. The caller carries the continuation token
	// between calls; pages must be requested strictly in order.
	Scan(ctx context.Context, token PageToken) (*Page, error)
}

// ObjectStore defines the blob write capability consumed by the publisher.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// RecordStoreFactory creates and configures a specific record store implementation.
type RecordStoreFactory interface {
	CreateRecordStore(config map[string]interface{}) (RecordStore, error)
}

// ObjectStoreFactory creates and configures a specific object store implementation.
type ObjectStoreFactory interface {
	CreateObjectStore(config map[string]interface{}) (ObjectStore, error)
}
