package summary

import (
	"context"

	"go.uber.org/zap"

	"github.com/acct-ai/transaction-summary/internal/metrics"
	"github.com/acct-ai/transaction-summary/pkg/stores"
)

// Handler runs the full pipeline for one request: load every record,
// aggregate, publish a snapshot, assemble the payload. Handlers hold no
// per-request state and are safe for concurrent invocations.
type Handler struct {
	loader    *Loader
	publisher *Publisher
	logger    *zap.SugaredLogger
}

// NewHandler wires the pipeline together.
func NewHandler(loader *Loader, publisher *Publisher, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		loader:    loader,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle processes one request. limit caps the returned transaction list;
// zero or negative means no cap. Errors come back raw — the transport layer
// owns the conversion to an error body.
func (h *Handler) Handle(ctx context.Context, limit int) (*Response, error) {
	recorder := metrics.NewRecorder()

	var records []stores.Record
	err := recorder.Measure(metrics.LoadPhase, func() error {
		var loadErr error
		records, loadErr = h.loader.LoadAll(ctx)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	// The empty store never reaches the publisher: no snapshot is written
	// and summaryKey stays null.
	if len(records) == 0 {
		h.logger.Infow("no records in store", "metrics", recorder.Summary())
		return &Response{
			Status:       StatusNoData,
			Summary:      "No transactions yet.",
			Stats:        EmptyStats(),
			Transactions: []stores.Record{},
		}, nil
	}

	var normalized []stores.Record
	var stats Stats
	err = recorder.Measure(metrics.AggregatePhase, func() error {
		normalized = Normalize(records)
		var aggErr error
		stats, aggErr = Summarize(records)
		return aggErr
	})
	if err != nil {
		return nil, err
	}

	var snapshot *Snapshot
	err = recorder.Measure(metrics.PublishPhase, func() error {
		var pubErr error
		snapshot, pubErr = h.publisher.Publish(ctx, stats)
		return pubErr
	})
	if err != nil {
		return nil, err
	}

	h.logger.Infow("request served",
		"records", len(records),
		"summaryKey", snapshot.Key,
		"metrics", recorder.Summary(),
	)

	return &Response{
		Status:       StatusSuccess,
		Summary:      snapshot.SummaryText,
		Stats:        stats,
		SummaryKey:   &snapshot.Key,
		Transactions: ApplyLimit(normalized, limit),
	}, nil
}
