package summary

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acct-ai/transaction-summary/pkg/stores"
)

func newTestHandler(recordStore stores.RecordStore, objectStore stores.ObjectStore) *Handler {
	return NewHandler(
		NewLoader(recordStore),
		NewPublisher(objectStore, "summaries/"),
		zap.NewNop().Sugar(),
	)
}

func TestHandleEmptyStore(t *testing.T) {
	objectStore := &fakeObjectStore{}
	h := newTestHandler(newFakeRecordStore([]stores.Record{}), objectStore)

	response, err := h.Handle(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, StatusNoData, response.Status)
	assert.Equal(t, "No transactions yet.", response.Summary)
	assert.Nil(t, response.SummaryKey)
	assert.NotNil(t, response.Transactions)
	assert.Empty(t, response.Transactions)
	assert.Zero(t, response.Stats.TotalTransactions)
	assert.Nil(t, response.Stats.BiggestVendor)

	// The empty path must not touch snapshot persistence.
	assert.Zero(t, objectStore.putCalls)
}

func TestHandleSuccess(t *testing.T) {
	recordStore := newFakeRecordStore(
		[]stores.Record{
			{"id": "1", "amount": amt("10.50"), "vendor": "A"},
			{"id": "2", "amount": amt("5.25"), "vendor": "B"},
		},
		[]stores.Record{
			{"id": "3", "amount": amt("4.25"), "vendor": "A"},
		},
	)
	objectStore := &fakeObjectStore{}
	h := newTestHandler(recordStore, objectStore)

	response, err := h.Handle(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, response.Status)
	assert.Equal(t, 3, response.Stats.TotalTransactions)
	assert.InDelta(t, 20.00, response.Stats.TotalAmount, 1e-9)
	require.NotNil(t, response.Stats.BiggestVendor)
	assert.Equal(t, "A", *response.Stats.BiggestVendor)

	require.NotNil(t, response.SummaryKey)
	assert.Regexp(t, regexp.MustCompile(`^summaries/summary-\d{14}\.json$`), *response.SummaryKey)
	assert.Equal(t, 1, objectStore.putCalls)

	require.Len(t, response.Transactions, 3)
	// Records are normalized: amounts arrive as floats in load order.
	assert.Equal(t, "1", response.Transactions[0]["id"])
	assert.Equal(t, 10.50, response.Transactions[0]["amount"])
}

func TestHandleAppliesLimit(t *testing.T) {
	recordStore := newFakeRecordStore([]stores.Record{
		{"id": "1", "amount": amt("10.50"), "vendor": "A"},
		{"id": "2", "amount": amt("5.25"), "vendor": "B"},
		{"id": "3", "amount": amt("4.25"), "vendor": "A"},
	})
	h := newTestHandler(recordStore, &fakeObjectStore{})

	response, err := h.Handle(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, response.Transactions, 1)
	assert.Equal(t, "1", response.Transactions[0]["id"])

	// Stats still cover the full set, not the truncated view.
	assert.Equal(t, 3, response.Stats.TotalTransactions)
}

func TestHandleLoadFailure(t *testing.T) {
	recordStore := newFakeRecordStore([]stores.Record{{"id": "1"}})
	recordStore.failAt = 0
	objectStore := &fakeObjectStore{}
	h := newTestHandler(recordStore, objectStore)

	response, err := h.Handle(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, response)

	var unavailable *StoreUnavailableError
	assert.True(t, errors.As(err, &unavailable))
	assert.Zero(t, objectStore.putCalls)
}

func TestHandleMalformedRecord(t *testing.T) {
	recordStore := newFakeRecordStore([]stores.Record{
		{"id": "1", "amount": "garbage", "vendor": "A"},
	})
	objectStore := &fakeObjectStore{}
	h := newTestHandler(recordStore, objectStore)

	response, err := h.Handle(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, response)

	var malformed *MalformedRecordError
	assert.True(t, errors.As(err, &malformed))
	assert.Zero(t, objectStore.putCalls)
}

func TestHandlePublishFailure(t *testing.T) {
	recordStore := newFakeRecordStore([]stores.Record{
		{"id": "1", "amount": amt("10.50"), "vendor": "A"},
	})
	objectStore := &fakeObjectStore{err: errors.New("bucket gone")}
	h := newTestHandler(recordStore, objectStore)

	response, err := h.Handle(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, response)

	var writeErr *StoreWriteError
	require.True(t, errors.As(err, &writeErr))

	// The error body the transport builds from this contains only status and
	// message; no stats leak through.
	body, marshalErr := json.Marshal(ErrorResponse{Status: StatusError, Message: err.Error()})
	require.NoError(t, marshalErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "error", decoded["status"])
	assert.NotEmpty(t, decoded["message"])
}
