package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderMeasure(t *testing.T) {
	r := NewRecorder()

	err := r.Measure(LoadPhase, func() error { return nil })
	require.NoError(t, err)

	wantErr := errors.New("boom")
	err = r.Measure(PublishPhase, func() error { return wantErr })
	assert.Equal(t, wantErr, err)

	summary := r.Summary()
	assert.Contains(t, summary, "totalDurationMs")
	assert.Contains(t, summary, "loadDurationMs")
	assert.Contains(t, summary, "publishDurationMs")
	assert.NotContains(t, summary, "aggregateDurationMs")
}
