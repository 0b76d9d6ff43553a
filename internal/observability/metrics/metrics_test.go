package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/target/dirsearch/internal/errors"
	"github.com/target/dirsearch/internal/observability/statsd"
)

func TestEmitAuthOutcome(t *testing.T) {
	rec := &statsd.Recorder{}
	EmitAuthOutcome(rec, AuthMetric{
		Result:   ResultError,
		Duration: 3 * time.Millisecond,
		Err:      apperrors.Wrap(errors.New("boom"), apperrors.ErrCodeAuthError, "acquire token"),
	})

	counts := rec.Named("auth.attempt")
	require.Len(t, counts, 1)
	assert.Equal(t, "error", counts[0].Tags["result"])
	assert.Equal(t, "auth_error", counts[0].Tags["error_class"])
	assert.Len(t, rec.Named("auth.duration"), 1)
}

func TestEmitAuthOutcome_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitAuthOutcome(nil, AuthMetric{Result: ResultSuccess})
	})
}

func TestEmitLookup(t *testing.T) {
	rec := &statsd.Recorder{}
	EmitLookup(rec, LookupMetric{Source: "principal", Result: ResultSuccess, Count: 7})

	counts := rec.Named("directory.lookup")
	require.Len(t, counts, 1)
	assert.Equal(t, "principal", counts[0].Tags["source"])
	_, hasClass := counts[0].Tags["error_class"]
	assert.False(t, hasClass)

	gauges := rec.Named("directory.lookup.records")
	require.Len(t, gauges, 1)
	assert.InDelta(t, 7, gauges[0].Value, 0)
	assert.Empty(t, rec.Named("directory.lookup.duration"))
}

func TestEmitCache(t *testing.T) {
	rec := &statsd.Recorder{}
	EmitCache(rec, "principals", ResultHit)
	got := rec.Named("directory.cache")
	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{"kind": "principals", "result": "hit"}, got[0].Tags)
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))
	src := map[string]string{"a": "b"}
	cp := CloneTags(src)
	cp["a"] = "c"
	assert.Equal(t, "b", src["a"])
}
