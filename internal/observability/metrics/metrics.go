package metrics

import (
	"maps"
	"time"

	obserrors "github.com/target/dirsearch/internal/observability/errors"
	"github.com/target/dirsearch/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess   = "success"
	ResultError     = "error"
	ResultTimeout   = "timeout"
	ResultCancelled = "cancelled"
	ResultEmpty     = "empty"
	ResultHit       = "hit"
	ResultMiss      = "miss"
)

// AuthMetric captures the outcome of a single login attempt.
type AuthMetric struct {
	Result   string
	Duration time.Duration
	Err      error
}

// EmitAuthOutcome emits login attempt metrics.
func EmitAuthOutcome(sink statsd.Sink, in AuthMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{"result": in.Result}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("auth.attempt", 1, tags)
	if in.Duration > 0 {
		sink.Timing("auth.duration", in.Duration, CloneTags(tags))
	}
}

// LookupMetric captures a single directory sub-query.
type LookupMetric struct {
	// Source names the sub-query, e.g. "principal", "device_serial", "device_name".
	Source   string
	Result   string
	Count    int
	Duration time.Duration
	Err      error
}

// EmitLookup emits directory lookup metrics.
func EmitLookup(sink statsd.Sink, in LookupMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"source": in.Source,
		"result": in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("directory.lookup", 1, tags)
	if in.Count > 0 {
		sink.Gauge("directory.lookup.records", float64(in.Count), CloneTags(tags))
	}
	if in.Duration > 0 {
		sink.Timing("directory.lookup.duration", in.Duration, CloneTags(tags))
	}
}

// EmitCache records a lookup-cache hit or miss.
func EmitCache(sink statsd.Sink, kind, result string) {
	if sink == nil {
		return
	}
	sink.Count("directory.cache", 1, map[string]string{"kind": kind, "result": result})
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}
