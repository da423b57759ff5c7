package resolver

import (
	"fmt"
	"time"
)

// Stats holds operation counters for one resolver instance. Snapshots are
// taken through the actor, so a snapshot never observes a half-applied
// operation.
type Stats struct {
	StartedAt time.Time `json:"started_at"`

	Creates  int64 `json:"creates"`
	Gets     int64 `json:"gets"`
	Deletes  int64 `json:"deletes"`
	Lists    int64 `json:"lists"`
	Inserts  int64 `json:"inserts"`
	Failures int64 `json:"failures"`

	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// Total returns the number of operations served.
func (s Stats) Total() int64 {
	return s.Creates + s.Gets + s.Deletes + s.Lists + s.Inserts
}

// Uptime returns how long the resolver has been serving.
func (s Stats) Uptime() time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	return time.Since(s.StartedAt)
}

// FormatDisplay returns a short human-readable summary (e.g. "127 ops, 3 failures, up 2m10s").
func (s Stats) FormatDisplay() string {
	return fmt.Sprintf("%d ops, %d failures, up %s", s.Total(), s.Failures, s.Uptime().Round(time.Second))
}
