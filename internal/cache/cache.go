// Package cache provides the short-lived store used for computed reports.
//
// Two backends implement Cache: Memory, a process-local map, and Redis, which
// lets several replicas share entries. Both treat failures as misses so a
// cache outage never fails a request.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores opaque values for a bounded time.
type Cache interface {
	// Get returns the value for key and true, or nil and false when the key is
	// absent, expired, or the backend could not be reached.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl. A non-positive ttl is a no-op.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// ReportKey builds the key for a report: report:<scope>:<id>:<start>:<end>.
// Empty components are kept so that unbounded ranges get distinct keys.
func ReportKey(scope, id, start, end string) string {
	return strings.Join([]string{"report", scope, id, start, end}, ":")
}
