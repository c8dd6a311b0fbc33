package adapter

import (
	"context"
	"time"
)

// BillingDateCache memoizes next billing dates. Implementations must never
// change results: a miss or an error simply means "compute it".
type BillingDateCache interface {
	// Get returns the cached next billing date for the key, if any.
	Get(ctx context.Context, anchor time.Time, period string, today time.Time) (time.Time, bool)

	// Set stores the next billing date for the key until the end of today.
	Set(ctx context.Context, anchor time.Time, period string, today time.Time, next time.Time)
}
