// Package httputil provides HTTP helpers for the Backend Gateway client.
//
// # Retry
//
// [Retry] re-runs an operation that failed with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//
// The delay doubles after each failed attempt. Other errors return at once.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.get(ctx, "/labels", &labels)
//	})
//
// Only idempotent reads are wrapped with retry. Mutations (node and relation
// creation, position updates) are attempted exactly once; a failed mutation
// is reported and left for the user to retry.
//
// # Configuration
//
//   - Max attempts: 3
//   - Base backoff: 250 milliseconds
package httputil
