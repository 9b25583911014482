// ABOUTME: Closed error classification for embedding/model provider failures
// ABOUTME: Providers classify once at the adapter boundary, callers switch on kinds
package upstream

import (
	"errors"
	"fmt"
	"time"
)

// ErrUpstream marks a provider call that failed for reasons other than
// rate limiting. Not retried by the core.
var ErrUpstream = errors.New("upstream provider failure")

// RateLimitError is a transient provider rejection carrying the advertised
// retry-after duration. The vector upload path sleeps this long and retries
// the same batch exactly once.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("upstream rate limited, retry after %s", e.RetryAfter)
}

// IsRateLimited reports whether err is a rate-limit classification and
// returns the advertised delay when it is.
func IsRateLimited(err error) (time.Duration, bool) {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle.RetryAfter, true
	}
	return 0, false
}

// Failure wraps a raw provider error as an ErrUpstream classification,
// preserving the original for logging.
func Failure(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUpstream, err)
}
