package utils

import (
	"fmt"
	"time"
)

// RetryBaseWait is the first backoff step; each further attempt doubles it.
var RetryBaseWait = 2 * time.Second

// Retry runs fn up to maxRetries times and stops at the first success.
// Between failed attempts it waits RetryBaseWait, then twice that, and so
// on. The last error is returned once all attempts are used up.
//
// Only used around sinks (database connect). The crawl loop never retries.
func Retry(maxRetries int, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < maxRetries {
			wait := RetryBaseWait << uint(attempt-1)
			Warn("Attempt %d/%d failed: %v, retrying in %v", attempt, maxRetries, lastErr, wait)
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}
