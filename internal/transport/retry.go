package transport

import (
	"log"
	"time"
)

// DefaultAttempts is the total write attempts per batch, including the first.
const DefaultAttempts = 3

// withRetry runs fn up to attempts times. After a failed attempt n
// (1-based) it sleeps n×backoff before trying again. The last error is
// returned once the budget is exhausted.
func withRetry(attempts int, backoff time.Duration, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < attempts {
			log.Printf("Warning: batch write attempt %d/%d failed: %v (retrying in %s)",
				attempt, attempts, err, time.Duration(attempt)*backoff)
			time.Sleep(time.Duration(attempt) * backoff)
		}
	}
	return err
}
