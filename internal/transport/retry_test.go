package transport

import (
	"errors"
	"testing"
)

func TestWithRetry_SucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	err := withRetry(3, 0, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success on attempt 3, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetry_Exhaustion(t *testing.T) {
	calls := 0
	failure := errors.New("destination down")
	err := withRetry(3, 0, func() error {
		calls++
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected the last error back, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", calls)
	}
}

func TestWithRetry_NoRetryAfterSuccess(t *testing.T) {
	calls := 0
	if err := withRetry(3, 0, func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}
