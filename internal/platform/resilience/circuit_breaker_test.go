package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_DoSkipsIgnoredErrors(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	ignored := errors.New("duplicate registration")

	for i := 0; i < 3; i++ {
		err := b.Do(func() error { return ignored }, func(err error) bool { return !errors.Is(err, ignored) })
		if !errors.Is(err, ignored) {
			t.Fatalf("expected ignored error to pass through, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after ignored errors, got %s", state)
	}

	failure := errors.New("connection refused")
	if err := b.Do(func() error { return failure }, nil); !errors.Is(err, failure) {
		t.Fatalf("expected failure to pass through, got %v", err)
	}
	if err := b.Do(func() error { return nil }, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit to reject the call, got %v", err)
	}
}

func TestCircuitBreaker_ReportsStateChanges(t *testing.T) {
	b := NewCircuitBreaker(1, 5*time.Second, 1)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var changes []StateChange
	b.OnStateChange(func(change StateChange) {
		// the lock is released before listeners run
		_ = b.State()
		changes = append(changes, change)
	})

	b.RecordFailure()
	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe, got %v", err)
	}
	b.RecordSuccess()

	want := []StateChange{
		{From: CircuitStateClosed, To: CircuitStateOpen},
		{From: CircuitStateOpen, To: CircuitStateHalfOpen},
		{From: CircuitStateHalfOpen, To: CircuitStateClosed},
	}
	if len(changes) != len(want) {
		t.Fatalf("unexpected changes: %+v", changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("change %d: got=%+v want=%+v", i, changes[i], want[i])
		}
	}
}
