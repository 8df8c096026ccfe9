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

func TestCircuitBreaker_ExecuteRecordsOutcome(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	errRedisDown := errors.New("redis down")
	if err := b.Execute(func() error { return errRedisDown }); !errors.Is(err, errRedisDown) {
		t.Fatalf("expected call error, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failure, got %s", state)
	}

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("expected fn to be skipped while open")
	}

	now = now.Add(2 * time.Minute)
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after probe, got %s", state)
	}
}

func TestFromSettings(t *testing.T) {
	if b := FromSettings(Settings{Enabled: false, FailureThreshold: 3}); b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}

	b := FromSettings(Settings{Enabled: true})
	if b == nil {
		t.Fatalf("expected breaker when enabled")
	}
	if b.failureThreshold != defaultFailureThreshold || b.openTimeout != defaultOpenTimeout || b.halfOpenMaxReq != defaultHalfOpenProbes {
		t.Fatalf("expected defaults, got threshold=%d timeout=%s probes=%d", b.failureThreshold, b.openTimeout, b.halfOpenMaxReq)
	}

	custom := FromSettings(Settings{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenProbes: 1})
	if custom.failureThreshold != 2 || custom.openTimeout != time.Minute || custom.halfOpenMaxReq != 1 {
		t.Fatalf("explicit settings were overridden")
	}
}
