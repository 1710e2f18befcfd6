package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_NewTicker(t *testing.T) {
	clock := RealClock{}
	ticker := clock.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Error("ticker did not fire")
	}
}

func TestMockClock_AdvanceFiresDueTicker(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	ticker := clock.NewTicker(10 * time.Second)

	clock.Advance(5 * time.Second)
	select {
	case <-ticker.C():
		t.Fatal("ticker fired before its interval")
	default:
	}

	clock.Advance(5 * time.Second)
	select {
	case got := <-ticker.C():
		if !got.Equal(start.Add(10 * time.Second)) {
			t.Errorf("tick time = %v, want %v", got, start.Add(10*time.Second))
		}
	default:
		t.Fatal("ticker did not fire at its interval")
	}

	if !clock.Now().Equal(start.Add(10 * time.Second)) {
		t.Errorf("Now() = %v after advancing 10s", clock.Now())
	}
}

func TestMockClock_StoppedTickerDoesNotFire(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	ticker := clock.NewTicker(time.Second)
	if clock.ActiveTickers() != 1 {
		t.Fatalf("expected 1 active ticker, got %d", clock.ActiveTickers())
	}

	ticker.Stop()
	clock.Advance(2 * time.Second)

	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
	if clock.ActiveTickers() != 0 {
		t.Errorf("expected 0 active tickers after stop, got %d", clock.ActiveTickers())
	}
}
