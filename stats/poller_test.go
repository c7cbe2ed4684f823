package stats

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollerActivateRefreshesImmediately(t *testing.T) {
	counter := newFakeCounter()
	p := NewPoller(counter, time.Hour)
	defer p.Stop()

	snapshot, err := p.Activate(context.Background())
	if err != nil {
		t.Fatalf("Activate returned error: %v", err)
	}
	if snapshot.TotalVisits != 120 {
		t.Errorf("TotalVisits = %d, want 120", snapshot.TotalVisits)
	}
	if counter.callCount() != 5 {
		t.Errorf("expected one immediate refresh (5 queries), got %d", counter.callCount())
	}

	cached, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if *cached != *snapshot {
		t.Errorf("Snapshot = %+v, want %+v", *cached, *snapshot)
	}
}

func TestPollerInactiveTicksNoOp(t *testing.T) {
	counter := newFakeCounter()
	p := NewPoller(counter, 10*time.Millisecond)
	p.Start()
	defer p.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := counter.callCount(); got != 0 {
		t.Errorf("inactive poller issued %d queries, want 0", got)
	}
}

func TestPollerTicksWhileActive(t *testing.T) {
	counter := newFakeCounter()
	p := NewPoller(counter, 10*time.Millisecond)
	p.Start()
	defer p.Stop()

	if _, err := p.Activate(context.Background()); err != nil {
		t.Fatalf("Activate returned error: %v", err)
	}

	time.Sleep(60 * time.Millisecond)
	if got := counter.callCount(); got < 10 {
		t.Errorf("active poller issued only %d queries, want at least 10", got)
	}

	p.Deactivate()
	time.Sleep(30 * time.Millisecond) // let an in-flight refresh drain
	baseline := counter.callCount()
	time.Sleep(60 * time.Millisecond)
	if got := counter.callCount(); got != baseline {
		t.Errorf("deactivated poller kept refreshing: %d -> %d", baseline, got)
	}
}

func TestPollerRefreshFailureSurfacesInSnapshot(t *testing.T) {
	counter := newFakeCounter()
	counter.errs["today"] = errors.New("backend requires a supporting index")
	p := NewPoller(counter, time.Hour)
	defer p.Stop()

	if _, err := p.Activate(context.Background()); err == nil {
		t.Fatal("expected Activate to fail")
	}
	if _, err := p.Snapshot(); err == nil {
		t.Fatal("expected Snapshot to carry the refresh error")
	}

	// A subsequent successful refresh clears the error state.
	counter.mu.Lock()
	delete(counter.errs, "today")
	counter.mu.Unlock()

	if _, err := p.Activate(context.Background()); err != nil {
		t.Fatalf("second Activate returned error: %v", err)
	}
	snapshot, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot still failing after successful refresh: %v", err)
	}
	if snapshot.VisitsToday != 10 {
		t.Errorf("VisitsToday = %d, want 10", snapshot.VisitsToday)
	}
}

func TestIsMissingIndexErr(t *testing.T) {
	if !isMissingIndexErr(errors.New("the query requires an INDEX on timestamp")) {
		t.Error("index error not detected")
	}
	if isMissingIndexErr(errors.New("connection refused")) {
		t.Error("unrelated error treated as index error")
	}
	if isMissingIndexErr(nil) {
		t.Error("nil error treated as index error")
	}
}
