package stats

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/D6nnisAd/Celeste-Emerald/models"
)

// DefaultInterval is how often the poller refreshes while active.
const DefaultInterval = 10 * time.Second

const refreshTimeout = 10 * time.Second

// Poller owns the dashboard refresh loop. It ticks at a fixed interval but
// only refreshes while active; activation also forces an immediate refresh.
// Refreshes are not mutually excluded: a refresh slower than the interval
// may overlap the next one.
type Poller struct {
	counter  Counter
	interval time.Duration

	mu       sync.Mutex
	active   bool
	snapshot *models.DashboardStats
	lastErr  error

	stopOnce sync.Once
	stop     chan struct{}
}

func NewPoller(counter Counter, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		counter:  counter,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the tick loop until Stop is called.
func (p *Poller) Start() {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.tick()
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop terminates the tick loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// Activate turns polling on and performs an immediate refresh, returning its
// result so the caller can serve fresh numbers right away.
func (p *Poller) Activate(ctx context.Context) (*models.DashboardStats, error) {
	p.mu.Lock()
	p.active = true
	p.mu.Unlock()
	return p.refresh(ctx)
}

// Deactivate turns polling off, typically on admin sign-out. The cached
// snapshot is kept.
func (p *Poller) Deactivate() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()
}

// Snapshot returns the last refresh result: the cached stats, or the error
// the most recent refresh ended with.
func (p *Poller) Snapshot() (*models.DashboardStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastErr != nil {
		return nil, p.lastErr
	}
	return p.snapshot, nil
}

func (p *Poller) tick() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()
	if !active {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if _, err := p.refresh(ctx); err != nil {
		log.Printf("Dashboard refresh failed: %v", err)
	}
}

func (p *Poller) refresh(ctx context.Context) (*models.DashboardStats, error) {
	snapshot, err := FetchDashboard(ctx, p.counter)

	p.mu.Lock()
	if err != nil {
		p.lastErr = err
	} else {
		p.snapshot = snapshot
		p.lastErr = nil
	}
	p.mu.Unlock()

	if err != nil && isMissingIndexErr(err) {
		// The backend wants a supporting index for this filter/sort combo.
		// Operator action, not a user-facing condition.
		log.Printf("Backend reports a missing index; create one for the analytics log: %v", err)
	}

	return snapshot, err
}

func isMissingIndexErr(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "index")
}
