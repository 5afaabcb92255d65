package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/onurcolak/termii-gateway/internal/domain"
)

// fakeChecker returns the queued balances in order, repeating the last one.
type fakeChecker struct {
	mu       sync.Mutex
	balances []float64
	err      error
	calls    int
}

func (f *fakeChecker) CheckBalance(ctx context.Context) (*domain.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	i := f.calls - 1
	if i >= len(f.balances) {
		i = len(f.balances) - 1
	}
	return &domain.BalanceSnapshot{Balance: f.balances[i], Currency: "NGN", CheckedAt: time.Now()}, nil
}

type fakeAlerts struct {
	enabled bool
	sent    []domain.LowBalanceAlert
}

func (f *fakeAlerts) Enabled() bool { return f.enabled }

func (f *fakeAlerts) SendLowBalanceAlert(ctx context.Context, alert domain.LowBalanceAlert) error {
	f.sent = append(f.sent, alert)
	return nil
}

func TestScheduler_CheckBalance_HealthyBalance(t *testing.T) {
	checker := &fakeChecker{balances: []float64{5000}}
	alerts := &fakeAlerts{enabled: true}
	s := NewScheduler(checker, alerts, time.Minute, 1000, 1)

	s.checkBalance(context.Background())

	status := s.GetStatus()
	if status.RunsCount != 1 {
		t.Errorf("expected RunsCount=1, got %d", status.RunsCount)
	}
	if status.ConsecutiveLow != 0 {
		t.Errorf("expected ConsecutiveLow=0, got %d", status.ConsecutiveLow)
	}
	if status.LastSnapshot == nil || status.LastSnapshot.Balance != 5000 {
		t.Errorf("unexpected last snapshot %+v", status.LastSnapshot)
	}
	if len(alerts.sent) != 0 {
		t.Errorf("expected no alerts, got %d", len(alerts.sent))
	}
}

func TestScheduler_CheckBalance_AlertsOncePerEpisode(t *testing.T) {
	checker := &fakeChecker{balances: []float64{50, 40, 30, 30, 2000, 20, 10}}
	alerts := &fakeAlerts{enabled: true}
	s := NewScheduler(checker, alerts, time.Minute, 100, 2)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		s.checkBalance(ctx)
	}

	if len(alerts.sent) != 1 {
		t.Fatalf("expected exactly 1 alert after 4 low runs, got %d", len(alerts.sent))
	}
	if alerts.sent[0].ConsecutiveLow != 2 || alerts.sent[0].Balance != 40 {
		t.Errorf("unexpected alert %+v", alerts.sent[0])
	}
	if s.GetStatus().ConsecutiveLow != 4 {
		t.Errorf("expected ConsecutiveLow=4, got %d", s.GetStatus().ConsecutiveLow)
	}

	// Recovery resets the episode, the next two low runs alert again.
	s.checkBalance(ctx)
	if s.GetStatus().ConsecutiveLow != 0 {
		t.Errorf("expected ConsecutiveLow reset after recovery")
	}
	s.checkBalance(ctx)
	s.checkBalance(ctx)

	if len(alerts.sent) != 2 {
		t.Fatalf("expected a second alert after a new episode, got %d", len(alerts.sent))
	}
	if s.GetStatus().LastAlertSentAt.IsZero() {
		t.Errorf("expected LastAlertSentAt to be set")
	}
}

func TestScheduler_CheckBalance_DisabledAlerts(t *testing.T) {
	checker := &fakeChecker{balances: []float64{1}}
	alerts := &fakeAlerts{enabled: false}
	s := NewScheduler(checker, alerts, time.Minute, 100, 1)

	s.checkBalance(context.Background())

	if len(alerts.sent) != 0 {
		t.Errorf("expected no alerts when disabled, got %d", len(alerts.sent))
	}
	if s.GetStatus().ConsecutiveLow != 1 {
		t.Errorf("expected ConsecutiveLow=1, got %d", s.GetStatus().ConsecutiveLow)
	}
}

func TestScheduler_CheckBalance_FailureCounted(t *testing.T) {
	checker := &fakeChecker{err: errors.New("termii: get balance: connection refused")}
	s := NewScheduler(checker, nil, time.Minute, 100, 1)

	s.checkBalance(context.Background())

	status := s.GetStatus()
	if status.FailedRuns != 1 {
		t.Errorf("expected FailedRuns=1, got %d", status.FailedRuns)
	}
	if status.LastSnapshot != nil {
		t.Errorf("expected no snapshot after a failed run")
	}
}

func TestScheduler_StartAndStopToggleRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := &fakeChecker{balances: []float64{5000}}
	s := NewScheduler(checker, nil, 10*time.Millisecond, 100, 1)

	if s.IsRunning() {
		t.Fatalf("expected scheduler to be not running initially")
	}

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if !s.IsRunning() {
		t.Fatalf("expected scheduler to be running after Start")
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	if s.IsRunning() {
		t.Fatalf("expected scheduler to be not running after Stop")
	}
}

func TestScheduler_StartWithParamsOverridesSettings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := &fakeChecker{balances: []float64{5000}}
	s := NewScheduler(checker, nil, time.Minute, 100, 1)

	interval := 30
	threshold := 250.0
	if err := s.StartWithParams(ctx, &interval, &threshold); err != nil {
		t.Fatalf("StartWithParams returned error: %v", err)
	}
	defer func() { _ = s.Stop() }()

	status := s.GetStatus()
	if status.Interval != (30 * time.Minute).String() {
		t.Errorf("expected interval 30m, got %s", status.Interval)
	}
	if status.Threshold != 250 {
		t.Errorf("expected threshold 250, got %v", status.Threshold)
	}
}

func TestScheduler_NonPositiveIntervalFallsBackToDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -5 * time.Minute} {
		t.Run(interval.String(), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			checker := &fakeChecker{balances: []float64{5000}}
			s := NewScheduler(checker, nil, interval, 1000, 1)

			if got := s.GetStatus().Interval; got != DefaultInterval.String() {
				t.Fatalf("expected interval %s, got %s", DefaultInterval, got)
			}

			if err := s.Start(ctx); err != nil {
				t.Fatalf("Start returned error: %v", err)
			}
			if !s.IsRunning() {
				t.Fatalf("expected scheduler to be running after Start")
			}
			if err := s.Stop(); err != nil {
				t.Fatalf("Stop returned error: %v", err)
			}
		})
	}
}
