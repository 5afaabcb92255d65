package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/onurcolak/termii-gateway/internal/domain"
	"github.com/onurcolak/termii-gateway/pkg/logger"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 15 * time.Minute

// balanceChecker matches GatewayService.CheckBalance and lets us unit test
// the scheduler with a small fake implementation.
type balanceChecker interface {
	CheckBalance(ctx context.Context) (*domain.BalanceSnapshot, error)
}

type alertSender interface {
	Enabled() bool
	SendLowBalanceAlert(ctx context.Context, alert domain.LowBalanceAlert) error
}

// Scheduler polls the Termii balance on an interval and raises an alert once
// the balance has stayed below the threshold for alertAfter consecutive runs.
type Scheduler struct {
	checker    balanceChecker
	alerts     alertSender
	interval   time.Duration
	threshold  float64
	alertAfter int

	// Internal state
	running  bool
	stopChan chan struct{}
	doneChan chan struct{}
	mu       sync.RWMutex

	// Statistics
	lastRunAt      time.Time
	runsCount      int64
	failedRuns     int64
	lastSnapshot   *domain.BalanceSnapshot
	consecutiveLow int

	lastAlertSentAt time.Time
}

func NewScheduler(checker balanceChecker, alerts alertSender, interval time.Duration, threshold float64, alertAfter int) *Scheduler {
	if interval <= 0 {
		logger.Warnf("Invalid balance monitor interval %v, using %v", interval, DefaultInterval)
		interval = DefaultInterval
	}
	if alertAfter <= 0 {
		alertAfter = 1
	}

	return &Scheduler{
		checker:    checker,
		alerts:     alerts,
		interval:   interval,
		threshold:  threshold,
		alertAfter: alertAfter,
	}
}

// StartWithParams overrides the interval and threshold before starting.
// Nil values keep the current settings.
func (s *Scheduler) StartWithParams(ctx context.Context, intervalMinutes *int, threshold *float64) error {
	s.mu.Lock()
	if intervalMinutes != nil && *intervalMinutes > 0 {
		s.interval = time.Duration(*intervalMinutes) * time.Minute
	}
	if threshold != nil {
		s.threshold = *threshold
	}
	s.consecutiveLow = 0
	s.mu.Unlock()

	return s.Start(ctx)
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()

	if s.running {
		s.mu.Unlock()
		logger.Warnf("Balance monitor is already running")
		return nil
	}

	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	interval := s.interval
	s.mu.Unlock()

	logger.Infof("Starting balance monitor with interval: %v", interval)

	go s.run(ctx, interval)

	return nil
}

func (s *Scheduler) run(ctx context.Context, interval time.Duration) {
	defer close(s.doneChan)

	s.checkBalance(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.checkBalance(ctx)
			logger.Debugf("Next balance check in %v", interval)

		case <-s.stopChan:
			logger.Warnf("Balance monitor received stop signal")
			return

		case <-ctx.Done():
			logger.Warnf("Balance monitor context cancelled")
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		}
	}
}

func (s *Scheduler) checkBalance(ctx context.Context) {
	s.mu.Lock()
	s.lastRunAt = time.Now()
	s.runsCount++
	runNumber := s.runsCount
	threshold := s.threshold
	s.mu.Unlock()

	snapshot, err := s.checker.CheckBalance(ctx)
	if err != nil {
		s.mu.Lock()
		s.failedRuns++
		s.mu.Unlock()
		logger.Errorf("[Run #%d] Balance check failed: %v", runNumber, err)
		return
	}

	s.mu.Lock()
	s.lastSnapshot = snapshot

	if snapshot.Balance >= threshold {
		if s.consecutiveLow > 0 {
			logger.Infof("[Run #%d] Balance recovered to %.2f %s", runNumber, snapshot.Balance, snapshot.Currency)
		}
		s.consecutiveLow = 0
		s.mu.Unlock()
		logger.Debugf("[Run #%d] Balance %.2f %s", runNumber, snapshot.Balance, snapshot.Currency)
		return
	}

	s.consecutiveLow++
	consecutiveLow := s.consecutiveLow
	// One alert per low-balance episode.
	shouldAlert := consecutiveLow == s.alertAfter && s.alerts != nil && s.alerts.Enabled()
	s.mu.Unlock()

	logger.Warnf("[Run #%d] Balance %.2f %s is below %.2f (consecutive count: %d/%d)",
		runNumber, snapshot.Balance, snapshot.Currency, threshold, consecutiveLow, s.alertAfter)

	if shouldAlert {
		s.sendAlert(ctx, domain.LowBalanceAlert{
			Balance:        snapshot.Balance,
			Currency:       snapshot.Currency,
			Threshold:      threshold,
			ConsecutiveLow: consecutiveLow,
			RunNumber:      runNumber,
			CheckedAt:      snapshot.CheckedAt,
		})
	}
}

func (s *Scheduler) sendAlert(ctx context.Context, alert domain.LowBalanceAlert) {
	if err := s.alerts.SendLowBalanceAlert(ctx, alert); err != nil {
		logger.Errorf("Failed to send low balance alert: %v", err)
		return
	}

	s.mu.Lock()
	s.lastAlertSentAt = time.Now()
	s.mu.Unlock()

	logger.Infof("Low balance alert sent (balance: %.2f %s)", alert.Balance, alert.Currency)
}

func (s *Scheduler) Stop() error {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		logger.Warnf("Balance monitor is not running")
		return nil
	}

	s.running = false
	stopChan := s.stopChan
	doneChan := s.doneChan
	s.mu.Unlock()

	close(stopChan)

	// Wait for goroutine to finish
	<-doneChan

	logger.Infof("Balance monitor stopped")
	return nil
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) GetStatus() SchedulerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := SchedulerStatus{
		Running:         s.running,
		LastRunAt:       s.lastRunAt,
		RunsCount:       s.runsCount,
		FailedRuns:      s.failedRuns,
		Interval:        s.interval.String(),
		Threshold:       s.threshold,
		ConsecutiveLow:  s.consecutiveLow,
		LastAlertSentAt: s.lastAlertSentAt,
		LastSnapshot:    s.lastSnapshot,
	}

	if s.running && !s.lastRunAt.IsZero() {
		status.NextRunAt = s.lastRunAt.Add(s.interval)
	}

	return status
}

type SchedulerStatus struct {
	Running         bool                    `json:"running"`
	LastRunAt       time.Time               `json:"lastRunAt,omitempty"`
	NextRunAt       time.Time               `json:"nextRunAt,omitempty"`
	RunsCount       int64                   `json:"runsCount"`
	FailedRuns      int64                   `json:"failedRuns"`
	Interval        string                  `json:"interval"`
	Threshold       float64                 `json:"threshold"`
	ConsecutiveLow  int                     `json:"consecutiveLow"`
	LastAlertSentAt time.Time               `json:"lastAlertSentAt,omitempty"`
	LastSnapshot    *domain.BalanceSnapshot `json:"lastSnapshot,omitempty"`
}
