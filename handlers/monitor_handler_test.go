package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/termii-gateway/internal/domain"
	"github.com/onurcolak/termii-gateway/internal/scheduler"
	"github.com/onurcolak/termii-gateway/internal/service"
	"github.com/onurcolak/termii-gateway/pkg/termii"
)

type disabledAlerts struct{}

func (disabledAlerts) Enabled() bool { return false }

func (disabledAlerts) SendLowBalanceAlert(ctx context.Context, alert domain.LowBalanceAlert) error {
	return nil
}

type memorySnapshots struct {
	latest *domain.BalanceSnapshot
}

func (m *memorySnapshots) SaveBalanceSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	m.latest = &snapshot
	return nil
}

func (m *memorySnapshots) GetBalanceSnapshot(ctx context.Context) (*domain.BalanceSnapshot, error) {
	return m.latest, nil
}

func newTestMonitor(t *testing.T, snapshots *memorySnapshots) (*MonitorHandler, *scheduler.Scheduler) {
	t.Helper()

	u := newUpstream(t, http.StatusOK, `{"user":"Ada","balance":120.5,"currency":"NGN"}`)
	client := termii.NewClient(termii.Config{BaseURL: u.server.URL, APIKey: "mock-api-key"})

	var svc *service.GatewayService
	if snapshots != nil {
		svc = service.NewGatewayService(client, nil, snapshots)
	} else {
		svc = service.NewGatewayService(client, nil, nil)
	}

	sched := scheduler.NewScheduler(svc, disabledAlerts{}, time.Hour, 100, 1)
	t.Cleanup(func() { _ = sched.Stop() })

	return NewMonitorHandler(sched, svc, context.Background()), sched
}

func TestStartMonitor_WithOverrides(t *testing.T) {
	handler, sched := newTestMonitor(t, nil)
	e := newTestEcho()

	c, rec := postJSON(e, "/api/v1/monitor/start", `{"interval":5,"lowBalance":50}`)

	if err := handler.StartMonitor(c); err != nil {
		t.Fatalf("StartMonitor returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !sched.IsRunning() {
		t.Fatal("expected the monitor to be running")
	}

	status := sched.GetStatus()
	if status.Interval != (5 * time.Minute).String() {
		t.Errorf("expected interval 5m, got %s", status.Interval)
	}
	if status.Threshold != 50 {
		t.Errorf("expected threshold 50, got %v", status.Threshold)
	}
}

func TestStartMonitor_InvalidInterval(t *testing.T) {
	handler, sched := newTestMonitor(t, nil)
	e := newTestEcho()

	c, rec := postJSON(e, "/api/v1/monitor/start", `{"interval":0}`)

	if err := handler.StartMonitor(c); err != nil {
		t.Fatalf("StartMonitor returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
	if sched.IsRunning() {
		t.Fatal("expected the monitor to stay stopped")
	}
}

func TestStopMonitor_AlreadyStopped(t *testing.T) {
	handler, _ := newTestMonitor(t, nil)
	e := newTestEcho()

	c, rec := postJSON(e, "/api/v1/monitor/stop", ``)

	if err := handler.StopMonitor(c); err != nil {
		t.Fatalf("StopMonitor returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already stopped") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGetLatestSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		snapshots *memorySnapshots
		wantCode  int
	}{
		{name: "store disabled", snapshots: nil, wantCode: http.StatusServiceUnavailable},
		{name: "nothing recorded", snapshots: &memorySnapshots{}, wantCode: http.StatusNotFound},
		{
			name:      "latest snapshot",
			snapshots: &memorySnapshots{latest: &domain.BalanceSnapshot{User: "Ada", Balance: 120.5, Currency: "NGN"}},
			wantCode:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestMonitor(t, tt.snapshots)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/monitor/snapshot", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.GetLatestSnapshot(c); err != nil {
				t.Fatalf("GetLatestSnapshot returned error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			if tt.wantCode == http.StatusOK {
				var resp struct {
					Data domain.BalanceSnapshot `json:"data"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response body: %v", err)
				}
				if resp.Data.Balance != 120.5 {
					t.Fatalf("expected balance 120.5, got %v", resp.Data.Balance)
				}
			}
		})
	}
}
