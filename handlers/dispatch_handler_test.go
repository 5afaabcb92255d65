package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/termii-gateway/internal/domain"
	"github.com/onurcolak/termii-gateway/internal/service"
	"github.com/onurcolak/termii-gateway/pkg/response"
)

type fakeDispatchRepo struct {
	dispatches []domain.Dispatch
	operation  *string
	page       int
	pageSize   int
}

func (r *fakeDispatchRepo) Create(ctx context.Context, d *domain.Dispatch) error {
	r.dispatches = append(r.dispatches, *d)
	return nil
}

func (r *fakeDispatchRepo) GetAll(ctx context.Context, operation *string, page, pageSize int) ([]domain.Dispatch, int64, error) {
	r.operation = operation
	r.page = page
	r.pageSize = pageSize
	return r.dispatches, int64(len(r.dispatches)), nil
}

func (r *fakeDispatchRepo) GetStats(ctx context.Context) (domain.DispatchStats, error) {
	var stats domain.DispatchStats
	for _, d := range r.dispatches {
		if d.Succeeded() {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	return stats, nil
}

func TestListDispatches_Paginated(t *testing.T) {
	repo := &fakeDispatchRepo{dispatches: []domain.Dispatch{
		{ID: "a", Operation: service.OpSendMessage, StatusCode: 200, CreatedAt: time.Now()},
		{ID: "b", Operation: service.OpSendMessage, StatusCode: 400, CreatedAt: time.Now()},
	}}
	handler := NewDispatchHandler(service.NewGatewayService(nil, repo, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dispatches?page=2&pageSize=1&operation=send_message", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListDispatches(c); err != nil {
		t.Fatalf("ListDispatches returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if repo.operation == nil || *repo.operation != service.OpSendMessage {
		t.Fatalf("expected operation filter %q, got %v", service.OpSendMessage, repo.operation)
	}
	if repo.page != 2 || repo.pageSize != 1 {
		t.Fatalf("expected page 2 size 1, got page %d size %d", repo.page, repo.pageSize)
	}

	var resp response.PaginatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.TotalCount != 2 || resp.TotalPages != 2 {
		t.Fatalf("expected 2 items over 2 pages, got %d over %d", resp.TotalCount, resp.TotalPages)
	}
}

func TestListDispatches_InvalidPageSize(t *testing.T) {
	handler := NewDispatchHandler(service.NewGatewayService(nil, &fakeDispatchRepo{}, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dispatches?pageSize=500", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListDispatches(c); err != nil {
		t.Fatalf("ListDispatches returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestListDispatches_LogDisabled(t *testing.T) {
	handler := NewDispatchHandler(service.NewGatewayService(nil, nil, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dispatches", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListDispatches(c); err != nil {
		t.Fatalf("ListDispatches returned error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestGetDispatchStats(t *testing.T) {
	repo := &fakeDispatchRepo{dispatches: []domain.Dispatch{
		{ID: "a", StatusCode: 200},
		{ID: "b", StatusCode: 200},
		{ID: "c", StatusCode: 401},
	}}
	handler := NewDispatchHandler(service.NewGatewayService(nil, repo, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dispatches/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetStats(c); err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}

	var resp struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.Data["succeeded"] != 2 || resp.Data["failed"] != 1 || resp.Data["total"] != 3 {
		t.Fatalf("unexpected stats %v", resp.Data)
	}
}
