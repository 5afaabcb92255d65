package handlers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/termii-gateway/internal/scheduler"
	"github.com/onurcolak/termii-gateway/internal/service"
	"github.com/onurcolak/termii-gateway/pkg/response"
	"github.com/onurcolak/termii-gateway/pkg/validator"
)

// MonitorHandler controls the balance monitor.
type MonitorHandler struct {
	scheduler *scheduler.Scheduler
	service   *service.GatewayService
	ctx       context.Context
}

type StartMonitorRequest struct {
	Interval   *int     `json:"interval,omitempty" validate:"omitempty,min=1"`
	LowBalance *float64 `json:"lowBalance,omitempty" validate:"omitempty,min=0"`
}

// NewMonitorHandler ties started monitors to ctx rather than to the request
// that started them.
func NewMonitorHandler(
	sched *scheduler.Scheduler,
	svc *service.GatewayService,
	ctx context.Context,
) *MonitorHandler {
	return &MonitorHandler{
		scheduler: sched,
		service:   svc,
		ctx:       ctx,
	}
}

// StartMonitor godoc
// @Summary Start the balance monitor
// @Description Starts polling the Termii balance with optional interval and threshold overrides
// @Tags monitor
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param request body StartMonitorRequest false "Monitor parameters (optional)"
// @Success 200 {object} response.SuccessResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/monitor/start [post]
func (h *MonitorHandler) StartMonitor(c echo.Context) error {
	if h.scheduler.IsRunning() {
		return response.OkWithMessage(c, "Balance monitor is already running", h.scheduler.GetStatus())
	}

	var req StartMonitorRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	if err := h.scheduler.StartWithParams(h.ctx, req.Interval, req.LowBalance); err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Balance monitor started successfully", h.scheduler.GetStatus())
}

// StopMonitor godoc
// @Summary Stop the balance monitor
// @Tags monitor
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/monitor/stop [post]
func (h *MonitorHandler) StopMonitor(c echo.Context) error {
	if !h.scheduler.IsRunning() {
		return response.OkWithMessage(c, "Balance monitor is already stopped", h.scheduler.GetStatus())
	}

	if err := h.scheduler.Stop(); err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Balance monitor stopped successfully", h.scheduler.GetStatus())
}

// GetMonitorStatus godoc
// @Summary Get balance monitor status
// @Tags monitor
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} response.SuccessResponse
// @Router /api/v1/monitor/status [get]
func (h *MonitorHandler) GetMonitorStatus(c echo.Context) error {
	return response.Ok(c, h.scheduler.GetStatus())
}

// GetLatestSnapshot godoc
// @Summary Get the last stored balance snapshot
// @Tags monitor
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/monitor/snapshot [get]
func (h *MonitorHandler) GetLatestSnapshot(c echo.Context) error {
	snapshot, err := h.service.LatestBalanceSnapshot(c.Request().Context())
	if errors.Is(err, service.ErrSnapshotsDisabled) {
		return response.ServiceUnavailable(c, err.Error())
	}
	if err != nil {
		return response.InternalServerError(c, err)
	}
	if snapshot == nil {
		return response.NotFound(c, "no balance snapshot recorded yet")
	}

	return response.Ok(c, snapshot)
}
