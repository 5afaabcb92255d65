package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/termii-gateway/internal/service"
	"github.com/onurcolak/termii-gateway/pkg/response"
)

// DispatchHandler serves the dispatch log.
type DispatchHandler struct {
	service *service.GatewayService
}

func NewDispatchHandler(service *service.GatewayService) *DispatchHandler {
	return &DispatchHandler{service: service}
}

// ListDispatches godoc
// @Summary List recorded Termii calls
// @Description Retrieves a paginated list of dispatches, newest first, with an optional operation filter
// @Tags dispatches
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param operation query string false "Filter by operation (e.g. send_message)"
// @Success 200 {object} response.PaginatedResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/dispatches [get]
func (h *DispatchHandler) ListDispatches(c echo.Context) error {
	page, pageSize, err := parsePaginationParams(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	var operation *string
	if op := c.QueryParam("operation"); op != "" {
		operation = &op
	}

	dispatches, totalCount, err := h.service.ListDispatches(c.Request().Context(), operation, page, pageSize)
	if errors.Is(err, service.ErrDispatchLogDisabled) {
		return response.ServiceUnavailable(c, err.Error())
	}
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Paginated(c, dispatches, page, pageSize, totalCount)
}

// GetStats godoc
// @Summary Get dispatch statistics
// @Description Returns how many recorded calls got a 2xx reply and how many did not
// @Tags dispatches
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/dispatches/stats [get]
func (h *DispatchHandler) GetStats(c echo.Context) error {
	stats, err := h.service.DispatchStats(c.Request().Context())
	if errors.Is(err, service.ErrDispatchLogDisabled) {
		return response.ServiceUnavailable(c, err.Error())
	}
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, map[string]any{
		"succeeded": stats.Succeeded,
		"failed":    stats.Failed,
		"total":     stats.Succeeded + stats.Failed,
	})
}

func parsePaginationParams(c echo.Context) (int, int, error) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)

	pageStr := c.QueryParam("page")
	pageSizeStr := c.QueryParam("pageSize")

	page := defaultPage
	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
		page = p
	}

	pageSize := defaultPageSize
	if pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 || ps > maxPageSize {
			return 0, 0, fmt.Errorf("pageSize must be between 1 and %d", maxPageSize)
		}
		pageSize = ps
	}

	return page, pageSize, nil
}
