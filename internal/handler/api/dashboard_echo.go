package api

import (
	"errors"

	models "MacroDash/internal/domain/models"
	"MacroDash/internal/usecase"
	xhttp "MacroDash/pkg/http"
	xlogger "MacroDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler serves the JSON surface of the dashboard.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	uc     *usecase.DashboardUseCase
	events *xlogger.Collector
}

func NewDashboardEchoHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase, events *xlogger.Collector) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, uc: uc, events: events}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/history", h.History)
	g.GET("/status", h.Status)
	e.GET("/healthz", h.Health)
}

func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	res, err := h.uc.Get(c.Request().Context())
	if err != nil {
		h.logger.Error("dashboard usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, pipelineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.History(c.Request().Context(), req.Days)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, pipelineError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Status reports snapshot meta plus recently collected warnings. It never
// triggers a fetch.
func (h *DashboardEchoHandler) Status(c echo.Context) error {
	type statusBody struct {
		Snapshot models.SnapshotStatus `json:"snapshot"`
		Events   []xlogger.Entry       `json:"events"`
	}
	return xhttp.SuccessResponse(c, statusBody{
		Snapshot: h.uc.Status(),
		Events:   h.events.Recent(),
	})
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// pipelineError maps usecase sentinels onto HTTP-level errors. Upstream and
// data-shape failures both surface as 503: the service is up but has
// nothing trustworthy to serve.
func pipelineError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrFetch):
		return xhttp.UnavailableError("upstream market data unavailable").WithError(err)
	case errors.Is(err, usecase.ErrInsufficientData):
		return xhttp.UnavailableError("not enough observations to build the dashboard").WithError(err)
	case errors.Is(err, usecase.ErrNoSnapshot):
		return xhttp.UnavailableError("no data snapshot available yet").WithError(err)
	}
	return err
}
