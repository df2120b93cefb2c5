package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/response"
)

type WidgetService interface {
	AddWidget(ctx context.Context, uid, dashboardID string, req dto.CreateWidgetRequest) (*models.Widget, error)
	UpdateWidget(ctx context.Context, uid, dashboardID, widgetID string, req dto.UpdateWidgetRequest) (*models.Dashboard, error)
	DeleteWidget(ctx context.Context, uid, dashboardID, widgetID string) (*models.Dashboard, error)
	MoveWidget(ctx context.Context, uid, dashboardID, widgetID string, deltaX, deltaY int) (*models.Dashboard, error)
	ResizeWidget(ctx context.Context, uid, dashboardID, widgetID string, deltaX, deltaY int) (*models.Dashboard, error)
}

type widgetHandlers struct {
	ResponseHandler response.ResponseHandler
	WidgetSvc       WidgetService
}

func NewWidgetHandlers(deps *Deps) *widgetHandlers {
	return &widgetHandlers{
		ResponseHandler: deps.ResponseHandler,
		WidgetSvc:       deps.WidgetSvc,
	}
}

func (h *widgetHandlers) WidgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.AddWidget)
	r.Patch("/{widgetId}", h.UpdateWidget)
	r.Delete("/{widgetId}", h.DeleteWidget)
	r.Put("/{widgetId}/move", h.MoveWidget)
	r.Put("/{widgetId}/resize", h.ResizeWidget)
	return r
}

func (h *widgetHandlers) AddWidget(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	var req dto.CreateWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	widget, err := h.WidgetSvc.AddWidget(r.Context(), uid, dashboardID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, widget)
}

func (h *widgetHandlers) UpdateWidget(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.UpdateWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	d, err := h.WidgetSvc.UpdateWidget(r.Context(), uid, dashboardID, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *widgetHandlers) DeleteWidget(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	d, err := h.WidgetSvc.DeleteWidget(r.Context(), uid, dashboardID, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *widgetHandlers) MoveWidget(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.MoveWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	d, err := h.WidgetSvc.MoveWidget(r.Context(), uid, dashboardID, widgetID, req.DeltaX, req.DeltaY)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *widgetHandlers) ResizeWidget(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.ResizeWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	d, err := h.WidgetSvc.ResizeWidget(r.Context(), uid, dashboardID, widgetID, req.DeltaX, req.DeltaY)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}
