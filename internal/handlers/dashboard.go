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
	"github.com/GregMSThompson/dashboard-builder/internal/services"
)

type DashboardService interface {
	GetCollection(ctx context.Context, uid string) (*models.DashboardCollection, *models.Dashboard, error)
	CreateDashboard(ctx context.Context, uid, email string) (*models.Dashboard, error)
	SelectDashboard(ctx context.Context, uid, dashboardID string) (*models.Dashboard, error)
	RenameDashboard(ctx context.Context, uid, dashboardID, name string) (*models.Dashboard, error)
	SetDefault(ctx context.Context, uid, dashboardID string) (*models.DashboardCollection, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    DashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetCollection)
	r.Post("/", h.CreateDashboard)
	r.Get("/{dashboardId}", h.SelectDashboard)
	r.Put("/{dashboardId}/name", h.RenameDashboard)
	r.Put("/{dashboardId}/default", h.SetDefault)
	return r
}

// GetCollection returns every dashboard the user owns plus the derived
// tenant and the current selection. First access seeds the sample dashboard.
func (h *dashboardHandlers) GetCollection(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	c, current, err := h.DashboardSvc.GetCollection(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	resp := dto.CollectionResponse{
		Tenant:     services.DeriveTenant(uid, middleware.Email(r.Context())),
		Dashboards: c.Dashboards,
	}
	if current != nil {
		resp.CurrentID = current.DashboardID
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) CreateDashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	d, err := h.DashboardSvc.CreateDashboard(r.Context(), uid, middleware.Email(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.CreateDashboardResponse{
		Dashboard:    d,
		StartEditing: true,
	})
}

func (h *dashboardHandlers) SelectDashboard(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	uid := middleware.UID(r.Context())
	d, err := h.DashboardSvc.SelectDashboard(r.Context(), uid, dashboardID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *dashboardHandlers) RenameDashboard(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	var req dto.RenameDashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	d, err := h.DashboardSvc.RenameDashboard(r.Context(), uid, dashboardID, req.Name)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *dashboardHandlers) SetDefault(w http.ResponseWriter, r *http.Request) {
	dashboardID := chi.URLParam(r, "dashboardId")
	uid := middleware.UID(r.Context())
	c, err := h.DashboardSvc.SetDefault(r.Context(), uid, dashboardID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, c)
}
