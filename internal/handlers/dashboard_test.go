package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

// --- Stubs ---

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any
	handleErrorCalled  bool
	handledErr         error
}

func (s *stubResponseHandler) WriteSuccess(_ http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data
}

func (s *stubResponseHandler) WriteError(_ http.ResponseWriter, _ *http.Request, _ int, _, _ string) {
}

func (s *stubResponseHandler) HandleError(_ http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handledErr = err
}

type stubDashboardService struct {
	collection    *models.DashboardCollection
	current       *models.Dashboard
	getErr        error
	created       *models.Dashboard
	createErr     error
	selected      *models.Dashboard
	selectErr     error
	renamed       *models.Dashboard
	renameErr     error
	setDefaultCol *models.DashboardCollection
	setDefaultErr error
	lastSelectID  string
	lastRenameID  string
	lastRename    string
	lastDefaultID string
}

func (s *stubDashboardService) GetCollection(_ context.Context, _ string) (*models.DashboardCollection, *models.Dashboard, error) {
	return s.collection, s.current, s.getErr
}

func (s *stubDashboardService) CreateDashboard(_ context.Context, _, _ string) (*models.Dashboard, error) {
	return s.created, s.createErr
}

func (s *stubDashboardService) SelectDashboard(_ context.Context, _, dashboardID string) (*models.Dashboard, error) {
	s.lastSelectID = dashboardID
	return s.selected, s.selectErr
}

func (s *stubDashboardService) RenameDashboard(_ context.Context, _, dashboardID, name string) (*models.Dashboard, error) {
	s.lastRenameID = dashboardID
	s.lastRename = name
	return s.renamed, s.renameErr
}

func (s *stubDashboardService) SetDefault(_ context.Context, _, dashboardID string) (*models.DashboardCollection, error) {
	s.lastDefaultID = dashboardID
	return s.setDefaultCol, s.setDefaultErr
}

// withUID injects a UID into the request context.
func withUID(r *http.Request, uid string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	return r.WithContext(ctx)
}

// withChiParam injects a chi URL parameter into the request context,
// reusing the route context if one is already attached.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// --- Tests ---

func TestGetCollection_OK(t *testing.T) {
	d := &models.Dashboard{DashboardID: "d1", Name: "Sales Overview", IsDefault: true}
	svc := &stubDashboardService{
		collection: &models.DashboardCollection{Dashboards: []*models.Dashboard{d}},
		current:    d,
	}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodGet, "/dashboards", nil), "u1")
	h.GetCollection(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("success not written: %+v", resp)
	}
}

func TestGetCollection_Error(t *testing.T) {
	svc := &stubDashboardService{getErr: errs.NewDatabaseError("read", "boom", nil)}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodGet, "/dashboards", nil), "u1")
	h.GetCollection(httptest.NewRecorder(), req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError")
	}
}

func TestCreateDashboard_OK(t *testing.T) {
	svc := &stubDashboardService{created: &models.Dashboard{DashboardID: "d2", Name: "New Dashboard"}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodPost, "/dashboards", nil), "u1")
	h.CreateDashboard(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected 201, got %+v", resp)
	}
}

func TestSelectDashboard_NotFound(t *testing.T) {
	svc := &stubDashboardService{selectErr: errs.NewNotFoundError("dashboard not found")}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/dashboards/missing", nil)
	req = withUID(withChiParam(req, "dashboardId", "missing"), "u1")
	h.SelectDashboard(httptest.NewRecorder(), req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError")
	}
	if _, ok := resp.handledErr.(*errs.NotFoundError); !ok {
		t.Fatalf("handled %T, want NotFoundError", resp.handledErr)
	}
	if svc.lastSelectID != "missing" {
		t.Errorf("selected id = %q", svc.lastSelectID)
	}
}

func TestRenameDashboard_OK(t *testing.T) {
	svc := &stubDashboardService{renamed: &models.Dashboard{DashboardID: "d1", Name: "KPIs"}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	body := strings.NewReader(`{"name":"KPIs"}`)
	req := httptest.NewRequest(http.MethodPut, "/dashboards/d1/name", body)
	req = withUID(withChiParam(req, "dashboardId", "d1"), "u1")
	h.RenameDashboard(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled {
		t.Fatal("success not written")
	}
	if svc.lastRenameID != "d1" || svc.lastRename != "KPIs" {
		t.Errorf("rename args = (%q, %q)", svc.lastRenameID, svc.lastRename)
	}
}

func TestSetDefault_OK(t *testing.T) {
	svc := &stubDashboardService{setDefaultCol: &models.DashboardCollection{}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/dashboards/d2/default", nil)
	req = withUID(withChiParam(req, "dashboardId", "d2"), "u1")
	h.SetDefault(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled {
		t.Fatal("success not written")
	}
	if svc.lastDefaultID != "d2" {
		t.Errorf("default id = %q", svc.lastDefaultID)
	}
}
