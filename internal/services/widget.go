package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

type widgetService struct {
	store collectionStore
}

func NewWidgetService(store collectionStore) *widgetService {
	return &widgetService{store: store}
}

// --- Public service methods ---

// AddWidget appends a new widget with type-sized defaults at the fixed canvas
// origin. Widgets may overlap; later entries render on top. Append order is
// the only z-order there is.
func (s *widgetService) AddWidget(ctx context.Context, uid, dashboardID string, req dto.CreateWidgetRequest) (*models.Widget, error) {
	if err := validateWidgetType(req.Type); err != nil {
		return nil, err
	}
	if err := validateSubtype(req.Type, req.Subtype); err != nil {
		return nil, err
	}

	c, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := c.Find(dashboardID)
	if d == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}

	w := models.Widget{
		WidgetID: uuid.New().String(),
		Type:     req.Type,
		Title:    "New " + capitalize(req.Type),
		Position: defaultPosition(req.Type),
		Config:   models.WidgetConfig{Subtype: req.Subtype},
	}

	next := cloneDashboard(d)
	next.Widgets = append(next.Widgets, w)
	next.UpdatedAt = time.Now()

	persistOptimistic(ctx, s.store, uid, replaceDashboard(c, next))
	return &w, nil
}

// UpdateWidget shallow-merges the partial onto the matching widget. Fields
// present in the partial fully replace the widget's value; position, config
// and dateRange are never deep-merged. An unknown widget id is a silent
// no-op: the dashboard comes back unchanged and nothing is written.
func (s *widgetService) UpdateWidget(ctx context.Context, uid, dashboardID, widgetID string, req dto.UpdateWidgetRequest) (*models.Dashboard, error) {
	if req.DateRange != nil {
		if err := ValidateDateRange(*req.DateRange); err != nil {
			return nil, err
		}
	}

	c, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := c.Find(dashboardID)
	if d == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}

	i := indexOfWidget(d, widgetID)
	if i < 0 {
		return d, nil
	}

	next := cloneDashboard(d)
	w := &next.Widgets[i]
	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Position != nil {
		w.Position = *req.Position
	}
	if req.Config != nil {
		w.Config = *req.Config
	}
	if req.Data != nil {
		w.Data = req.Data
	}
	if req.DateRange != nil {
		dr := *req.DateRange
		w.DateRange = &dr
	}
	next.UpdatedAt = time.Now()

	persistOptimistic(ctx, s.store, uid, replaceDashboard(c, next))
	return next, nil
}

// DeleteWidget removes the widget; an unknown id is a silent no-op.
func (s *widgetService) DeleteWidget(ctx context.Context, uid, dashboardID, widgetID string) (*models.Dashboard, error) {
	c, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := c.Find(dashboardID)
	if d == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}

	if indexOfWidget(d, widgetID) < 0 {
		return d, nil
	}

	next := cloneDashboard(d)
	widgets := make([]models.Widget, 0, len(next.Widgets)-1)
	for _, w := range next.Widgets {
		if w.WidgetID != widgetID {
			widgets = append(widgets, w)
		}
	}
	next.Widgets = widgets
	next.UpdatedAt = time.Now()

	persistOptimistic(ctx, s.store, uid, replaceDashboard(c, next))
	return next, nil
}

// MoveWidget commits a finished drag: the accumulated delta is snapped to the
// grid and clamped to the canvas. A zero delta never touches the store.
func (s *widgetService) MoveWidget(ctx context.Context, uid, dashboardID, widgetID string, deltaX, deltaY int) (*models.Dashboard, error) {
	c, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := c.Find(dashboardID)
	if d == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}

	i := indexOfWidget(d, widgetID)
	if i < 0 || (deltaX == 0 && deltaY == 0) {
		return d, nil
	}

	next := cloneDashboard(d)
	next.Widgets[i].Position = ApplyMove(next.Widgets[i].Position, deltaX, deltaY, GridSize)
	next.UpdatedAt = time.Now()

	persistOptimistic(ctx, s.store, uid, replaceDashboard(c, next))
	return next, nil
}

// ResizeWidget applies one pointer-move delta, clamped to the minimum widget
// size. Resize is continuous and anchored top-left, so x,y stay put.
func (s *widgetService) ResizeWidget(ctx context.Context, uid, dashboardID, widgetID string, deltaX, deltaY int) (*models.Dashboard, error) {
	c, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := c.Find(dashboardID)
	if d == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}

	i := indexOfWidget(d, widgetID)
	if i < 0 {
		return d, nil
	}

	next := cloneDashboard(d)
	next.Widgets[i].Position = ApplyResize(next.Widgets[i].Position, deltaX, deltaY)
	next.UpdatedAt = time.Now()

	persistOptimistic(ctx, s.store, uid, replaceDashboard(c, next))
	return next, nil
}

// --- Helpers ---

func (s *widgetService) load(ctx context.Context, uid string) (*models.DashboardCollection, error) {
	c, found, err := s.store.Load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewNotFoundError("no dashboards for user")
	}
	return c, nil
}

func indexOfWidget(d *models.Dashboard, widgetID string) int {
	for i, w := range d.Widgets {
		if w.WidgetID == widgetID {
			return i
		}
	}
	return -1
}

func defaultPosition(widgetType string) models.Position {
	if widgetType == dto.WidgetTypeMetric {
		return models.Position{X: 20, Y: 20, Width: 280, Height: 160}
	}
	return models.Position{X: 20, Y: 20, Width: 400, Height: 300}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// --- Validation ---

func validateWidgetType(t string) error {
	switch t {
	case dto.WidgetTypeChart, dto.WidgetTypeMetric, dto.WidgetTypeTable, dto.WidgetTypeText:
		return nil
	}
	return errs.NewValidationError("unknown widget type: " + t)
}

var validSubtypes = map[string][]string{
	dto.WidgetTypeChart:  {dto.SubtypeLine, dto.SubtypeBar, dto.SubtypePie},
	dto.WidgetTypeMetric: {dto.SubtypeSingle},
	dto.WidgetTypeTable:  {dto.SubtypeData},
	dto.WidgetTypeText:   {dto.SubtypeMarkdown},
}

func validateSubtype(widgetType, subtype string) error {
	for _, s := range validSubtypes[widgetType] {
		if s == subtype {
			return nil
		}
	}
	return errs.NewValidationError("subtype " + subtype + " is not valid for widget type " + widgetType)
}
