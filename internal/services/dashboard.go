package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

// collectionStore is the persistence gateway for a user's dashboard
// collection. Load reports absence without error; Save replaces the whole
// stored snapshot.
type collectionStore interface {
	Load(ctx context.Context, uid string) (*models.DashboardCollection, bool, error)
	Save(ctx context.Context, uid string, c *models.DashboardCollection) error
}

type dashboardService struct {
	store collectionStore
}

func NewDashboardService(store collectionStore) *dashboardService {
	return &dashboardService{store: store}
}

// --- Public service methods ---

// GetCollection loads the user's dashboards, seeding the sample collection on
// first access, and applies the selection policy: the default dashboard if
// one is flagged, else the first. Current is nil for an empty collection;
// that is an explicit state, not an error.
func (s *dashboardService) GetCollection(ctx context.Context, uid string) (*models.DashboardCollection, *models.Dashboard, error) {
	c, found, err := s.store.Load(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		c = seedCollection(uid, time.Now())
		// First-access seed is persisted immediately.
		persistOptimistic(ctx, s.store, uid, c)
	}

	normalizeDateRanges(c, time.Now())

	current := c.Default()
	if current == nil && len(c.Dashboards) > 0 {
		current = c.Dashboards[0]
	}
	return c, current, nil
}

// CreateDashboard appends an empty, non-default dashboard and makes it the
// caller's current selection. The caller is expected to enter edit mode.
func (s *dashboardService) CreateDashboard(ctx context.Context, uid, email string) (*models.Dashboard, error) {
	c, _, err := s.GetCollection(ctx, uid)
	if err != nil {
		return nil, err
	}

	tenant := DeriveTenant(uid, email)
	now := time.Now()
	d := &models.Dashboard{
		DashboardID: "dashboard_" + uuid.New().String(),
		Name:        "New Dashboard",
		OwnerUserID: uid,
		TenantID:    tenant.TenantID,
		Widgets:     []models.Widget{},
		IsDefault:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := &models.DashboardCollection{
		Dashboards: append(append([]*models.Dashboard{}, c.Dashboards...), d),
	}
	persistOptimistic(ctx, s.store, uid, next)
	return d, nil
}

// SelectDashboard is a pure lookup. Callers are expected to only select ids
// they were handed, so an absent id fails loudly.
func (s *dashboardService) SelectDashboard(ctx context.Context, uid, dashboardID string) (*models.Dashboard, error) {
	c, _, err := s.GetCollection(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := c.Find(dashboardID)
	if d == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}
	return d, nil
}

// RenameDashboard applies the new name. A name that trims to empty is a
// user-input guard, not a failure: the dashboard is returned unchanged and
// nothing is written.
func (s *dashboardService) RenameDashboard(ctx context.Context, uid, dashboardID, name string) (*models.Dashboard, error) {
	c, _, err := s.GetCollection(ctx, uid)
	if err != nil {
		return nil, err
	}
	d := c.Find(dashboardID)
	if d == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}
	if strings.TrimSpace(name) == "" {
		return d, nil
	}

	renamed := cloneDashboard(d)
	renamed.Name = name
	renamed.UpdatedAt = time.Now()

	persistOptimistic(ctx, s.store, uid, replaceDashboard(c, renamed))
	return renamed, nil
}

// SetDefault flags the target dashboard and clears every other flag in one
// atomic collection replace; no intermediate state with zero or two defaults
// is ever observable.
func (s *dashboardService) SetDefault(ctx context.Context, uid, dashboardID string) (*models.DashboardCollection, error) {
	c, _, err := s.GetCollection(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c.Find(dashboardID) == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}

	next := &models.DashboardCollection{Dashboards: make([]*models.Dashboard, len(c.Dashboards))}
	for i, d := range c.Dashboards {
		nd := cloneDashboard(d)
		nd.IsDefault = d.DashboardID == dashboardID
		next.Dashboards[i] = nd
	}

	persistOptimistic(ctx, s.store, uid, next)
	return next, nil
}

// DeleteDashboard removes a dashboard from the collection. The capability is
// deliberately not routed at the HTTP boundary; only whole-collection
// destruction exists for end users today.
func (s *dashboardService) DeleteDashboard(ctx context.Context, uid, dashboardID string) (*models.DashboardCollection, error) {
	c, _, err := s.GetCollection(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c.Find(dashboardID) == nil {
		return nil, errs.NewNotFoundError("dashboard not found: " + dashboardID)
	}

	next := &models.DashboardCollection{}
	for _, d := range c.Dashboards {
		if d.DashboardID != dashboardID {
			next.Dashboards = append(next.Dashboards, d)
		}
	}

	persistOptimistic(ctx, s.store, uid, next)
	return next, nil
}

// --- Helpers ---

// persistOptimistic writes the snapshot and logs a failed write instead of
// surfacing it: the mutation stays applied in memory and the user proceeds
// with a degraded consistency guarantee. There is no retry.
func persistOptimistic(ctx context.Context, store collectionStore, uid string, c *models.DashboardCollection) {
	if err := store.Save(ctx, uid, c); err != nil {
		logger.FromContext(ctx).Error("failed to persist dashboard collection", "error", err)
	}
}

// cloneDashboard copies the dashboard and its widget slice so callers never
// mutate a previously returned value in place.
func cloneDashboard(d *models.Dashboard) *models.Dashboard {
	nd := *d
	nd.Widgets = append([]models.Widget{}, d.Widgets...)
	return &nd
}

// replaceDashboard builds a new collection with d swapped in by id.
func replaceDashboard(c *models.DashboardCollection, d *models.Dashboard) *models.DashboardCollection {
	next := &models.DashboardCollection{Dashboards: make([]*models.Dashboard, len(c.Dashboards))}
	for i, existing := range c.Dashboards {
		if existing.DashboardID == d.DashboardID {
			next.Dashboards[i] = d
		} else {
			next.Dashboards[i] = existing
		}
	}
	return next
}

// normalizeDateRanges recomputes preset-driven widget date ranges so stored
// From/To values never drift from the preset label.
func normalizeDateRanges(c *models.DashboardCollection, now time.Time) {
	for _, d := range c.Dashboards {
		for i := range d.Widgets {
			if d.Widgets[i].DateRange != nil {
				resolved := ResolveDateRange(*d.Widgets[i].DateRange, now)
				d.Widgets[i].DateRange = &resolved
			}
		}
	}
}

// seedCollection is the fixed sample a user gets on first access.
func seedCollection(uid string, now time.Time) *models.DashboardCollection {
	tenant := DeriveTenant(uid, "")
	return &models.DashboardCollection{
		Dashboards: []*models.Dashboard{
			{
				DashboardID: "dashboard_1",
				Name:        "Sales Overview",
				OwnerUserID: uid,
				TenantID:    tenant.TenantID,
				IsDefault:   true,
				CreatedAt:   now,
				UpdatedAt:   now,
				Widgets: []models.Widget{
					{
						WidgetID: "widget_1",
						Type:     dto.WidgetTypeMetric,
						Title:    "Total Revenue",
						Position: models.Position{X: 20, Y: 20, Width: 280, Height: 160},
						Config:   models.WidgetConfig{Subtype: dto.SubtypeSingle},
						Data: dto.MetricData{
							Value:  "$45,231",
							Change: "+12.5%",
							Trend:  dto.TrendUp,
							Label:  "Total Revenue",
							Period: "vs last month",
						},
					},
					{
						WidgetID: "widget_2",
						Type:     dto.WidgetTypeChart,
						Title:    "Monthly Sales",
						Position: models.Position{X: 320, Y: 20, Width: 400, Height: 300},
						Config:   models.WidgetConfig{Subtype: dto.SubtypeLine},
					},
					{
						WidgetID: "widget_3",
						Type:     dto.WidgetTypeMetric,
						Title:    "New Customers",
						Position: models.Position{X: 20, Y: 200, Width: 280, Height: 160},
						Config:   models.WidgetConfig{Subtype: dto.SubtypeSingle},
						Data: dto.MetricData{
							Value:  "1,234",
							Change: "+8.2%",
							Trend:  dto.TrendUp,
							Label:  "New Customers",
							Period: "this month",
						},
					},
					{
						WidgetID: "widget_4",
						Type:     dto.WidgetTypeTable,
						Title:    "Recent Orders",
						Position: models.Position{X: 740, Y: 20, Width: 360, Height: 300},
						Config:   models.WidgetConfig{Subtype: dto.SubtypeData},
					},
				},
			},
		},
	}
}
