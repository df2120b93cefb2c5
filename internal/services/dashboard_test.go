package services

import (
	"context"
	"testing"
	"time"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/pkg/helpers"
)

// --- Fakes ---

type fakeCollectionStore struct {
	collection *models.DashboardCollection
	found      bool
	loadErr    error
	saveErr    error
	saves      int
	lastSaved  *models.DashboardCollection
}

func (f *fakeCollectionStore) Load(_ context.Context, _ string) (*models.DashboardCollection, bool, error) {
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	return f.collection, f.found, nil
}

func (f *fakeCollectionStore) Save(_ context.Context, _ string, c *models.DashboardCollection) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.lastSaved = c
	f.collection = c
	f.found = true
	return nil
}

func storeWith(dashboards ...*models.Dashboard) *fakeCollectionStore {
	return &fakeCollectionStore{
		collection: &models.DashboardCollection{Dashboards: dashboards},
		found:      true,
	}
}

func dash(id, name string, isDefault bool) *models.Dashboard {
	now := time.Now()
	return &models.Dashboard{
		DashboardID: id,
		Name:        name,
		OwnerUserID: "u1",
		TenantID:    "tenant_u1",
		Widgets:     []models.Widget{},
		IsDefault:   isDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func countDefaults(c *models.DashboardCollection) int {
	n := 0
	for _, d := range c.Dashboards {
		if d.IsDefault {
			n++
		}
	}
	return n
}

// --- Tests ---

func TestGetCollection_SeedsOnFirstAccess(t *testing.T) {
	store := &fakeCollectionStore{found: false}
	svc := NewDashboardService(store)

	c, current, err := svc.GetCollection(helpers.TestCtx(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Dashboards) != 1 {
		t.Fatalf("expected 1 seeded dashboard, got %d", len(c.Dashboards))
	}
	seeded := c.Dashboards[0]
	if seeded.Name != "Sales Overview" {
		t.Errorf("seed name = %q", seeded.Name)
	}
	if !seeded.IsDefault {
		t.Error("seed dashboard should be default")
	}
	if len(seeded.Widgets) != 4 {
		t.Errorf("seed widget count = %d, want 4", len(seeded.Widgets))
	}
	if current == nil || current.DashboardID != seeded.DashboardID {
		t.Error("current should be the seeded dashboard")
	}
	if store.saves != 1 {
		t.Errorf("seed should be persisted immediately, saves = %d", store.saves)
	}
}

func TestGetCollection_SelectionPolicy(t *testing.T) {
	store := storeWith(dash("d1", "First", false), dash("d2", "Second", true))
	svc := NewDashboardService(store)

	_, current, err := svc.GetCollection(helpers.TestCtx(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.DashboardID != "d2" {
		t.Errorf("current = %q, want the default dashboard", current.DashboardID)
	}
}

func TestGetCollection_NoDefaultFallsBackToFirst(t *testing.T) {
	store := storeWith(dash("d1", "First", false), dash("d2", "Second", false))
	svc := NewDashboardService(store)

	_, current, _ := svc.GetCollection(helpers.TestCtx(), "u1")
	if current.DashboardID != "d1" {
		t.Errorf("current = %q, want first dashboard", current.DashboardID)
	}
}

func TestGetCollection_EmptyCollection(t *testing.T) {
	store := storeWith()
	svc := NewDashboardService(store)

	_, current, err := svc.GetCollection(helpers.TestCtx(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current != nil {
		t.Error("empty collection should have no current dashboard")
	}
}

func TestCreateDashboard(t *testing.T) {
	store := storeWith(dash("d1", "Existing", true))
	svc := NewDashboardService(store)

	d, err := svc.CreateDashboard(helpers.TestCtx(), "u1", "pat@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "New Dashboard" {
		t.Errorf("name = %q", d.Name)
	}
	if d.IsDefault {
		t.Error("new dashboard must not be default")
	}
	if len(d.Widgets) != 0 {
		t.Errorf("new dashboard has %d widgets, want 0", len(d.Widgets))
	}
	if d.TenantID != "tenant_u1" {
		t.Errorf("tenantId = %q", d.TenantID)
	}
	if len(store.lastSaved.Dashboards) != 2 {
		t.Errorf("saved collection has %d dashboards, want 2", len(store.lastSaved.Dashboards))
	}
	if store.lastSaved.Dashboards[1].DashboardID != d.DashboardID {
		t.Error("new dashboard should be appended last")
	}
}

func TestSelectDashboard_NotFound(t *testing.T) {
	store := storeWith(dash("d1", "Only", true))
	svc := NewDashboardService(store)

	_, err := svc.SelectDashboard(helpers.TestCtx(), "u1", "missing")
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRenameDashboard(t *testing.T) {
	store := storeWith(dash("d1", "Old Name", true))
	svc := NewDashboardService(store)

	d, err := svc.RenameDashboard(helpers.TestCtx(), "u1", "d1", "Quarterly KPIs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Quarterly KPIs" {
		t.Errorf("name = %q", d.Name)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestRenameDashboard_EmptyNameIsSilentNoop(t *testing.T) {
	store := storeWith(dash("d1", "Keep Me", true))
	svc := NewDashboardService(store)

	d, err := svc.RenameDashboard(helpers.TestCtx(), "u1", "d1", "   ")
	if err != nil {
		t.Fatalf("empty name must not error: %v", err)
	}
	if d.Name != "Keep Me" {
		t.Errorf("name = %q, want unchanged", d.Name)
	}
	if store.saves != 0 {
		t.Errorf("empty rename must not persist, saves = %d", store.saves)
	}
}

func TestSetDefault_ExactlyOneDefault(t *testing.T) {
	store := storeWith(dash("d1", "A", true), dash("d2", "B", false), dash("d3", "C", false))
	svc := NewDashboardService(store)
	ctx := helpers.TestCtx()

	for _, target := range []string{"d2", "d3", "d2", "d1"} {
		c, err := svc.SetDefault(ctx, "u1", target)
		if err != nil {
			t.Fatalf("SetDefault(%s): %v", target, err)
		}
		if n := countDefaults(c); n != 1 {
			t.Fatalf("after SetDefault(%s): %d defaults, want exactly 1", target, n)
		}
		if !c.Find(target).IsDefault {
			t.Fatalf("after SetDefault(%s): target not default", target)
		}
	}
}

func TestSetDefault_ReplacesNotMutates(t *testing.T) {
	original := dash("d1", "A", true)
	store := storeWith(original, dash("d2", "B", false))
	svc := NewDashboardService(store)

	c, err := svc.SetDefault(helpers.TestCtx(), "u1", "d2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !original.IsDefault {
		t.Error("previously returned dashboard was mutated in place")
	}
	if c.Find("d1") == original {
		t.Error("collection should hold a replacement, not the original pointer")
	}
}

func TestSetDefault_NotFound(t *testing.T) {
	store := storeWith(dash("d1", "A", true))
	svc := NewDashboardService(store)

	_, err := svc.SetDefault(helpers.TestCtx(), "u1", "missing")
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRename_SaveFailureIsOptimistic(t *testing.T) {
	store := storeWith(dash("d1", "Old", true))
	store.saveErr = errs.NewDatabaseError("save", "quota exceeded", nil)
	svc := NewDashboardService(store)

	d, err := svc.RenameDashboard(helpers.TestCtx(), "u1", "d1", "New")
	if err != nil {
		t.Fatalf("save failure must not surface: %v", err)
	}
	if d.Name != "New" {
		t.Errorf("in-memory mutation should survive a failed write, name = %q", d.Name)
	}
}

// Full first-session flow: bootstrap, create a second dashboard, promote it.
func TestFirstSessionScenario(t *testing.T) {
	store := &fakeCollectionStore{found: false}
	svc := NewDashboardService(store)
	ctx := helpers.TestCtx()

	c, current, err := svc.GetCollection(ctx, "u1")
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if current == nil || current.Name != "Sales Overview" || !current.IsDefault {
		t.Fatalf("bootstrap current = %+v", current)
	}
	oldID := current.DashboardID

	created, err := svc.CreateDashboard(ctx, "u1", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	c, _, _ = svc.GetCollection(ctx, "u1")
	if len(c.Dashboards) != 2 {
		t.Fatalf("collection length = %d, want 2", len(c.Dashboards))
	}
	if created.IsDefault {
		t.Error("created dashboard must not be default")
	}

	c, err = svc.SetDefault(ctx, "u1", created.DashboardID)
	if err != nil {
		t.Fatalf("setDefault: %v", err)
	}
	if c.Find(oldID).IsDefault {
		t.Error("old dashboard should have lost the default flag")
	}
	if !c.Find(created.DashboardID).IsDefault {
		t.Error("new dashboard should be default")
	}
}
