package models

import "time"

// Tenant is the per-user organization scope. It is derived from the
// authenticated identity on every request and never persisted on its own.
type Tenant struct {
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	OwnerUserID string `json:"ownerUserId"`
}

// Position places a widget on the unbounded pixel canvas.
type Position struct {
	X      int `firestore:"x" json:"x"`
	Y      int `firestore:"y" json:"y"`
	Width  int `firestore:"width" json:"width"`
	Height int `firestore:"height" json:"height"`
}

// DateRange is an explicit or preset-driven time window. For any preset other
// than "custom", From/To are recomputed from the preset and the current time
// on read; the stored values are not trusted.
type DateRange struct {
	From   time.Time `firestore:"from" json:"from"`
	To     time.Time `firestore:"to" json:"to"`
	Preset string    `firestore:"preset,omitempty" json:"preset,omitempty"`
}

// WidgetConfig holds the creation-time subtype plus open attributes the
// renderer may attach (thresholds, colors, markdown body, ...).
type WidgetConfig struct {
	Subtype string         `firestore:"subtype" json:"subtype"`
	Options map[string]any `firestore:"options,omitempty" json:"options,omitempty"`
}

// Widget is a positioned, typed visual unit owned by exactly one dashboard.
// Type is immutable after creation.
type Widget struct {
	WidgetID  string     `firestore:"widgetId" json:"widgetId"`
	Type      string     `firestore:"type" json:"type"`
	Title     string     `firestore:"title" json:"title"`
	Position  Position   `firestore:"position" json:"position"`
	Config    WidgetConfig `firestore:"config" json:"config"`
	Data      any        `firestore:"data,omitempty" json:"data,omitempty"`
	DateRange *DateRange `firestore:"dateRange,omitempty" json:"dateRange,omitempty"`
}

// Dashboard is a named, owned widget collection. Widget order is z-order.
// At most one dashboard per user carries IsDefault.
type Dashboard struct {
	DashboardID string    `firestore:"dashboardId" json:"dashboardId"`
	Name        string    `firestore:"name" json:"name"`
	OwnerUserID string    `firestore:"ownerUserId" json:"ownerUserId"`
	TenantID    string    `firestore:"tenantId" json:"tenantId"`
	Widgets     []Widget  `firestore:"widgets" json:"widgets"`
	IsDefault   bool      `firestore:"isDefault" json:"isDefault"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// DashboardCollection is the unit of persistence: every save replaces the
// user's whole collection so readers never observe a half-applied mutation.
type DashboardCollection struct {
	Dashboards []*Dashboard `firestore:"dashboards" json:"dashboards"`
}

// Find returns the dashboard with the given id, or nil.
func (c *DashboardCollection) Find(dashboardID string) *Dashboard {
	for _, d := range c.Dashboards {
		if d.DashboardID == dashboardID {
			return d
		}
	}
	return nil
}

// Default returns the dashboard flagged as default, or nil.
func (c *DashboardCollection) Default() *Dashboard {
	for _, d := range c.Dashboards {
		if d.IsDefault {
			return d
		}
	}
	return nil
}
