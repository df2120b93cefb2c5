package dto

import (
	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

// Widget type constants
const (
	WidgetTypeChart  = "chart"
	WidgetTypeMetric = "metric"
	WidgetTypeTable  = "table"
	WidgetTypeText   = "text"
)

// Widget subtype constants
const (
	SubtypeLine     = "line"
	SubtypeBar      = "bar"
	SubtypePie      = "pie"
	SubtypeSingle   = "single"
	SubtypeData     = "data"
	SubtypeMarkdown = "markdown"
)

// Date range presets
const (
	DateRangeLast7d  = "last_7d"
	DateRangeLast14d = "last_14d"
	DateRangeLast30d = "last_30d"
	DateRangeLast90d = "last_90d"
	DateRangeCustom  = "custom"
)

// Trend values for metric payloads
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// --- Request types ---

type CreateWidgetRequest struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// UpdateWidgetRequest is a shallow partial: nil fields are left alone, set
// fields fully replace the widget's value (position and config are never
// deep-merged).
type UpdateWidgetRequest struct {
	Title     *string              `json:"title,omitempty"`
	Position  *models.Position     `json:"position,omitempty"`
	Config    *models.WidgetConfig `json:"config,omitempty"`
	Data      any                  `json:"data,omitempty"`
	DateRange *models.DateRange    `json:"dateRange,omitempty"`
}

// MoveWidgetRequest carries the accumulated pointer delta of a finished drag.
type MoveWidgetRequest struct {
	DeltaX int `json:"deltaX"`
	DeltaY int `json:"deltaY"`
}

// ResizeWidgetRequest carries a single pointer-move delta of an active resize.
type ResizeWidgetRequest struct {
	DeltaX int `json:"deltaX"`
	DeltaY int `json:"deltaY"`
}

type RenameDashboardRequest struct {
	Name string `json:"name"`
}

// --- Response types ---

// CollectionResponse is the load-time view: every dashboard the user owns,
// the derived tenant, and the selection policy's pick. CurrentID is empty
// when the collection is empty; the client must offer a create affordance.
type CollectionResponse struct {
	Tenant     models.Tenant       `json:"tenant"`
	Dashboards []*models.Dashboard `json:"dashboards"`
	CurrentID  string              `json:"currentId"`
}

// CreateDashboardResponse flags that the client should enter edit mode for
// the newly created (and now current) dashboard.
type CreateDashboardResponse struct {
	Dashboard    *models.Dashboard `json:"dashboard"`
	StartEditing bool              `json:"startEditing"`
}

// --- Synthetic widget data payloads ---

// MetricData is the refresh payload for metric widgets.
type MetricData struct {
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
	Label  string `json:"label"`
	Period string `json:"period"`
}

// ChartPoint is one sample of a chart series.
type ChartPoint struct {
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Revenue int    `json:"revenue"`
}

// TableRow is one row of a table widget's data set.
type TableRow struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Status  string `json:"status"`
	Revenue string `json:"revenue"`
}

// RefreshFrame is one fan-out delivery pushed over the live stream.
type RefreshFrame struct {
	WidgetID string `json:"widgetId"`
	Data     any    `json:"data"`
}
