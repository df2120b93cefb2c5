package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/response"
	"github.com/GregMSThompson/dashboard-builder/internal/services"
)

type dataHandlers struct {
	ResponseHandler response.ResponseHandler
	RefreshBus      *services.RefreshBus
}

func NewDataHandlers(deps *Deps) *dataHandlers {
	return &dataHandlers{
		ResponseHandler: deps.ResponseHandler,
		RefreshBus:      deps.RefreshBus,
	}
}

func (h *dataHandlers) DataRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/types", h.GetWidgetTypes)
	r.Get("/data/{widgetType}", h.GetInitialData)
	return r
}

// GetInitialData returns a synchronous first payload so a freshly placed
// widget renders before its first refresh tick.
func (h *dataHandlers) GetInitialData(w http.ResponseWriter, r *http.Request) {
	widgetType := chi.URLParam(r, "widgetType")
	switch widgetType {
	case dto.WidgetTypeChart, dto.WidgetTypeMetric, dto.WidgetTypeTable, dto.WidgetTypeText:
	default:
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("unknown widget type: "+widgetType))
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.RefreshBus.InitialData(widgetType))
}

// GetWidgetTypes returns the hardcoded catalog of placeable widget kinds.
func (h *dataHandlers) GetWidgetTypes(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, widgetTypeCatalog)
}

type widgetTypeEntry struct {
	Type        string `json:"type"`
	Subtype     string `json:"subtype"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var widgetTypeCatalog = []widgetTypeEntry{
	{
		Type:        dto.WidgetTypeChart,
		Subtype:     dto.SubtypeLine,
		Name:        "Line Chart",
		Description: "Show trends over time",
		Category:    "Charts",
	},
	{
		Type:        dto.WidgetTypeChart,
		Subtype:     dto.SubtypeBar,
		Name:        "Bar Chart",
		Description: "Compare values across categories",
		Category:    "Charts",
	},
	{
		Type:        dto.WidgetTypeChart,
		Subtype:     dto.SubtypePie,
		Name:        "Pie Chart",
		Description: "Show proportions and percentages",
		Category:    "Charts",
	},
	{
		Type:        dto.WidgetTypeMetric,
		Subtype:     dto.SubtypeSingle,
		Name:        "Single Metric",
		Description: "Display key performance indicators",
		Category:    "Metrics",
	},
	{
		Type:        dto.WidgetTypeTable,
		Subtype:     dto.SubtypeData,
		Name:        "Data Table",
		Description: "Display structured data in rows",
		Category:    "Data",
	},
	{
		Type:        dto.WidgetTypeText,
		Subtype:     dto.SubtypeMarkdown,
		Name:        "Text Widget",
		Description: "Add notes, documentation, or content",
		Category:    "Content",
	},
}
