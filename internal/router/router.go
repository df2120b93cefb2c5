package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/dashboard-builder/internal/handlers"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(middleware.NewMiddleware(deps.Firebase).FirebaseAuth)

	dh := handlers.NewDashboardHandlers(deps)
	wh := handlers.NewWidgetHandlers(deps)
	dah := handlers.NewDataHandlers(deps)
	sh := handlers.NewStreamHandlers(deps)

	dr := dh.DashboardRoutes()
	dr.Mount("/{dashboardId}/widgets", wh.WidgetRoutes())
	r.Mount("/dashboards", dr)
	r.Mount("/widgets", dah.DataRoutes())
	r.Get("/live", sh.HandleLive)
	return r
}
