package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/covid-tracker/internal/handlers"
	"github.com/GregMSThompson/covid-tracker/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	auth := middleware.NewMiddleware(deps.Firebase)
	ch := handlers.NewCovidHandlers(deps)
	vh := handlers.NewViewHandlers(deps)

	r.Mount("/covid", ch.CovidRoutes(auth.FirebaseAuth))
	r.Group(func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Mount("/views", vh.ViewRoutes())
	})
	return r
}
