package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"canteen/internal/handlers/api"
	"canteen/internal/searchlog"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(session *searchlog.Session, gatherer prometheus.Gatherer) {
	// Initialize handlers
	searchHandler := api.NewSearchHandler(session, s.Cfg)
	termHandler := api.NewTermHandler(session)

	s.App.Get("/healthz", api.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Search logging
	s.App.Get("/search", searchHandler.Search)
	s.App.Post("/api/searches", searchHandler.Log)

	// Search log reporting
	s.App.Get("/api/search-terms", termHandler.List)
	s.App.Get("/api/search-terms/suggest", searchHandler.Suggest)
	s.App.Get("/api/search-terms/export", termHandler.Export)
}
