package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Specs
	mux.Handle("GET /api/v1/specs", chain(http.HandlerFunc(h.ListSpecs)))
	mux.Handle("POST /api/v1/specs", chain(http.HandlerFunc(h.CreateSpec)))
	mux.Handle("GET /api/v1/specs/{id}", chain(http.HandlerFunc(h.GetSpec)))
	mux.Handle("PUT /api/v1/specs/{id}", chain(http.HandlerFunc(h.UpdateSpec)))
	mux.Handle("DELETE /api/v1/specs/{id}", chain(http.HandlerFunc(h.DeleteSpec)))
	mux.Handle("GET /api/v1/specs/{id}/versions", chain(http.HandlerFunc(h.ListSpecVersions)))

	// Versions
	mux.Handle("GET /api/v1/versions/{id}", chain(http.HandlerFunc(h.GetVersion)))
	mux.Handle("POST /api/v1/versions/{id}/fork", chain(http.HandlerFunc(h.ForkVersion)))
	mux.Handle("PUT /api/v1/versions/{id}/status", chain(http.HandlerFunc(h.SetVersionStatus)))

	// Graph
	mux.Handle("GET /api/v1/versions/{id}/graph", chain(http.HandlerFunc(h.GetGraph)))
	mux.Handle("PUT /api/v1/versions/{id}/graph", chain(http.HandlerFunc(h.SaveGraph)))
	mux.Handle("GET /api/v1/versions/{from}/diff/{to}", chain(http.HandlerFunc(h.DiffVersions)))
	mux.Handle("POST /api/v1/versions/{id}/import", chain(http.HandlerFunc(h.ImportGraph)))

	// Users
	mux.Handle("GET /api/v1/users", chain(http.HandlerFunc(h.ListUsers)))
	mux.Handle("POST /api/v1/users", chain(http.HandlerFunc(h.CreateUser)))
	mux.Handle("GET /api/v1/users/{id}", chain(http.HandlerFunc(h.GetUser)))
	mux.Handle("DELETE /api/v1/users/{id}", chain(http.HandlerFunc(h.DeleteUser)))
}
