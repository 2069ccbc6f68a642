// Package httpapi exposes the edit-block engine and the incremental
// markdown renderer over HTTP: POST /v1/batches applies a model response to
// a project directory, and GET /v1/render/stream reconciles streaming
// markdown prefixes over a websocket. pkg/editcore and pkg/render never
// import it.
package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/chainlaunch/editcore/docs"
	"github.com/chainlaunch/editcore/pkg/editcore/project"
	"github.com/chainlaunch/editcore/pkg/history"
	"github.com/chainlaunch/editcore/pkg/http/response"
	"github.com/chainlaunch/editcore/pkg/logger"
	"github.com/chainlaunch/editcore/pkg/render/ids"
	"github.com/chainlaunch/editcore/pkg/render/markdown"
	"github.com/chainlaunch/editcore/pkg/render/reconcile"
)

// Handler bundles the engine's HTTP surface and its service dependencies.
type Handler struct {
	Log     *logger.Logger
	History *history.Store // optional; nil disables batch persistence
	Stager  project.GitStager

	validate    *validator.Validate
	md          *markdown.Markdown
	idCounter   *ids.Counter
	broadcaster *reconcile.Broadcaster
}

// NewHandler constructs a Handler, wiring its own goldmark instance and
// websocket broadcaster. The Broadcaster exists before any websocket
// connection does; connections register onto it as they arrive.
func NewHandler(log *logger.Logger, store *history.Store, stager project.GitStager) *Handler {
	return &Handler{
		Log:         log,
		History:     store,
		Stager:      stager,
		validate:    validator.New(),
		md:          markdown.New(),
		idCounter:   ids.NewCounter(),
		broadcaster: reconcile.NewBroadcaster(log),
	}
}

// NewRouter builds the chi.Mux serving h's routes, with CORS and request
// logging middleware plus a mounted swagger UI.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	h.RegisterRoutes(r)

	return r
}

// RegisterRoutes mounts the engine's v1 API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/batches", response.Middleware(h.PostBatch))
		r.Get("/batches", response.Middleware(h.ListBatches))
		r.Get("/render/stream", h.RenderStream)
	})
}
