package handler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/fhsmendes/weather-widget/view"
	"github.com/fhsmendes/weather-widget/widget"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

// WidgetHandler serves one widget over HTTP.
type WidgetHandler struct {
	Controller *widget.Controller
	Renderer   *view.Renderer
	// AssetsDir, when set, is served under /assets/.
	AssetsDir string
}

func (h *WidgetHandler) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.Index)
	r.Post("/search", h.Search)
	r.Post("/clear", h.Clear)
	r.Get("/api/weather", h.State)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	if h.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(h.AssetsDir))))
	}
	return r
}

func (h *WidgetHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.HTML(w, h.Controller.Snapshot()); err != nil {
		log.Println("error rendering widget:", err)
	}
}

// Search reads the city form field and runs a lookup. Lookup failures are a
// display state, so the response is never an error status.
func (h *WidgetHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	h.respond(w, r, h.search(r, r.FormValue("city")))
}

func (h *WidgetHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Controller.Clear())
}

// State returns the snapshot as JSON, searching first when a city query parameter is given.
func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	snapshot := h.Controller.Snapshot()
	if city := r.URL.Query().Get("city"); city != "" {
		snapshot = h.search(r, city)
	}
	writeJSON(w, snapshot)
}

// search runs a lookup on behalf of r. The lookup outlives the request: a
// client that disconnects does not turn the lookup into a failure.
func (h *WidgetHandler) search(r *http.Request, city string) widget.Snapshot {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer("weather-widget").Start(context.WithoutCancel(ctx), "widget.search")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))
	snapshot := h.Controller.Search(ctx, city)
	span.SetAttributes(attribute.String("widget.status", widget.Status(snapshot.State)))
	return snapshot
}

func (h *WidgetHandler) respond(w http.ResponseWriter, r *http.Request, snapshot widget.Snapshot) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, snapshot)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, snapshot widget.Snapshot) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Println("error encoding snapshot:", err)
	}
}
