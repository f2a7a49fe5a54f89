// Package api serves the site content as JSON.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/techcorp/app/routes"
	"github.com/vango-dev/techcorp/internal/errors"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

// Health is the body of GET /api/health.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// List wraps a listing together with its size and applied filters.
type List[T any] struct {
	Items   []T               `json:"items"`
	Total   int               `json:"total"`
	Filters map[string]string `json:"filters,omitempty"`
}

// Handler serves the JSON API.
type Handler struct {
	catalog *catalog.Catalog
	version string
	started time.Time
}

// New returns a Handler for c.
func New(c *catalog.Catalog, version string) *Handler {
	return &Handler{catalog: c, version: version, started: time.Now()}
}

// Routes mounts the API under the returned router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.health)
	r.Get("/products", h.products)
	r.Get("/products/{id}", h.product)
	r.Get("/downloads", h.downloads)
	r.Get("/videos", h.videos)
	r.Get("/faqs", h.faqs)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("T404").WithDetail("No API route for "+r.URL.Path+"."))
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	category := filter(r, "category")
	items := h.catalog.ProductsByCategory(category)
	writeJSON(w, http.StatusOK, List[catalog.Product]{
		Items:   items,
		Total:   len(items),
		Filters: map[string]string{"category": category},
	})
}

func (h *Handler) product(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err == nil {
		for _, p := range h.catalog.Products {
			if p.ID == id {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, errors.New("T404").WithDetail("No product with id "+chi.URLParam(r, "id")+"."))
}

func (h *Handler) downloads(w http.ResponseWriter, r *http.Request) {
	category, platform := filter(r, "category"), filter(r, "platform")
	items := h.catalog.DownloadsBy(category, platform)
	items = routes.SearchDownloads(items, r.URL.Query().Get("q"))
	items = routes.SortDownloads(items, r.URL.Query().Get("sort"))
	writeJSON(w, http.StatusOK, List[catalog.Download]{
		Items:   items,
		Total:   len(items),
		Filters: map[string]string{"category": category, "platform": platform},
	})
}

func (h *Handler) videos(w http.ResponseWriter, r *http.Request) {
	category := filter(r, "category")
	items := routes.SortVideos(h.catalog.VideosByCategory(category), r.URL.Query().Get("sort"))
	writeJSON(w, http.StatusOK, List[catalog.Video]{
		Items:   items,
		Total:   len(items),
		Filters: map[string]string{"category": category},
	})
}

func (h *Handler) faqs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	items := h.catalog.SearchFAQs(q)
	list := List[catalog.FAQ]{Items: items, Total: len(items)}
	if q != "" {
		list.Filters = map[string]string{"q": q}
	}
	writeJSON(w, http.StatusOK, list)
}

// filter returns the query value for key, or catalog.All when absent.
func filter(r *http.Request, key string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return catalog.All
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.CodedError) {
	writeJSON(w, status, map[string]any{"error": err})
}
