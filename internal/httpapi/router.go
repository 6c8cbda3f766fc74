package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the public route surface. Both the bare routes and
// the locale-prefixed routes are served; the locale segment falls back to
// the default locale when it names a language the bundle does not carry.
func NewRouter(handler *Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	known := func(locale string) bool {
		for _, available := range handler.translations.Available() {
			if strings.EqualFold(available, locale) {
				return true
			}
		}
		return false
	}
	withLocale := localeMiddleware(known, handler.translations.DefaultLocale())

	router.Group(func(r chi.Router) {
		r.Use(withLocale)
		r.Get("/products", handler.ListProducts)
		r.Get("/products/{slug}", handler.GetProduct)
		r.Get("/{locale}/products", handler.ListProducts)
		r.Get("/{locale}/products/{slug}", handler.GetProduct)
	})

	return router
}
