package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const localeContextKey contextKey = "httpapi.locale"

// LocaleFromContext returns the locale negotiated for the request, or the
// empty string when no locale middleware ran.
func LocaleFromContext(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey).(string)
	return locale
}

// localeMiddleware reads the locale path segment and stores the effective
// locale on the request context. The segment is matched case-insensitively,
// the same normalization the translation bundle applies to its locale keys.
// Unknown locales are a no-op: the request proceeds under the default locale
// rather than failing.
func localeMiddleware(known func(locale string) bool, defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "locale")))
			if locale == "" || !known(locale) {
				locale = defaultLocale
			}
			ctx := context.WithValue(r.Context(), localeContextKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
