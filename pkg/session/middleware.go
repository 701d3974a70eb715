package session

import "net/http"

// Factory builds the Manager for one request, typically over a CookieStore
// or ServerSideStore bound to w and r.
type Factory func(w http.ResponseWriter, r *http.Request) *Manager

// Middleware puts a request-scoped Manager into the request context.
func Middleware(factory Factory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := factory(w, r)
			next.ServeHTTP(w, r.WithContext(WithManager(r.Context(), m)))
		})
	}
}

// RequireSession rejects requests without a live session with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := ManagerFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if _, err := m.Current(r.Context()); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
