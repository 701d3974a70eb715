package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/blog"
	"github.com/dmitrymomot/inkhive/pkg/clientip"
	"github.com/dmitrymomot/inkhive/pkg/environment"
	"github.com/dmitrymomot/inkhive/pkg/logger"
	"github.com/dmitrymomot/inkhive/pkg/ratelimiter"
	"github.com/dmitrymomot/inkhive/pkg/requestid"
	"github.com/dmitrymomot/inkhive/pkg/session"
)

// API is the part of the blog API the gateway relays to.
type API interface {
	Register(ctx context.Context, in blog.Registration) (*blog.User, error)
	ListCategories(ctx context.Context, opts apiclient.ListOptions) (*blog.CategoryList, error)
	CreateCategory(ctx context.Context, in blog.CategoryInput) (*blog.Category, error)
	UpdateCategory(ctx context.Context, id blog.ID, in blog.CategoryInput) (*blog.Category, error)
	DeleteCategory(ctx context.Context, id blog.ID) error
	ListPosts(ctx context.Context, opts apiclient.ListOptions) (*blog.PostList, error)
	GetPost(ctx context.Context, id blog.ID) (*blog.Post, error)
	CreatePost(ctx context.Context, in blog.PostInput) (*blog.Post, error)
	UpdatePost(ctx context.Context, id blog.ID, in blog.PostInput) (*blog.Post, error)
	DeletePost(ctx context.Context, id blog.ID) error
	CreateComment(ctx context.Context, postID blog.ID, in blog.CommentInput) (*blog.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID blog.ID, in blog.CommentInput) (*blog.Comment, error)
	DeleteComment(ctx context.Context, commentID blog.ID) error
	Healthz(ctx context.Context) error
}

// Check is a named readiness probe.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Gateway is the JSON backend-for-frontend in front of the blog API. Each
// request gets its own session.Manager; the API client is shared and reads
// the token through session.ContextTokens.
type Gateway struct {
	api      API
	sessions session.Factory
	env      environment.Environment
	logger   *slog.Logger
	checks   []Check

	trustProxy   bool
	loginLimiter *ratelimiter.Bucket
}

type Option func(*Gateway)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l.With(logger.Component("gateway"))
		}
	}
}

// WithEnvironment sets the deployment environment attached to each request
// context. Defaults to environment.Local.
func WithEnvironment(env environment.Environment) Option {
	return func(g *Gateway) { g.env = env }
}

// WithReadinessCheck adds a probe to /readyz. The upstream API is always
// probed.
func WithReadinessCheck(name string, probe func(context.Context) error) Option {
	return func(g *Gateway) {
		g.checks = append(g.checks, Check{Name: name, Probe: probe})
	}
}

// WithTrustProxy makes client IP resolution honour proxy headers. Enable it
// only behind a proxy that overwrites them.
func WithTrustProxy(trust bool) Option {
	return func(g *Gateway) { g.trustProxy = trust }
}

// WithLoginLimiter throttles login attempts per client IP.
func WithLoginLimiter(b *ratelimiter.Bucket) Option {
	return func(g *Gateway) { g.loginLimiter = b }
}

// New returns a Gateway that forwards to api and keeps per-client sessions
// built by sessions. The api health check is always part of /readyz.
func New(api API, sessions session.Factory, opts ...Option) *Gateway {
	g := &Gateway{
		api:      api,
		sessions: sessions,
		env:      environment.Local,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.checks = append([]Check{{Name: "api", Probe: api.Healthz}}, g.checks...)
	return g
}

// Router returns the gateway routes with their middleware stack.
func (g *Gateway) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(g.trustProxy))
	r.Use(environment.Middleware(g.env))
	r.Use(g.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", g.liveness)
	r.Get("/readyz", g.readiness)

	r.Route("/api", func(api chi.Router) {
		api.Use(session.Middleware(g.sessions))

		api.Route("/auth", func(auth chi.Router) {
			auth.With(g.throttleLogin).Post("/login", g.login)
			auth.Post("/logout", g.logout)
			auth.Get("/session", g.currentSession)
			auth.Post("/register", g.register)
		})

		api.Get("/home", g.home)

		api.Route("/categories", func(c chi.Router) {
			c.Get("/", g.listCategories)
			c.Post("/", g.createCategory)
			c.Put("/{id}", g.updateCategory)
			c.Delete("/{id}", g.deleteCategory)
		})

		api.Route("/posts", func(p chi.Router) {
			p.Get("/", g.listPosts)
			p.Post("/", g.createPost)
			p.Get("/{id}", g.getPost)
			p.Put("/{id}", g.updatePost)
			p.Delete("/{id}", g.deletePost)
			p.Post("/{id}/comments", g.createComment)
			p.Put("/{id}/comments/{commentID}", g.updateComment)
		})

		api.Delete("/comments/{commentID}", g.deleteComment)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Response{Error: &ErrorDetail{Code: "not_found", Message: "route not found"}})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: &ErrorDetail{Code: "method_not_allowed", Message: "method not allowed"}})
	})

	return r
}

func (g *Gateway) throttleLogin(next http.Handler) http.Handler {
	if g.loginLimiter == nil {
		return next
	}
	key := func(r *http.Request) string {
		if ip := clientip.FromContext(r.Context()); ip != "" {
			return "login:" + ip
		}
		return ""
	}
	denied := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.logger.WarnContext(r.Context(), "login throttled")
		writeJSON(w, http.StatusTooManyRequests, Response{
			Error: &ErrorDetail{Code: CodeRateLimited, Message: "too many login attempts, try again later"},
		})
	})
	return ratelimiter.Middleware(g.loginLimiter, key, denied)(next)
}

func (g *Gateway) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		g.logger.InfoContext(r.Context(), "request",
			logger.HTTPRequest(r.Method, r.URL.Path, status),
			logger.Duration(time.Since(start)),
		)
	})
}

func (g *Gateway) liveness(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

func (g *Gateway) readiness(w http.ResponseWriter, r *http.Request) {
	results := make(map[string]string, len(g.checks))
	ready := true
	for _, c := range g.checks {
		if err := c.Probe(r.Context()); err != nil {
			g.logger.WarnContext(r.Context(), "readiness check failed", slog.String("check", c.Name), logger.Error(err))
			results[c.Name] = "fail"
			ready = false
			continue
		}
		results[c.Name] = "ok"
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Data:  results,
			Error: &ErrorDetail{Code: CodeNotReady, Message: "dependencies are not ready"},
		})
		return
	}
	writeData(w, http.StatusOK, results, nil)
}
