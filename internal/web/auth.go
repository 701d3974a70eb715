package web

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/inkhive/pkg/blog"
	"github.com/dmitrymomot/inkhive/pkg/session"
)

type sessionView struct {
	User      blog.User `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{User: s.User, ExpiresAt: s.ExpiresAt}
}

func (g *Gateway) manager(r *http.Request) (*session.Manager, error) {
	m, ok := session.ManagerFromContext(r.Context())
	if !ok {
		return nil, session.ErrNoManager
	}
	return m, nil
}

func (g *Gateway) login(w http.ResponseWriter, r *http.Request) {
	var creds blog.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		g.writeError(w, r, err)
		return
	}

	m, err := g.manager(r)
	if err != nil {
		g.writeError(w, r, err)
		return
	}

	sess, err := m.Authenticate(r.Context(), creds)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewOf(sess), nil)
}

func (g *Gateway) logout(w http.ResponseWriter, r *http.Request) {
	m, err := g.manager(r)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	if err := m.End(r.Context()); err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusNoContent, nil, nil)
}

func (g *Gateway) currentSession(w http.ResponseWriter, r *http.Request) {
	m, err := g.manager(r)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	sess, err := m.Current(r.Context())
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, viewOf(sess), nil)
}

func (g *Gateway) register(w http.ResponseWriter, r *http.Request) {
	var in blog.Registration
	if err := decodeJSON(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	user, err := g.api.Register(r.Context(), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, user, nil)
}
