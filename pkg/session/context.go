package session

import "context"

type managerContextKey struct{}

// WithManager stores m in ctx.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerContextKey{}, m)
}

func ManagerFromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(managerContextKey{}).(*Manager)
	return m, ok && m != nil
}

// ContextTokens resolves the access token through the Manager stored in the
// context. It lets one shared API client serve many request-scoped sessions.
type ContextTokens struct{}

func (ContextTokens) AccessToken(ctx context.Context) (string, bool) {
	m, ok := ManagerFromContext(ctx)
	if !ok {
		return "", false
	}
	return m.AccessToken(ctx)
}
