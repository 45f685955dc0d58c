// Package context carries the authenticated username through HTTP request
// contexts.
package context

import "context"

type usernameKey struct{}

// Manager stores the username as a request context value.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUsernameToContext returns a copy of ctx that carries username.
func (m *Manager) SetUsernameToContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// GetUsernameFromContext reports the username stored by SetUsernameToContext.
func (m *Manager) GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey{}).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
