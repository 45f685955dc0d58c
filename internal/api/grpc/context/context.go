package context

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// usernameKey is the incoming metadata key that carries the authenticated
// username from the auth interceptor to the handlers.
const usernameKey = "x-gradebook-username"

// Manager keeps the authenticated username in gRPC incoming metadata.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUsernameToContext returns a context whose incoming metadata carries
// username, replacing any value the client may have sent under the same key.
func (m *Manager) SetUsernameToContext(ctx context.Context, username string) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	md.Set(usernameKey, username)

	return metadata.NewIncomingContext(ctx, md)
}

// GetUsernameFromContext reads the username set by SetUsernameToContext.
func (m *Manager) GetUsernameFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}

	values := md.Get(usernameKey)
	if len(values) == 0 || values[0] == "" {
		return "", false
	}

	return values[0], true
}
