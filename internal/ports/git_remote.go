package ports

import "context"

// RemoteReader resolves the origin remote URL of a local git checkout.
// An empty string (with nil error) means the remote is undetectable.
type RemoteReader interface {
	OriginURL(ctx context.Context, dir string) (string, error)
}
