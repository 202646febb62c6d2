package ports

import "context"

// ObjectURLs resolves download links for stored objects.
type ObjectURLs interface {
	URL(ctx context.Context, key string, public bool) (string, error)
	GetBucket() string
}
