package loaders

import "context"

// Loader fetches raw input documents.
type Loader interface {
	Load(ctx context.Context) (doc []byte, contentType string, err error)
}
