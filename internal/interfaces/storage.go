package interfaces

import "context"

// Storage is path-addressable blob storage split into named buckets.
type Storage interface {
	// Upload stores b under path and returns the stored path.
	Upload(ctx context.Context, bucket, path string, b []byte, contentType string) (string, error)
	Remove(ctx context.Context, bucket string, paths ...string) error
	// SignedURL returns a time-limited download URL for path.
	SignedURL(ctx context.Context, bucket, path string) (string, error)
}
