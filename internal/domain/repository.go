package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// JobSource retrieves job postings for a search query
type JobSource interface {
	SearchJobs(ctx context.Context, query string) ([]JobPosting, error)
}

// TextExtractor turns an uploaded document into plain text.
// Implementations return "" when the document cannot be read.
type TextExtractor interface {
	Extract(filename string, data []byte) string
	Allowed(filename string) bool
}
