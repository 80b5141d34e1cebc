package app

import (
	"context"

	"github.com/CrestNiraj12/cardfeed/domain"
)

// PostSource fetches pages of posts from a remote content API.
type PostSource interface {
	// FetchPage returns one page of posts in server order (newest first).
	// page and pageSize are 1-based and must be at least 1. Failures are
	// returned as *domain.FetchError and are not retried.
	FetchPage(ctx context.Context, page, pageSize int) ([]domain.Post, error)
}

// CategoryFilter is implemented by sources that can be narrowed to a
// single category. A category of 0 means all posts.
type CategoryFilter interface {
	ForCategory(category int) PostSource
}
