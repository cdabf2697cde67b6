// Copyright (c) 2026 Inkwell. All rights reserved.

package posts

import "context"

// Repository defines the data access contract for blog posts.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Post, int, error)
	FindByID(ctx context.Context, id string) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	SoftDelete(ctx context.Context, id string) error
}
