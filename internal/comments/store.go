// Copyright (c) 2026 Inkwell. All rights reserved.

package comments

import "context"

// Repository defines the data access contract for comments.
type Repository interface {
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error)
	FindByID(ctx context.Context, id string) (*Comment, error)
	Create(ctx context.Context, comment *Comment) error
	SoftDelete(ctx context.Context, id string) error
}
