// Copyright (c) 2026 Inkwell. All rights reserved.

// Package comments implements reader discussion attached to blog posts.
package comments

import "time"

// Comment is a reader's note on a published post.
type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	FieldContent = "content"
)
