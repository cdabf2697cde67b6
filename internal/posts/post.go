// Copyright (c) 2026 Inkwell. All rights reserved.

// Package posts implements the blog post domain: authoring, publication,
// and public reading.
package posts

import "time"

// Post is a blog article written by a registered user.
//
// Slug is derived from the title at creation time and is the public lookup
// key. Unpublished posts are visible only to their author and staff.
type Post struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Filter narrows post listings.
type Filter struct {
	Query     string // matches title substring, case-insensitive
	AuthorID  string
	Published *bool // nil means "no filter"; readers outside staff are forced to true
}

// Field names used in validation errors.
const (
	FieldTitle   = "title"
	FieldSummary = "summary"
	FieldContent = "content"
)
