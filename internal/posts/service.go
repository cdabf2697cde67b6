// Copyright (c) 2026 Inkwell. All rights reserved.

package posts

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
	"github.com/inkwell-dev/inkwell/pkg/pointer"
	"github.com/inkwell-dev/inkwell/pkg/slug"
	"github.com/inkwell-dev/inkwell/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListPosts returns posts visible to the given principal.
// Non-staff readers only ever see published posts, except their own.
func (service *Service) ListPosts(ctx context.Context, principal *sec.Principal, filter Filter, limit, offset int) ([]*Post, int, error) {
	if !canSeeUnpublished(principal, filter.AuthorID) {
		filter.Published = pointer.To(true)
	}
	return service.repo.List(ctx, filter, limit, offset)
}

// GetPost returns a single post by slug or UUID, applying the same
// visibility rule as listings.
func (service *Service) GetPost(ctx context.Context, principal *sec.Principal, identifier string) (*Post, error) {
	var (
		post *Post
		err  error
	)
	if uuid.Validate(identifier) == nil {
		post, err = service.repo.FindByID(ctx, identifier)
	} else {
		post, err = service.repo.FindBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	if !post.Published && !canSeeUnpublished(principal, post.AuthorID) {
		// Hidden drafts 404 instead of 403 so their existence leaks nothing.
		return nil, apperr.NotFound("Post")
	}

	return post, nil
}

// CreateInput holds the authoring fields for a new post.
type CreateInput struct {
	Title     string
	Summary   string
	Content   string
	Published bool
}

func (service *Service) CreatePost(ctx context.Context, principal *sec.Principal, input CreateInput) (*Post, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		MaxLen(FieldSummary, input.Summary, 500).
		Required(FieldContent, input.Content)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		ID:        uuidv7.New(),
		AuthorID:  principal.UserID,
		Title:     input.Title,
		Slug:      slug.From(input.Title),
		Summary:   input.Summary,
		Content:   input.Content,
		Published: input.Published,
	}
	if input.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := service.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("author_id", post.AuthorID),
		slog.String("slug", post.Slug),
	)
	return post, nil
}

// UpdateInput carries optional PATCH fields; nil means "leave unchanged".
type UpdateInput struct {
	Title     *string
	Summary   *string
	Content   *string
	Published *bool
}

func (service *Service) UpdatePost(ctx context.Context, principal *sec.Principal, id string, input UpdateInput) (*Post, error) {
	post, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canEdit(principal, post) {
		return nil, apperr.Forbidden("You can only edit your own posts")
	}

	post.Title = pointer.Fallback(input.Title, post.Title)
	post.Summary = pointer.Fallback(input.Summary, post.Summary)
	post.Content = pointer.Fallback(input.Content, post.Content)

	if input.Published != nil && *input.Published != post.Published {
		post.Published = *input.Published
		if post.Published {
			now := time.Now()
			post.PublishedAt = &now
		} else {
			post.PublishedAt = nil
		}
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).
		MaxLen(FieldTitle, post.Title, 200).
		MaxLen(FieldSummary, post.Summary, 500).
		Required(FieldContent, post.Content)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", post.ID))
	return post, nil
}

func (service *Service) DeletePost(ctx context.Context, principal *sec.Principal, id string) error {
	post, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Deleting another member's post requires admin, not just moderator.
	if post.AuthorID != principal.UserID && !principal.Role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("You can only delete your own posts")
	}

	if err := service.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("post_deleted",
		slog.String("post_id", id),
		slog.String("deleted_by", principal.UserID),
	)
	return nil
}

// canSeeUnpublished reports whether the principal may see drafts scoped to authorID.
func canSeeUnpublished(principal *sec.Principal, authorID string) bool {
	if principal == nil {
		return false
	}
	if principal.Role.AtLeast(sec.RoleModerator) {
		return true
	}
	return authorID != "" && authorID == principal.UserID
}

// canEdit reports whether the principal may modify the post.
func canEdit(principal *sec.Principal, post *Post) bool {
	return post.AuthorID == principal.UserID || principal.Role.AtLeast(sec.RoleModerator)
}
