// Copyright (c) 2026 Inkwell. All rights reserved.

package comments

import (
	"context"
	"log/slog"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
	"github.com/inkwell-dev/inkwell/internal/posts"
	"github.com/inkwell-dev/inkwell/pkg/uuidv7"
)

// PostProvider is the slice of the posts repository the comment service
// needs: resolving the target post to check it exists and is published.
type PostProvider interface {
	FindByID(ctx context.Context, id string) (*posts.Post, error)
}

type Service struct {
	repo   Repository
	posts  PostProvider
	logger *slog.Logger
}

func NewService(repo Repository, postProvider PostProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  postProvider,
		logger: logger,
	}
}

// livePost resolves the target post. Comments exist only in the context of
// a published post: a missing, soft-deleted, or draft post is NotFound, so
// unpublishing a post hides its discussion along with it.
func (service *Service) livePost(ctx context.Context, postID string) (*posts.Post, error) {
	post, err := service.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, apperr.NotFound("Post")
	}
	return post, nil
}

func (service *Service) ListComments(ctx context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.livePost(ctx, postID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByPost(ctx, postID, limit, offset)
}

const maxCommentLength = 2000

func (service *Service) CreateComment(ctx context.Context, principal *sec.Principal, postID, content string) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, maxCommentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.livePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:             uuidv7.New(),
		PostID:         postID,
		AuthorID:       principal.UserID,
		AuthorUsername: principal.Username,
		Content:        content,
	}

	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("author_id", principal.UserID),
	)
	return comment, nil
}

func (service *Service) DeleteComment(ctx context.Context, principal *sec.Principal, id string) error {
	comment, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.AuthorID != principal.UserID && !principal.Role.AtLeast(sec.RoleModerator) {
		return apperr.Forbidden("You can only delete your own comments")
	}

	if err := service.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.String("comment_id", id),
		slog.String("deleted_by", principal.UserID),
	)
	return nil
}
