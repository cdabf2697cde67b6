// Copyright (c) 2026 Inkwell. All rights reserved.

package posts

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
	"github.com/inkwell-dev/inkwell/pkg/pointer"
)

type memoryRepository struct {
	mu    sync.Mutex
	posts map[string]*Post
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{posts: make(map[string]*Post)}
}

func (repo *memoryRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*Post
	for _, post := range repo.posts {
		if filter.Query != "" && !strings.Contains(strings.ToLower(post.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Published != nil && post.Published != *filter.Published {
			continue
		}
		clone := *post
		matched = append(matched, &clone)
	}

	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if post, ok := repo.posts[id]; ok {
		clone := *post
		return &clone, nil
	}
	return nil, apperr.NotFound("Post")
}

func (repo *memoryRepository) FindBySlug(_ context.Context, slugValue string) (*Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, post := range repo.posts {
		if post.Slug == slugValue {
			clone := *post
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Post")
}

func (repo *memoryRepository) Create(_ context.Context, post *Post) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, existing := range repo.posts {
		if existing.Slug == post.Slug {
			return apperr.Conflict("A post with this slug already exists")
		}
	}
	clone := *post
	repo.posts[post.ID] = &clone
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, post *Post) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.posts[post.ID]; !ok {
		return apperr.NotFound("Post")
	}
	clone := *post
	repo.posts[post.ID] = &clone
	return nil
}

func (repo *memoryRepository) SoftDelete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repo.posts, id)
	return nil
}

func member(id string) *sec.Principal {
	return &sec.Principal{UserID: id, Username: "user-" + id, Role: sec.RoleMember}
}

func staff(id string, role sec.UserRole) *sec.Principal {
	return &sec.Principal{UserID: id, Username: "staff-" + id, Role: role}
}

func newPostService() (*memoryRepository, *Service) {
	repo := newMemoryRepository()
	return repo, NewService(repo, slog.New(slog.DiscardHandler))
}

func TestCreatePost_SlugAndPublication(t *testing.T) {
	_, service := newPostService()

	draft, err := service.CreatePost(context.Background(), member("a1"), CreateInput{
		Title:   "Ink & Quill: Getting Started!",
		Content: "body",
	})
	require.NoError(t, err)
	assert.Equal(t, "ink-quill-getting-started", draft.Slug)
	assert.False(t, draft.Published)
	assert.Nil(t, draft.PublishedAt)
	assert.Equal(t, "a1", draft.AuthorID)

	published, err := service.CreatePost(context.Background(), member("a1"), CreateInput{
		Title:     "Second Post",
		Content:   "body",
		Published: true,
	})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
}

func TestCreatePost_Validation(t *testing.T) {
	_, service := newPostService()

	_, err := service.CreatePost(context.Background(), member("a1"), CreateInput{Title: "", Content: "body"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidationError, apperr.As(err).Code)

	_, err = service.CreatePost(context.Background(), member("a1"), CreateInput{Title: "ok", Content: ""})
	require.Error(t, err)
}

func TestGetPost_DraftVisibility(t *testing.T) {
	_, service := newPostService()

	draft, err := service.CreatePost(context.Background(), member("a1"), CreateInput{
		Title:   "Hidden Draft",
		Content: "body",
	})
	require.NoError(t, err)

	// Anonymous and unrelated members get a 404, not a 403.
	for _, principal := range []*sec.Principal{nil, member("someone-else")} {
		_, err := service.GetPost(context.Background(), principal, draft.Slug)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
	}

	// The author and moderators see it, by slug or by UUID.
	for _, identifier := range []string{draft.Slug, draft.ID} {
		for _, principal := range []*sec.Principal{member("a1"), staff("m1", sec.RoleModerator)} {
			post, err := service.GetPost(context.Background(), principal, identifier)
			require.NoError(t, err)
			assert.Equal(t, draft.ID, post.ID)
		}
	}
}

func TestListPosts_ForcesPublishedForReaders(t *testing.T) {
	_, service := newPostService()

	_, err := service.CreatePost(context.Background(), member("a1"), CreateInput{Title: "Draft", Content: "x"})
	require.NoError(t, err)
	_, err = service.CreatePost(context.Background(), member("a1"), CreateInput{Title: "Live", Content: "x", Published: true})
	require.NoError(t, err)

	// Anonymous listing only surfaces the published post, even when the
	// caller explicitly asks for drafts.
	listed, total, err := service.ListPosts(context.Background(), nil, Filter{Published: pointer.To(false)}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, listed, 1)
	assert.Equal(t, "Live", listed[0].Title)

	// The author listing their own posts sees both.
	_, total, err = service.ListPosts(context.Background(), member("a1"), Filter{AuthorID: "a1"}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestUpdatePost_OwnershipAndPatch(t *testing.T) {
	_, service := newPostService()

	post, err := service.CreatePost(context.Background(), member("a1"), CreateInput{
		Title:   "Original",
		Content: "body",
	})
	require.NoError(t, err)

	// A stranger cannot edit.
	_, err = service.UpdatePost(context.Background(), member("b2"), post.ID, UpdateInput{
		Title: pointer.To("Hijacked"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	// Partial update: only the provided field changes; publishing stamps
	// the timestamp.
	updated, err := service.UpdatePost(context.Background(), member("a1"), post.ID, UpdateInput{
		Published: pointer.To(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Original", updated.Title)
	assert.True(t, updated.Published)
	require.NotNil(t, updated.PublishedAt)

	// Unpublishing clears it again.
	updated, err = service.UpdatePost(context.Background(), staff("m1", sec.RoleModerator), post.ID, UpdateInput{
		Published: pointer.To(false),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.PublishedAt)
}

func TestDeletePost_Ownership(t *testing.T) {
	repo, service := newPostService()

	post, err := service.CreatePost(context.Background(), member("a1"), CreateInput{
		Title:   "Mine",
		Content: "body",
	})
	require.NoError(t, err)

	// Moderators cannot delete member posts; only admins can.
	err = service.DeletePost(context.Background(), staff("m1", sec.RoleModerator), post.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	require.NoError(t, service.DeletePost(context.Background(), member("a1"), post.ID))
	_, err = repo.FindByID(context.Background(), post.ID)
	require.Error(t, err)
}
