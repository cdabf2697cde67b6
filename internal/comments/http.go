// Copyright (c) 2026 Inkwell. All rights reserved.

package comments

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-dev/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-dev/inkwell/internal/platform/request"
	"github.com/inkwell-dev/inkwell/internal/platform/respond"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
	"github.com/inkwell-dev/inkwell/pkg/pagination"
	"github.com/inkwell-dev/inkwell/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts comment endpoints. They are nested under a post:
// /posts/{postID}/comments plus a flat delete by comment id.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/posts/{postID}/comments", handler.listComments)

	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireSession(false))

		memberRoute.Post("/posts/{postID}/comments", handler.createComment)
		memberRoute.Delete("/comments/{id}", handler.deleteComment)
	})
}

// commentResponse is the public projection of a comment.
type commentResponse struct {
	ID             string    `json:"id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func toResponse(comment *Comment) commentResponse {
	return commentResponse{
		ID:             comment.ID,
		AuthorUsername: comment.AuthorUsername,
		Content:        comment.Content,
		CreatedAt:      comment.CreatedAt,
	}
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(
		request.Context(),
		requestutil.Param(request, "postID"),
		paginationParams.Limit,
		paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer,
		slice.Map(comments, toResponse),
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total),
	)
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.CreateComment(
		request.Context(),
		principal,
		requestutil.Param(request, "postID"),
		input.Content,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, toResponse(comment))
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), principal, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
