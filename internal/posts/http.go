// Copyright (c) 2026 Inkwell. All rights reserved.

package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-dev/inkwell/internal/platform/middleware"
	requestutil "github.com/inkwell-dev/inkwell/internal/platform/request"
	"github.com/inkwell-dev/inkwell/internal/platform/respond"
	"github.com/inkwell-dev/inkwell/internal/platform/validate"
	"github.com/inkwell-dev/inkwell/pkg/convert"
	"github.com/inkwell-dev/inkwell/pkg/pagination"
	"github.com/inkwell-dev/inkwell/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public (anonymous readers see only published posts)
	router.Get("/", handler.listPosts)
	router.Get("/{identifier}", handler.getPost)

	// Members only
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireSession(false))

		memberRoute.Post("/", handler.createPost)
		memberRoute.Patch("/{id}", handler.updatePost)
		memberRoute.Delete("/{id}", handler.deletePost)
	})
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		Query:    queryValues.Get("q"),
		AuthorID: queryValues.Get("author_id"),
	}
	if raw := queryValues.Get("published"); raw != "" {
		filter.Published = pointer.To(convert.ToBool(raw))
	}

	posts, total, err := handler.service.ListPosts(
		request.Context(),
		requestutil.Principal(request),
		filter,
		paginationParams.Limit,
		paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.GetPost(
		request.Context(),
		requestutil.Principal(request),
		requestutil.Param(request, "identifier"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

type createPostRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), principal, CreateInput{
		Title:     input.Title,
		Summary:   input.Summary,
		Content:   input.Content,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

type updatePostRequest struct {
	Title     *string `json:"title"`
	Summary   *string `json:"summary"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.service.UpdatePost(request.Context(), principal, requestutil.Param(request, "id"), UpdateInput{
		Title:     input.Title,
		Summary:   input.Summary,
		Content:   input.Content,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePost(request.Context(), principal, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
