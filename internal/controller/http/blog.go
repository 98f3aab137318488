package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/bloglist/internal/auth"
	"github.com/vadim/bloglist/internal/domain/blog/entity"
	"github.com/vadim/bloglist/internal/domain/blog/policy"
	"github.com/vadim/bloglist/internal/httpx/middleware"
	"github.com/vadim/bloglist/internal/httpx/response"
)

// BlogPolicy defines the interface for blog operations
type BlogPolicy interface {
	Create(ctx context.Context, in policy.CreateInput) (*entity.Blog, error)
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	List(ctx context.Context) ([]entity.Blog, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Blog, error)
	Update(ctx context.Context, in policy.UpdateInput) (*entity.Blog, error)
	AddComment(ctx context.Context, id, comment string) (*entity.Blog, error)
	Delete(ctx context.Context, id, userID string) error
	Statistics(ctx context.Context) (*entity.BlogStatistics, error)
}

// BlogHandler handles HTTP requests for blogs
type BlogHandler struct {
	policy BlogPolicy
	tokens middleware.TokenValidator
	logger *slog.Logger
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(p BlogPolicy, tokens middleware.TokenValidator, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{policy: p, tokens: tokens, logger: logger}
}

// RegisterRoutes registers blog routes
func (h *BlogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", h.List())
		r.Get("/stats", h.Statistics())
		r.Get("/{blogId}", h.GetByID())
		r.Put("/{blogId}", h.Update())
		r.Post("/{blogId}/comments", h.AddComment())

		// Token required
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.tokens))
			r.Post("/", h.Create())
			r.Delete("/{blogId}", h.Delete())
		})
	})
}

// BlogRequest represents the request body for creating a blog
type BlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int64 `json:"likes,omitempty"`
}

// UpdateBlogRequest represents the request body for updating a blog.
// Omitted fields keep their stored values.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int64  `json:"likes"`
}

// CommentRequest represents the request body for adding a comment
type CommentRequest struct {
	Comment string `json:"comment"`
}

// List handles GET /blogs, optionally filtered by ?user=<id>
func (h *BlogHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			blogs []entity.Blog
			err   error
		)
		if userID := r.URL.Query().Get("user"); userID != "" {
			blogs, err = h.policy.ListByUser(r.Context(), userID)
		} else {
			blogs, err = h.policy.List(r.Context())
		}
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, blogs)
	}
}

// Statistics handles GET /blogs/stats
func (h *BlogHandler) Statistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := h.policy.Statistics(r.Context())
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, st)
	}
}

// GetByID handles GET /blogs/{blogId}
func (h *BlogHandler) GetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.policy.GetByID(r.Context(), chi.URLParam(r, "blogId"))
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, blog)
	}
}

// Create handles POST /blogs
func (h *BlogHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFrom(r.Context())
		if !ok {
			response.Unauthorized(w, middleware.MsgInvalidToken)
			return
		}

		var req BlogRequest
		if err := response.Decode(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		blog, err := h.policy.Create(r.Context(), policy.CreateInput{
			Title:  req.Title,
			Author: req.Author,
			URL:    req.URL,
			Likes:  req.Likes,
			UserID: claims.UserID,
		})
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, blog)
	}
}

// Update handles PUT /blogs/{blogId}
func (h *BlogHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateBlogRequest
		if err := response.Decode(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		blog, err := h.policy.Update(r.Context(), policy.UpdateInput{
			ID:     chi.URLParam(r, "blogId"),
			Title:  req.Title,
			Author: req.Author,
			URL:    req.URL,
			Likes:  req.Likes,
		})
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, blog)
	}
}

// AddComment handles POST /blogs/{blogId}/comments
func (h *BlogHandler) AddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CommentRequest
		if err := response.Decode(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		blog, err := h.policy.AddComment(r.Context(), chi.URLParam(r, "blogId"), req.Comment)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, blog)
	}
}

// Delete handles DELETE /blogs/{blogId}
func (h *BlogHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFrom(r.Context())
		if !ok {
			response.Unauthorized(w, middleware.MsgInvalidToken)
			return
		}

		if err := h.policy.Delete(r.Context(), chi.URLParam(r, "blogId"), claims.UserID); err != nil {
			h.handleError(w, r, err)
			return
		}

		response.NoContent(w)
	}
}

func (h *BlogHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrBlogNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, entity.ErrEmptyTitle),
		errors.Is(err, entity.ErrEmptyURL),
		errors.Is(err, entity.ErrNegativeLikes),
		errors.Is(err, entity.ErrEmptyComment),
		errors.Is(err, entity.ErrCommentTooLong),
		errors.Is(err, entity.ErrMalformedID):
		response.BadRequest(w, err.Error())
	case errors.Is(err, entity.ErrUnknownUser):
		response.Unauthorized(w, middleware.MsgInvalidToken)
	case errors.Is(err, entity.ErrNotOwner):
		response.Unauthorized(w, "A blog can be deleted only by the user who added the blog")
	default:
		h.logger.Error("blog request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		response.InternalError(w, "internal server error")
	}
}
