package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/bloglist/internal/domain/user/entity"
	"github.com/vadim/bloglist/internal/domain/user/policy"
	"github.com/vadim/bloglist/internal/httpx/response"
)

// UserPolicy defines the interface for user operations
type UserPolicy interface {
	Register(ctx context.Context, in policy.RegisterInput) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Login(ctx context.Context, username, password string) (*policy.LoginOutput, error)
}

// UserHandler handles HTTP requests for users and login
type UserHandler struct {
	policy UserPolicy
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(p UserPolicy, logger *slog.Logger) *UserHandler {
	return &UserHandler{policy: p, logger: logger}
}

// RegisterRoutes registers user and login routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.List())
	r.Post("/users", h.Register())
	r.Post("/login", h.Login())
}

// RegisterRequest represents the request body for creating a user
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// List handles GET /users
func (h *UserHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.policy.List(r.Context())
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, users)
	}
}

// Register handles POST /users
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := response.Decode(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		user, err := h.policy.Register(r.Context(), policy.RegisterInput{
			Username: req.Username,
			Name:     req.Name,
			Password: req.Password,
		})
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, user)
	}
}

// Login handles POST /login
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := response.Decode(w, r, &req); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		out, err := h.policy.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		response.OK(w, out)
	}
}

func (h *UserHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, verr.Error())
	case errors.Is(err, entity.ErrPasswordTooShort),
		errors.Is(err, entity.ErrPasswordTooLong),
		errors.Is(err, entity.ErrUsernameTaken):
		response.BadRequest(w, err.Error())
	case errors.Is(err, entity.ErrInvalidCredentials):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, entity.ErrUserNotFound):
		response.NotFound(w, err.Error())
	default:
		h.logger.Error("user request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		response.InternalError(w, "internal server error")
	}
}
