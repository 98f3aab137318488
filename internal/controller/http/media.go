package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/bloglist/internal/auth"
	"github.com/vadim/bloglist/internal/httpx/middleware"
	"github.com/vadim/bloglist/internal/httpx/response"
)

// MaxUploadSize is the maximum allowed image size (10MB)
const MaxUploadSize = 10 << 20

// MediaStore defines the interface for storing post images
type MediaStore interface {
	Upload(ctx context.Context, in MediaUploadInput) (*MediaUploadOutput, error)
	Delete(ctx context.Context, key string) error
	// OwnsKey reports whether key belongs to an upload by owner
	OwnsKey(owner, key string) bool
}

// MediaUploadInput represents input for media upload
type MediaUploadInput struct {
	Owner       string
	Reader      io.Reader
	ContentType string
	Size        int64
	Filename    string
}

// MediaUploadOutput represents output from media upload
type MediaUploadOutput struct {
	URL  string
	Key  string
	Size int64
}

// MediaHandler handles image upload HTTP requests
type MediaHandler struct {
	store  MediaStore
	tokens middleware.TokenValidator
	logger *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(store MediaStore, tokens middleware.TokenValidator, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{store: store, tokens: tokens, logger: logger}
}

// RegisterRoutes registers media routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))
		r.Post("/media/upload", h.Upload())
		r.Delete("/media/*", h.Delete())
	})
}

// UploadResponse represents the response from upload endpoint
type UploadResponse struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// Upload handles POST /media/upload
func (h *MediaHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFrom(r.Context())
		if !ok {
			response.Unauthorized(w, middleware.MsgInvalidToken)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			response.BadRequest(w, "file too large or invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "missing file in request")
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !isAllowedImageType(contentType) {
			response.BadRequest(w, fmt.Sprintf("unsupported media type: %s", contentType))
			return
		}

		result, err := h.store.Upload(r.Context(), MediaUploadInput{
			Owner:       claims.UserID,
			Reader:      file,
			ContentType: contentType,
			Size:        header.Size,
			Filename:    header.Filename,
		})
		if err != nil {
			h.logger.Error("image upload failed", "filename", header.Filename, "error", err)
			response.InternalError(w, "failed to upload file")
			return
		}

		response.Created(w, UploadResponse{
			URL:  result.URL,
			Key:  result.Key,
			Size: result.Size,
		})
	}
}

// Delete handles DELETE /media/{key}. Only the uploader may delete a key.
func (h *MediaHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFrom(r.Context())
		if !ok {
			response.Unauthorized(w, middleware.MsgInvalidToken)
			return
		}

		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if key == "" || strings.Contains(key, "..") {
			response.BadRequest(w, "invalid media key")
			return
		}

		if !h.store.OwnsKey(claims.UserID, key) {
			response.Unauthorized(w, "an image can be deleted only by the user who uploaded it")
			return
		}

		if err := h.store.Delete(r.Context(), key); err != nil {
			h.logger.Error("image delete failed", "key", key, "error", err)
			response.InternalError(w, "failed to delete file")
			return
		}

		response.NoContent(w)
	}
}

func isAllowedImageType(contentType string) bool {
	allowed := []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	}

	for _, a := range allowed {
		if strings.EqualFold(contentType, a) {
			return true
		}
	}
	return false
}
