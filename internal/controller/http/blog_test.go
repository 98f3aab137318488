package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadim/bloglist/internal/auth"
	"github.com/vadim/bloglist/internal/domain/blog/entity"
	"github.com/vadim/bloglist/internal/domain/blog/policy"
)

const testBlogID = "5f0c1a9e-6d1b-4b8e-9a57-2f4c9f5e3b21"

type fakeBlogPolicy struct {
	blogs     []entity.Blog
	created   *policy.CreateInput
	updated   *policy.UpdateInput
	deletedBy string
	err       error
}

func (f *fakeBlogPolicy) Create(_ context.Context, in policy.CreateInput) (*entity.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &in
	b := entity.Blog{ID: testBlogID, Title: in.Title, Author: in.Author, URL: in.URL, UserID: in.UserID, Comments: []string{}}
	if in.Likes != nil {
		b.Likes = *in.Likes
	}
	return &b, nil
}

func (f *fakeBlogPolicy) GetByID(_ context.Context, id string) (*entity.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.blogs {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, entity.ErrBlogNotFound
}

func (f *fakeBlogPolicy) List(context.Context) ([]entity.Blog, error) {
	return f.blogs, f.err
}

func (f *fakeBlogPolicy) ListByUser(_ context.Context, userID string) ([]entity.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []entity.Blog{}
	for _, b := range f.blogs {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlogPolicy) Update(_ context.Context, in policy.UpdateInput) (*entity.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &in
	b := entity.Blog{ID: in.ID, Title: "stored", Author: "stored", URL: "stored", Likes: 1}
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Author != nil {
		b.Author = *in.Author
	}
	if in.URL != nil {
		b.URL = *in.URL
	}
	if in.Likes != nil {
		b.Likes = *in.Likes
	}
	return &b, nil
}

func (f *fakeBlogPolicy) AddComment(_ context.Context, id, comment string) (*entity.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Blog{ID: id, Comments: []string{comment}}, nil
}

func (f *fakeBlogPolicy) Delete(_ context.Context, _ string, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.deletedBy = userID
	return nil
}

func (f *fakeBlogPolicy) Statistics(context.Context) (*entity.BlogStatistics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.BlogStatistics{TotalBlogs: len(f.blogs)}, nil
}

var testIssuer = auth.NewIssuer("handler-secret", time.Hour)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBlogRouter(p BlogPolicy) chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewBlogHandler(p, testIssuer, discardLogger()).RegisterRoutes(r)
	})
	return r
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := testIssuer.Issue(userID, "root")
	require.NoError(t, err)
	return "bearer " + token
}

func do(r http.Handler, method, path, body, authz string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBlogList(t *testing.T) {
	p := &fakeBlogPolicy{blogs: []entity.Blog{
		{ID: "1", Title: "a", Comments: []string{}, User: &entity.UserRef{ID: "u", Username: "root", Name: "Superuser"}},
		{ID: "2", Title: "b", Comments: []string{}},
	}}
	rec := do(newBlogRouter(p), http.MethodGet, "/api/blogs", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	for _, b := range got {
		assert.NotEmpty(t, b["id"])
	}
	assert.Equal(t, "root", got[0]["user"].(map[string]any)["username"])
	assert.NotContains(t, got[0], "UserID")
}

func TestBlogListByUser(t *testing.T) {
	p := &fakeBlogPolicy{blogs: []entity.Blog{
		{ID: "1", UserID: "u-1"},
		{ID: "2", UserID: "u-2"},
		{ID: "3", UserID: "u-1"},
	}}
	rec := do(newBlogRouter(p), http.MethodGet, "/api/blogs?user=u-1", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []entity.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestBlogCreate(t *testing.T) {
	t.Run("valid blog", func(t *testing.T) {
		p := &fakeBlogPolicy{}
		rec := do(newBlogRouter(p), http.MethodPost, "/api/blogs",
			`{"title":"Created by rootTest","author":"rot","url":"prueba.com","likes":2}`, bearer(t, "user-1"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, p.created)
		assert.Equal(t, "user-1", p.created.UserID)
		require.NotNil(t, p.created.Likes)
		assert.Equal(t, int64(2), *p.created.Likes)
	})

	t.Run("missing likes is passed as nil", func(t *testing.T) {
		p := &fakeBlogPolicy{}
		rec := do(newBlogRouter(p), http.MethodPost, "/api/blogs",
			`{"title":"t","author":"rot","url":"prueba.com"}`, bearer(t, "user-1"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, p.created.Likes)
		assert.JSONEq(t, `0`, mustField(t, rec.Body.Bytes(), "likes"))
	})

	t.Run("no token", func(t *testing.T) {
		p := &fakeBlogPolicy{}
		rec := do(newBlogRouter(p), http.MethodPost, "/api/blogs", `{"title":"t","url":"u"}`, "whatever")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, p.created)
	})

	t.Run("validation error", func(t *testing.T) {
		p := &fakeBlogPolicy{err: entity.ErrEmptyURL}
		rec := do(newBlogRouter(p), http.MethodPost, "/api/blogs", `{"title":"t"}`, bearer(t, "user-1"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"url is required"}`, rec.Body.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := do(newBlogRouter(&fakeBlogPolicy{}), http.MethodPost, "/api/blogs", `{`, bearer(t, "user-1"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("token user gone", func(t *testing.T) {
		p := &fakeBlogPolicy{err: entity.ErrUnknownUser}
		rec := do(newBlogRouter(p), http.MethodPost, "/api/blogs", `{"title":"t","url":"u"}`, bearer(t, "user-1"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBlogGetByID(t *testing.T) {
	p := &fakeBlogPolicy{blogs: []entity.Blog{{ID: testBlogID, Title: "found"}}}
	r := newBlogRouter(p)

	rec := do(r, http.MethodGet, "/api/blogs/"+testBlogID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"found"`, mustField(t, rec.Body.Bytes(), "title"))

	rec = do(r, http.MethodGet, "/api/blogs/other", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogUpdate(t *testing.T) {
	p := &fakeBlogPolicy{}
	rec := do(newBlogRouter(p), http.MethodPut, "/api/blogs/"+testBlogID,
		`{"title":"t","author":"a","url":"u","likes":8}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, p.updated)
	assert.Equal(t, testBlogID, p.updated.ID)
	assert.Equal(t, int64(8), *p.updated.Likes)

	// only likes sent: other fields reach the policy as nil and are kept
	p = &fakeBlogPolicy{}
	rec = do(newBlogRouter(p), http.MethodPut, "/api/blogs/"+testBlogID, `{"likes":9}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, p.updated.Title)
	assert.Nil(t, p.updated.Author)
	assert.Nil(t, p.updated.URL)
	assert.JSONEq(t, `"stored"`, mustField(t, rec.Body.Bytes(), "author"))
	assert.JSONEq(t, `9`, mustField(t, rec.Body.Bytes(), "likes"))

	rec = do(newBlogRouter(&fakeBlogPolicy{err: entity.ErrBlogNotFound}), http.MethodPut, "/api/blogs/"+testBlogID,
		`{"title":"t","url":"u"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(newBlogRouter(&fakeBlogPolicy{err: entity.ErrMalformedID}), http.MethodPut, "/api/blogs/x",
		`{"title":"t","url":"u"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlogAddComment(t *testing.T) {
	rec := do(newBlogRouter(&fakeBlogPolicy{}), http.MethodPost, "/api/blogs/"+testBlogID+"/comments",
		`{"comment":"great read"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["great read"]`, mustField(t, rec.Body.Bytes(), "comments"))

	rec = do(newBlogRouter(&fakeBlogPolicy{err: entity.ErrBlogNotFound}), http.MethodPost, "/api/blogs/"+testBlogID+"/comments",
		`{"comment":"great read"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(newBlogRouter(&fakeBlogPolicy{err: entity.ErrEmptyComment}), http.MethodPost, "/api/blogs/"+testBlogID+"/comments",
		`{"comment":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlogDelete(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		p := &fakeBlogPolicy{}
		rec := do(newBlogRouter(p), http.MethodDelete, "/api/blogs/"+testBlogID, "", bearer(t, "user-1"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "user-1", p.deletedBy)
	})

	t.Run("not owner", func(t *testing.T) {
		p := &fakeBlogPolicy{err: entity.ErrNotOwner}
		rec := do(newBlogRouter(p), http.MethodDelete, "/api/blogs/"+testBlogID, "", bearer(t, "user-2"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "only by the user who added the blog")
	})

	t.Run("no token", func(t *testing.T) {
		p := &fakeBlogPolicy{}
		rec := do(newBlogRouter(p), http.MethodDelete, "/api/blogs/"+testBlogID, "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, p.deletedBy)
	})
}

func TestBlogStatistics(t *testing.T) {
	rec := do(newBlogRouter(&fakeBlogPolicy{}), http.MethodGet, "/api/blogs/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total_blogs":0,"total_likes":0,"favorite_blog":null,"most_blogs":null,"most_likes":null}`,
		rec.Body.String())
}

func TestBlogInternalError(t *testing.T) {
	rec := do(newBlogRouter(&fakeBlogPolicy{err: errors.New("db down")}), http.MethodGet, "/api/blogs", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func mustField(t *testing.T, body []byte, field string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	raw, ok := m[field]
	require.True(t, ok, "missing field %q", field)
	return string(raw)
}
