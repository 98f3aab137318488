package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userentity "github.com/vadim/bloglist/internal/domain/user/entity"
)

type stubUsers struct {
	user *userentity.User
	err  error
}

func (s stubUsers) GetByID(context.Context, string) (*userentity.User, error) {
	return s.user, s.err
}

func TestBlogOwnerAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("existing user", func(t *testing.T) {
		a := &blogOwnerAdapter{users: stubUsers{user: &userentity.User{ID: "u1", Username: "root", Name: "Superuser"}}}
		ref, err := a.Owner(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, "root", ref.Username)
		assert.Equal(t, "Superuser", ref.Name)
	})

	t.Run("missing user", func(t *testing.T) {
		a := &blogOwnerAdapter{users: stubUsers{err: userentity.ErrUserNotFound}}
		ref, err := a.Owner(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("lookup failure", func(t *testing.T) {
		boom := errors.New("boom")
		a := &blogOwnerAdapter{users: stubUsers{err: boom}}
		_, err := a.Owner(ctx, "u1")
		assert.ErrorIs(t, err, boom)
	})
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	assert.True(t, NewLogger("debug").Enabled(ctx, -4))
	assert.False(t, NewLogger("info").Enabled(ctx, -4))
	assert.False(t, NewLogger("error").Enabled(ctx, 4))
}

func TestOpenAPISpecEmbedded(t *testing.T) {
	assert.Contains(t, string(OpenAPISpec), "/blogs/stats")
}

func TestMediaStoreAdapterOwnsKey(t *testing.T) {
	a := &mediaStoreAdapter{}

	assert.True(t, a.OwnsKey("u1", "u1/2026/10/19/x.png"))
	assert.False(t, a.OwnsKey("u2", "u1/2026/10/19/x.png"))
}
