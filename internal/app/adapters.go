package app

import (
	"context"
	"errors"

	httpcontroller "github.com/vadim/bloglist/internal/controller/http"
	blogentity "github.com/vadim/bloglist/internal/domain/blog/entity"
	userentity "github.com/vadim/bloglist/internal/domain/user/entity"
	"github.com/vadim/bloglist/internal/storage"
)

// userGetter is the slice of the user policy the blog domain needs
type userGetter interface {
	GetByID(ctx context.Context, id string) (*userentity.User, error)
}

// blogOwnerAdapter adapts the user policy to blogpolicy.UserProvider
type blogOwnerAdapter struct {
	users userGetter
}

func (a *blogOwnerAdapter) Owner(ctx context.Context, id string) (*blogentity.UserRef, error) {
	u, err := a.users.GetByID(ctx, id)
	if errors.Is(err, userentity.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogentity.UserRef{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}, nil
}

// mediaStoreAdapter adapts storage.S3Storage to httpcontroller.MediaStore
type mediaStoreAdapter struct {
	storage *storage.S3Storage
}

func (a *mediaStoreAdapter) Upload(ctx context.Context, in httpcontroller.MediaUploadInput) (*httpcontroller.MediaUploadOutput, error) {
	out, err := a.storage.Upload(ctx, storage.UploadInput{
		Owner:       in.Owner,
		Reader:      in.Reader,
		ContentType: in.ContentType,
		Size:        in.Size,
		Filename:    in.Filename,
	})
	if err != nil {
		return nil, err
	}
	return &httpcontroller.MediaUploadOutput{
		URL:  out.URL,
		Key:  out.Key,
		Size: out.Size,
	}, nil
}

func (a *mediaStoreAdapter) Delete(ctx context.Context, key string) error {
	return a.storage.Delete(ctx, key)
}

func (a *mediaStoreAdapter) OwnsKey(owner, key string) bool {
	return storage.OwnsKey(owner, key)
}
