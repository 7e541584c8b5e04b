package storage

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

// Upload contract for avatars: at most 2 MB, one of the allowed image types.
const MaxAvatarSize = 2 << 20

var (
	ErrFileTooLarge    = errors.New("file exceeds the 2MB limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// extensionByType doubles as the MIME allow-list.
var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload is an avatar file handed over by the transport layer.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// AvatarStorage stores avatar files under unique names. The stored name is
// what the core persists as avatar_path.
type AvatarStorage interface {
	// Save validates the upload contract and stores the file, returning the
	// unique stored name.
	Save(ctx context.Context, upload Upload) (string, error)
	Remove(ctx context.Context, name string) error
}

// ValidateAvatar checks the upload against the size and MIME contract.
func ValidateAvatar(upload Upload) error {
	if upload.Size > MaxAvatarSize {
		return ErrFileTooLarge
	}
	if _, ok := extensionByType[upload.ContentType]; !ok {
		return ErrUnsupportedType
	}
	return nil
}

// uniqueName generates a stored filename that cannot collide with or leak the
// original name.
func uniqueName(contentType string) string {
	return uuid.NewString() + extensionByType[contentType]
}
