package catbox

import (
	"context"
	"io"
)

// ClientAPI defines the Catbox operations used by the rest of the app.
// It mirrors the concrete client so it can be mocked in tests.
type ClientAPI interface {
	Authenticated() bool
	UploadFile(ctx context.Context, data []byte, fileName string) (string, error)
	UploadReader(ctx context.Context, r io.Reader, fileName string) (string, error)
	UploadURL(ctx context.Context, url string) (string, error)
	DeleteFiles(ctx context.Context, fileIDs []string) (string, error)
	CreateAlbum(ctx context.Context, opts CreateAlbumOptions) (string, error)
	EditAlbum(ctx context.Context, opts EditAlbumOptions) (string, error)
	AddToAlbum(ctx context.Context, short string, fileIDs []string) (string, error)
	RemoveFromAlbum(ctx context.Context, short string, fileIDs []string) (string, error)
	DeleteAlbum(ctx context.Context, short string) (string, error)
}
