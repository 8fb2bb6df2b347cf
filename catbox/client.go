package catbox

import (
	"context"
	"fmt"
	"io"
)

// Client wraps a Submitter with an optional userhash. Operations on existing
// resources fail locally with ErrAuthenticationRequired when no userhash is
// held; uploads and album creation work anonymously.
type Client struct {
	userHash  string
	submitter *Submitter
}

var _ ClientAPI = (*Client)(nil)

// CreateAlbumOptions describes a new album. A nil Description omits the
// desc field entirely.
type CreateAlbumOptions struct {
	Title       string
	Files       []string
	Description *string
}

// EditAlbumOptions is the full replacement state of an album.
type EditAlbumOptions struct {
	Short       string
	Title       string
	Description string
	Files       []string
}

// NewClient creates a Client. An empty userHash gives an anonymous client.
func NewClient(userHash string, opts ...Option) (*Client, error) {
	submitter, err := NewSubmitter(opts...)
	if err != nil {
		return nil, err
	}
	return NewClientWithSubmitter(userHash, submitter)
}

// NewClientWithSubmitter creates a Client sharing an existing Submitter.
func NewClientWithSubmitter(userHash string, submitter *Submitter) (*Client, error) {
	if submitter == nil {
		return nil, fmt.Errorf("submitter cannot be nil")
	}
	return &Client{
		userHash:  userHash,
		submitter: submitter,
	}, nil
}

// Authenticated reports whether the client holds a userhash.
func (c *Client) Authenticated() bool {
	return c.userHash != ""
}

func (c *Client) requireAuth(op RequestType) error {
	if !c.Authenticated() {
		return &ValidationError{Operation: op, Field: FieldUserHash, Err: ErrAuthenticationRequired}
	}
	return nil
}

// UploadFile uploads data under fileName and returns the file URL.
func (c *Client) UploadFile(ctx context.Context, data []byte, fileName string) (string, error) {
	return c.submitter.Submit(ctx, FileUploadRequest{
		UserHash: c.userHash,
		FileName: fileName,
		Data:     data,
	})
}

// UploadReader reads r to the end and uploads the content under fileName.
func (c *Client) UploadReader(ctx context.Context, r io.Reader, fileName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	return c.UploadFile(ctx, data, fileName)
}

// UploadURL asks Catbox to fetch url and returns the resulting file URL.
func (c *Client) UploadURL(ctx context.Context, url string) (string, error) {
	return c.submitter.Submit(ctx, URLUploadRequest{
		UserHash: c.userHash,
		URL:      url,
	})
}

// DeleteFiles deletes files owned by the account.
func (c *Client) DeleteFiles(ctx context.Context, fileIDs []string) (string, error) {
	if err := c.requireAuth(ReqDeleteFiles); err != nil {
		return "", err
	}
	return c.submitter.Submit(ctx, DeleteFilesRequest{
		UserHash: c.userHash,
		Files:    FileIdentifierList(fileIDs),
	})
}

// CreateAlbum creates an album and returns its URL. Anonymous albums can
// never be edited or deleted afterwards. Catbox caps albums at 500 files.
func (c *Client) CreateAlbum(ctx context.Context, opts CreateAlbumOptions) (string, error) {
	return c.submitter.Submit(ctx, CreateAlbumRequest{
		UserHash:    c.userHash,
		Title:       opts.Title,
		Description: opts.Description,
		Files:       FileIdentifierList(opts.Files),
	})
}

// EditAlbum replaces the title, description and file list of an album.
func (c *Client) EditAlbum(ctx context.Context, opts EditAlbumOptions) (string, error) {
	if err := c.requireAuth(ReqEditAlbum); err != nil {
		return "", err
	}
	return c.submitter.Submit(ctx, EditAlbumRequest{
		UserHash:    c.userHash,
		Short:       opts.Short,
		Title:       opts.Title,
		Description: opts.Description,
		Files:       FileIdentifierList(opts.Files),
	})
}

// AddToAlbum adds files to the album identified by short.
func (c *Client) AddToAlbum(ctx context.Context, short string, fileIDs []string) (string, error) {
	if err := c.requireAuth(ReqAddToAlbum); err != nil {
		return "", err
	}
	return c.submitter.Submit(ctx, AddToAlbumRequest{
		UserHash: c.userHash,
		Short:    short,
		Files:    FileIdentifierList(fileIDs),
	})
}

// RemoveFromAlbum removes files from the album identified by short.
func (c *Client) RemoveFromAlbum(ctx context.Context, short string, fileIDs []string) (string, error) {
	if err := c.requireAuth(ReqRemoveFromAlbum); err != nil {
		return "", err
	}
	return c.submitter.Submit(ctx, RemoveFromAlbumRequest{
		UserHash: c.userHash,
		Short:    short,
		Files:    FileIdentifierList(fileIDs),
	})
}

// DeleteAlbum deletes the album identified by short.
func (c *Client) DeleteAlbum(ctx context.Context, short string) (string, error) {
	if err := c.requireAuth(ReqDeleteAlbum); err != nil {
		return "", err
	}
	return c.submitter.Submit(ctx, DeleteAlbumRequest{
		UserHash: c.userHash,
		Short:    short,
	})
}
