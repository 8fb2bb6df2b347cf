package http

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ochronus/gocatbox/catbox"
	"github.com/ochronus/gocatbox/internal/app"
	"github.com/ochronus/gocatbox/internal/config"
	"github.com/sirupsen/logrus"
)

// MaxUploadSize matches the Catbox per-file limit.
const MaxUploadSize = 200 << 20

// formOverhead leaves room for the non-file fields and multipart framing.
const formOverhead = 1 << 20

const maxFormMemory = 32 << 20

// Handler relays Catbox form requests through the configured client.
type Handler struct {
	config       *config.Config
	catboxClient catbox.ClientAPI
	logger       *logrus.Logger
	maxBodySize  int64
}

// NewHandler creates a new HTTP handler.
func NewHandler(container *app.Container) *Handler {
	return &Handler{
		config:       container.Config,
		catboxClient: container.CatboxClient,
		logger:       container.Logger,
		maxBodySize:  MaxUploadSize + formOverhead,
	}
}

// Health reports that the relay is up.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// APIPost accepts the Catbox form fields, ignores any userhash sent by the
// caller and forwards the request with the configured one.
func (h *Handler) APIPost(c *gin.Context) {
	if h.config.RelayAuthEnabled() && !h.validateUser(c) {
		c.Header("WWW-Authenticate", `Basic realm="gocatbox"`)
		c.String(http.StatusUnauthorized, "unauthorized")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize)
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
			return
		}
		h.logger.Debugf("failed to parse form: %v", err)
		c.String(http.StatusBadRequest, "malformed form body")
		return
	}

	reqType := catbox.RequestType(c.PostForm(catbox.FieldReqType))
	ctx := c.Request.Context()

	var (
		body string
		err  error
	)

	switch reqType {
	case catbox.ReqFileUpload:
		fh, ferr := c.FormFile(catbox.FieldFile)
		if ferr != nil {
			c.String(http.StatusBadRequest, "fileToUpload is required")
			return
		}
		f, ferr := fh.Open()
		if ferr != nil {
			h.logger.Errorf("failed to open uploaded file %s: %v", fh.Filename, ferr)
			c.String(http.StatusInternalServerError, "failed to read upload")
			return
		}
		defer f.Close()
		body, err = h.catboxClient.UploadReader(ctx, f, fh.Filename)

	case catbox.ReqURLUpload:
		body, err = h.catboxClient.UploadURL(ctx, c.PostForm(catbox.FieldURL))

	case catbox.ReqDeleteFiles:
		body, err = h.catboxClient.DeleteFiles(ctx, splitFiles(c.PostForm(catbox.FieldFiles)))

	case catbox.ReqCreateAlbum:
		opts := catbox.CreateAlbumOptions{
			Title: c.PostForm(catbox.FieldTitle),
			Files: splitFiles(c.PostForm(catbox.FieldFiles)),
		}
		if desc, ok := c.GetPostForm(catbox.FieldDesc); ok {
			opts.Description = &desc
		}
		body, err = h.catboxClient.CreateAlbum(ctx, opts)

	case catbox.ReqEditAlbum:
		body, err = h.catboxClient.EditAlbum(ctx, catbox.EditAlbumOptions{
			Short:       c.PostForm(catbox.FieldShort),
			Title:       c.PostForm(catbox.FieldTitle),
			Description: c.PostForm(catbox.FieldDesc),
			Files:       splitFiles(c.PostForm(catbox.FieldFiles)),
		})

	case catbox.ReqAddToAlbum:
		body, err = h.catboxClient.AddToAlbum(ctx, c.PostForm(catbox.FieldShort), splitFiles(c.PostForm(catbox.FieldFiles)))

	case catbox.ReqRemoveFromAlbum:
		body, err = h.catboxClient.RemoveFromAlbum(ctx, c.PostForm(catbox.FieldShort), splitFiles(c.PostForm(catbox.FieldFiles)))

	case catbox.ReqDeleteAlbum:
		body, err = h.catboxClient.DeleteAlbum(ctx, c.PostForm(catbox.FieldShort))

	default:
		h.logger.Warnf("Unknown reqtype: %q", reqType)
		c.String(http.StatusBadRequest, "unknown reqtype")
		return
	}

	if err != nil {
		h.writeError(c, reqType, err)
		return
	}

	c.String(http.StatusOK, body)
}

// writeError maps client errors onto relay status codes.
func (h *Handler) writeError(c *gin.Context, reqType catbox.RequestType, err error) {
	var (
		validationErr *catbox.ValidationError
		transportErr  *catbox.TransportError
	)

	switch {
	case catbox.IsAuthenticationRequired(err):
		c.String(http.StatusUnauthorized, err.Error())
	case errors.As(err, &validationErr):
		c.String(http.StatusBadRequest, err.Error())
	case errors.As(err, &transportErr):
		h.logger.Errorf("%s error: %v", reqType, err)
		c.String(http.StatusBadGateway, err.Error())
	default:
		h.logger.Errorf("%s error: %v", reqType, err)
		c.String(http.StatusInternalServerError, err.Error())
	}
}

// splitFiles accepts the space separated list Catbox uses.
func splitFiles(files string) []string {
	return strings.Fields(files)
}

// validateUser validates the Basic Auth credentials.
func (h *Handler) validateUser(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Basic ") {
		return false
	}

	encoded := strings.TrimPrefix(authHeader, "Basic ")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.config.Relay.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.config.Relay.Password)) == 1
	return userOK && passOK
}
