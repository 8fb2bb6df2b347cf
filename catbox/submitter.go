package catbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// DefaultEndpoint is the Catbox API URL.
const DefaultEndpoint = "https://catbox.moe/user/api.php"

// HTTPDoer is the part of *http.Client the Submitter needs. Tests swap it
// for a double.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Submitter encodes requests as multipart forms and POSTs them to the
// Catbox endpoint. It holds no per-call state and is safe for concurrent use.
type Submitter struct {
	endpoint   string
	httpClient HTTPDoer
	logger     logrus.FieldLogger
}

// Option customizes a Submitter (and the Client built on top of it).
type Option func(*Submitter) error

// WithEndpoint overrides the API URL.
func WithEndpoint(endpoint string) Option {
	return func(s *Submitter) error {
		if strings.TrimSpace(endpoint) == "" {
			return fmt.Errorf("endpoint cannot be empty")
		}
		s.endpoint = endpoint
		return nil
	}
}

// WithHTTPClient overrides the transport. No timeout is imposed unless the
// supplied client has one.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(s *Submitter) error {
		if doer == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		s.httpClient = doer
		return nil
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Submitter) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// NewSubmitter creates a Submitter using http.DefaultClient and the public
// Catbox endpoint unless overridden.
func NewSubmitter(opts ...Option) (*Submitter, error) {
	s := &Submitter{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		logger:     logrus.StandardLogger(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Endpoint returns the URL requests are sent to.
func (s *Submitter) Endpoint() string {
	return s.endpoint
}

// Submit validates req, sends it and returns the response body unmodified.
// Catbox reports some failures as plain text with a 200 status; telling
// those apart from a result URL is up to the caller.
func (s *Submitter) Submit(ctx context.Context, req Request) (string, error) {
	enc, err := encode(req)
	if err != nil {
		return "", err
	}

	body, contentType, err := enc.multipart()
	if err != nil {
		return "", fmt.Errorf("failed to encode %s request: %w", req.Type(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", contentType)

	log := s.logger.WithFields(logrus.Fields{
		"reqtype":  req.Type(),
		"endpoint": s.endpoint,
	})
	log.Debug("Submitting catbox request")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		log.Debugf("catbox request failed: %v", err)
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debugf("catbox responded with %s", resp.Status)
		return "", &TransportError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("error reading response body: %w", err)}
	}

	log.WithField("status", resp.StatusCode).Debug("catbox request completed")
	return string(data), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// multipart writes the encoded fields into a form body.
func (e *encoding) multipart() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, f := range e.fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if e.file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(FieldFile), quoteEscaper.Replace(e.file.name)))
		h.Set("Content-Type", mimetype.Detect(e.file.data).String())

		part, err := writer.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(e.file.data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}
