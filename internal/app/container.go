package app

import (
	"fmt"
	"net/http"

	"github.com/ochronus/gocatbox/catbox"
	"github.com/ochronus/gocatbox/internal/config"
	"github.com/sirupsen/logrus"
)

// Container centralizes the core dependencies used across the application.
// It is intentionally small and uses interfaces so callers (and tests) can
// substitute implementations easily.
type Container struct {
	Config       *config.Config
	Logger       *logrus.Logger
	CatboxClient catbox.ClientAPI
}

// Option allows customizing the container during construction.
type Option func(*Container) error

// WithLogger overrides the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Container) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithCatboxClient overrides the default Catbox client.
func WithCatboxClient(client catbox.ClientAPI) Option {
	return func(c *Container) error {
		if client == nil {
			return fmt.Errorf("catbox client cannot be nil")
		}
		c.CatboxClient = client
		return nil
	}
}

// NewContainer builds a Container with sensible defaults derived from cfg.
// Options can be supplied to override specific dependencies (useful in tests).
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	container := &Container{
		Config: cfg,
		Logger: buildDefaultLogger(cfg.Loglevel),
	}

	// Apply options early so tests can inject mocks before defaults are created.
	for _, opt := range opts {
		if err := opt(container); err != nil {
			return nil, err
		}
	}

	if container.CatboxClient == nil {
		client, err := buildCatboxClient(cfg, container.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create catbox client: %w", err)
		}
		container.CatboxClient = client
	}

	return container, nil
}

func buildDefaultLogger(levelStr string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func buildCatboxClient(cfg *config.Config, logger *logrus.Logger) (*catbox.Client, error) {
	opts := []catbox.Option{
		catbox.WithLogger(logger),
		catbox.WithEndpoint(cfg.Catbox.Endpoint),
	}
	if timeout := cfg.HTTPTimeout(); timeout > 0 {
		opts = append(opts, catbox.WithHTTPClient(&http.Client{Timeout: timeout}))
	}

	return catbox.NewClient(cfg.Catbox.UserHash, opts...)
}
