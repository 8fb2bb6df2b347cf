package app

import (
	"context"
	"io"
	"testing"

	"github.com/ochronus/gocatbox/catbox"
	"github.com/ochronus/gocatbox/internal/config"
	"github.com/sirupsen/logrus"
)

type mockCatboxClient struct{}

func (m *mockCatboxClient) Authenticated() bool { return false }
func (m *mockCatboxClient) UploadFile(context.Context, []byte, string) (string, error) {
	return "https://files.catbox.moe/mock.png", nil
}
func (m *mockCatboxClient) UploadReader(context.Context, io.Reader, string) (string, error) {
	return "https://files.catbox.moe/mock.png", nil
}
func (m *mockCatboxClient) UploadURL(context.Context, string) (string, error) {
	return "https://files.catbox.moe/mock.png", nil
}
func (m *mockCatboxClient) DeleteFiles(context.Context, []string) (string, error) { return "", nil }
func (m *mockCatboxClient) CreateAlbum(context.Context, catbox.CreateAlbumOptions) (string, error) {
	return "", nil
}
func (m *mockCatboxClient) EditAlbum(context.Context, catbox.EditAlbumOptions) (string, error) {
	return "", nil
}
func (m *mockCatboxClient) AddToAlbum(context.Context, string, []string) (string, error) {
	return "", nil
}
func (m *mockCatboxClient) RemoveFromAlbum(context.Context, string, []string) (string, error) {
	return "", nil
}
func (m *mockCatboxClient) DeleteAlbum(context.Context, string) (string, error) { return "", nil }

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Catbox.UserHash = "hash"
	return cfg
}

func TestNewContainerDefaults(t *testing.T) {
	cfg := baseConfig()

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if container.Logger == nil {
		t.Fatal("expected logger to be initialized")
	}
	if container.Logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected info level, got %s", container.Logger.GetLevel())
	}
	client, ok := container.CatboxClient.(*catbox.Client)
	if !ok {
		t.Fatalf("expected *catbox.Client, got %T", container.CatboxClient)
	}
	if !client.Authenticated() {
		t.Error("expected client to carry the configured userhash")
	}
}

func TestNewContainerAnonymous(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Catbox.Timeout = 5

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if container.CatboxClient.Authenticated() {
		t.Error("expected anonymous client")
	}
}

func TestContainerOverrides(t *testing.T) {
	cfg := baseConfig()
	mockClient := &mockCatboxClient{}
	customLogger := buildDefaultLogger("debug")

	container, err := NewContainer(
		cfg,
		WithLogger(customLogger),
		WithCatboxClient(mockClient),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if container.Logger != customLogger {
		t.Error("expected custom logger to be used")
	}
	if container.CatboxClient != mockClient {
		t.Error("expected custom catbox client to be used")
	}
}

func TestNewContainerNilConfigError(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewContainerEmptyEndpointError(t *testing.T) {
	cfg := baseConfig()
	cfg.Catbox.Endpoint = ""
	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

func TestWithLoggerNilError(t *testing.T) {
	cfg := baseConfig()
	_, err := NewContainer(cfg, WithLogger(nil))
	if err == nil {
		t.Fatal("expected error when logger is nil")
	}
}

func TestWithCatboxClientNilError(t *testing.T) {
	cfg := baseConfig()
	_, err := NewContainer(cfg, WithCatboxClient(nil))
	if err == nil {
		t.Fatal("expected error when catbox client is nil")
	}
}

func TestBuildDefaultLoggerInvalidLevel(t *testing.T) {
	logger := buildDefaultLogger("nonsense")
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected fallback to info, got %s", logger.GetLevel())
	}
}
