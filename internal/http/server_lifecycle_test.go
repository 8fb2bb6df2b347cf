package http

import (
	"context"
	"testing"
	"time"

	"github.com/ochronus/gocatbox/catbox"
	"github.com/ochronus/gocatbox/internal/app"
	"github.com/ochronus/gocatbox/internal/config"
	"github.com/sirupsen/logrus"
)

func TestServerGracefulShutdownWithContext(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Loglevel = "error"
	cfg.Relay.Port = 0 // let the OS pick a free port

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel) // silence output in tests

	client, err := catbox.NewClient("", catbox.WithLogger(logger))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	container := &app.Container{
		Config:       cfg,
		Logger:       logger,
		CatboxClient: client,
	}

	s := NewServer(container)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.StartWithContext(ctx)
	}()

	// Allow the server to start listening.
	time.Sleep(100 * time.Millisecond)

	// Trigger graceful shutdown.
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected graceful shutdown without error, got: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
