package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestSSHServerServeStops(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if srv.store == nil {
		t.Fatal("Server should share a leaderboard")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, expected a clean shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if _, err := srv.store.HighScore("classic"); err == nil {
		t.Error("Leaderboard should be closed after shutdown")
	}
}

func TestResolveHostKeyCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "host_key")
	got, err := resolveHostKey(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("resolveHostKey = %q, expected %q", got, path)
	}
}
