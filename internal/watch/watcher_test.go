package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/conduit-lang/jsscan/internal/wsbus"
	"go.uber.org/zap"
)

func TestRescanFileSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte("let x = 1;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	msg, err := rescanFile(path)
	if err != nil {
		t.Fatalf("rescanFile: %v", err)
	}
	if msg.Error != nil {
		t.Fatalf("unexpected scan error in message: %+v", msg.Error)
	}
	if len(msg.Tokens) == 0 {
		t.Fatalf("expected at least one token")
	}
}

func TestRescanFileScannerError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.js")
	if err := os.WriteFile(path, []byte(`"unterminated`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	msg, err := rescanFile(path)
	if err != nil {
		t.Fatalf("rescanFile: %v", err)
	}
	if msg.Error == nil {
		t.Fatalf("expected a scan error in the message")
	}
	if msg.Error.Phase != "scanner" {
		t.Errorf("Error.Phase = %q, want scanner", msg.Error.Phase)
	}
}

func TestWatcherAddDirAndRunRespondsToWrites(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	hub := wsbus.NewHub(ctx, zap.NewNop())
	go hub.Run()
	defer cancel()

	w, err := New(hub, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}

	runCtx, runCancel := context.WithTimeout(ctx, time.Second)
	defer runCancel()
	go w.Run(runCtx)

	path := filepath.Join(dir, "live.js")
	if err := os.WriteFile(path, []byte("const y = 2;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Give the fsnotify event a moment to be processed; this is a
	// smoke test of wiring, not a timing-sensitive assertion.
	time.Sleep(50 * time.Millisecond)
}
