// Package watch rescans JavaScript files on save and pushes fresh tokens to
// connected WebSocket clients.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/conduit-lang/jsscan/compiler/errors"
	"github.com/conduit-lang/jsscan/compiler/scanner"
	"github.com/conduit-lang/jsscan/internal/format"
	"github.com/conduit-lang/jsscan/internal/wsbus"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// RescanMessage is broadcast to every connected client whenever a watched
// file changes.
type RescanMessage struct {
	Type   string                `json:"type"`
	File   string                `json:"file"`
	Tokens []format.TokenRecord  `json:"tokens,omitempty"`
	Error  *RescanMessageError   `json:"error,omitempty"`
}

// RescanMessageError mirrors compiler/errors.CompilerError's salient fields.
type RescanMessageError struct {
	Phase   string `json:"phase"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// Watcher rescans .js and .mjs files under a root directory on every write
// or create event and broadcasts the result over hub. Each event triggers
// its own rescan; bursts of editor saves are not debounced.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	hub       *wsbus.Hub
	logger    *zap.Logger
	debounce  time.Duration

	pending map[string]bool
	timer   *time.Timer
}

// New creates a Watcher that broadcasts rescans to hub.
func New(hub *wsbus.Hub, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: creating fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		fsWatcher: fw,
		hub:       hub,
		logger:    logger,
		debounce:  100 * time.Millisecond,
		pending:   make(map[string]bool),
	}, nil
}

// AddDir registers root (recursively) for watching.
func (w *Watcher) AddDir(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			if err := w.fsWatcher.Add(path); err != nil {
				return fmt.Errorf("watch: adding %s: %w", path, err)
			}
		}
		return nil
	})
}

// Run processes fsnotify events until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsWatcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".js") && !strings.HasSuffix(ev.Name, ".mjs") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.rescan(ev.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("fsnotify error", zap.Error(err))
		}
	}
}

// rescan reads, tokenizes, and broadcasts the result for a single file.
func (w *Watcher) rescan(path string) {
	msg, err := rescanFile(path)
	if err != nil {
		w.logger.Warn("failed to read changed file", zap.String("file", path), zap.Error(err))
		return
	}

	body, err := json.Marshal(msg)
	if err != nil {
		w.logger.Warn("failed to marshal rescan message", zap.Error(err))
		return
	}
	if w.hub != nil {
		w.hub.Broadcast(body)
	}
	w.logger.Info("rescanned file", zap.String("file", path), zap.Bool("errored", msg.Error != nil))
}

// rescanFile tokenizes a single file's current contents into a
// RescanMessage, kept separate from rescan so it can be tested without a
// running fsnotify loop or hub.
func rescanFile(path string) (RescanMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RescanMessage{}, err
	}
	source := string(data)

	msg := RescanMessage{Type: "rescan", File: path}
	items, scanErr := scanner.Tokenize(source)
	if scanErr != nil {
		if ce, ok := scanErr.(errors.CompilerError); ok {
			msg.Error = &RescanMessageError{
				Phase: ce.Phase, Code: ce.Code, Message: ce.Message, Line: ce.Location.Line,
			}
		} else {
			msg.Error = &RescanMessageError{Message: scanErr.Error()}
		}
	} else {
		msg.Tokens = format.ToRecords(source, items)
	}
	return msg, nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
