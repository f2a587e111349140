package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Loader produces a validated configuration.
type Loader func() (Config, error)

// FileLoader reads path with the defaults and environment layers only.
func FileLoader(path string) Loader {
	return func() (Config, error) {
		cfg, err := Load(path)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}
}

// FlagLoader re-runs the whole precedence chain for fs, so flags given at
// startup keep winning over later edits to the file.
func FlagLoader(fs *pflag.FlagSet) Loader {
	return func() (Config, error) {
		cfg, _, err := Resolve(fs)
		return cfg, err
	}
}

// Watcher reloads a config file when it changes on disk. Rapid saves are
// debounced into one reload.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	load     Loader
	reload   func(Config)
	logger   *zap.Logger

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewWatcher watches the directory holding path, since editors often
// replace files instead of writing them in place. On each change load
// builds the configuration, FileLoader(path) when nil, and reload receives
// every one that loads and validates.
func NewWatcher(path string, load Loader, reload func(Config), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if load == nil {
		load = FileLoader(path)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		load:     load,
		reload:   reload,
		logger:   logger.Named("config"),
		done:     make(chan struct{}),
	}, nil
}

// Start runs the event loop until ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx)
}

// Stop ends the loop and releases the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Debug("closing config watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", zap.Error(err))
		case <-timer.C:
			w.apply()
		}
	}
}

func (w *Watcher) apply() {
	cfg, err := w.load()
	if err != nil {
		w.logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("config reloaded", zap.String("path", w.path))
	w.reload(cfg)
}
