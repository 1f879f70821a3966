package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Watcher keeps the last valid configuration and notifies subscribers when
// the config file changes. Invalid edits are logged and ignored.
type Watcher struct {
	v      *viper.Viper
	logger *zap.Logger

	mu        sync.RWMutex
	current   *Config
	listeners []func(*Config)
}

// NewWatcher loads the configuration and prepares it for watching
func NewWatcher(configPath string, logger *zap.Logger) (*Watcher, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &Watcher{v: v, logger: logger.Named("config"), current: cfg}, nil
}

// Config returns the last valid configuration
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers fn to run after each successful reload
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Start begins watching the config file. Without a config file it is a no-op.
func (w *Watcher) Start() {
	if w.v.ConfigFileUsed() == "" {
		return
	}
	w.v.OnConfigChange(func(e fsnotify.Event) {
		w.reload(e.Name)
	})
	w.v.WatchConfig()
	w.logger.Info("Watching configuration", zap.String("file", w.v.ConfigFileUsed()))
}

func (w *Watcher) reload(file string) {
	cfg, err := decode(w.v)
	if err != nil {
		w.logger.Warn("Ignoring invalid configuration change", zap.String("file", file), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = cfg
	listeners := append([]func(*Config){}, w.listeners...)
	w.mu.Unlock()

	w.logger.Info("Configuration reloaded", zap.String("file", file))
	for _, fn := range listeners {
		fn(cfg)
	}
}
