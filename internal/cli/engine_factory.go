package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/bisim"
	"github.com/aretw0/bisim/internal/config"
	"github.com/aretw0/bisim/internal/logging"
	"github.com/aretw0/bisim/pkg/adapters/file"
	"github.com/aretw0/bisim/pkg/adapters/loam"
	"github.com/aretw0/bisim/pkg/adapters/memory"
	"github.com/aretw0/bisim/pkg/adapters/redis"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/observability"
	"github.com/aretw0/bisim/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Options carries the global CLI flags.
type Options struct {
	Dir        string
	ConfigPath string
	Debug      bool
	LogLevel   string
	Trace      bool
	// Metrics registers refinement collectors on a fresh registry.
	Metrics bool
}

// App bundles everything a command needs.
type App struct {
	Engine   *bisim.Engine
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	closers  []func() error
}

// Close releases backend connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Setup loads the configuration and builds an engine with standard CLI conventions.
func Setup(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(opts.Dir, config.FileName)
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(opts.Debug, opts.LogLevel, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger}

	// 1. Graph source: the graphs entry is relative to the project (or config) directory.
	base := opts.Dir
	if opts.ConfigPath != "" {
		base = filepath.Dir(cfgPath)
	}
	dir := resolve(base, cfg.Graphs)
	if dir == "" {
		dir = "."
	}
	loader, err := NewLoader(dir)
	if err != nil {
		return nil, err
	}

	// 2. Result store
	store, closer, err := NewStore(cfg.Store, base)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	// 3. Hooks
	hooks := []domain.LifecycleHooks{}
	if opts.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	if opts.Metrics {
		app.Registry = prometheus.NewRegistry()
		hooks = append(hooks, observability.NewMetrics(app.Registry).Hooks())
	}

	engine, err := bisim.New(dir,
		bisim.WithLoader(loader),
		bisim.WithStore(store),
		bisim.WithLogger(logger),
		bisim.WithLifecycleHooks(observability.Combine(hooks...)),
		bisim.WithTrace(opts.Trace),
	)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = engine

	logger.Debug("engine ready", "graphs", dir, "store", cfg.Store.Backend)
	return app, nil
}

// NewLoader picks the graph source for dir.
// A directory holding only Markdown notes is read through Loam as a single graph;
// anything else goes through the YAML/JSON document loader.
func NewLoader(dir string) (ports.GraphLoader, error) {
	if isNoteRepository(dir) {
		return loam.Open(dir)
	}
	return file.NewLoader(dir), nil
}

// NewStore builds the configured result store. The returned closer may be nil.
// Relative file paths resolve against base.
func NewStore(cfg *config.StoreConfig, base string) (ports.ResultStore, func() error, error) {
	if cfg == nil {
		return memory.NewStore(), nil, nil
	}
	switch cfg.Backend {
	case config.BackendMemory, "":
		return memory.NewStore(), nil, nil
	case config.BackendFile:
		return file.NewStore(resolve(base, cfg.Path)), nil, nil
	case config.BackendRedis:
		if cfg.Redis == nil {
			return nil, nil, fmt.Errorf("redis backend requires store.redis")
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
}

// NewLogger configures the application logger.
// --debug forces debug level; otherwise the flag beats the config file.
func NewLogger(debug bool, flagLevel, cfgLevel string) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	level := cfgLevel
	if flagLevel != "" {
		level = flagLevel
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	// Quiet by default: only warnings and errors reach stderr.
	if level == "" {
		lvl = slog.LevelWarn
	}
	return logging.New(lvl), nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// isNoteRepository reports whether dir contains Markdown files and no graph documents.
func isNoteRepository(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	notes := false
	for _, e := range entries {
		if e.IsDir() || e.Name() == config.FileName {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".md":
			notes = true
		case ".yaml", ".yml", ".json":
			return false
		}
	}
	return notes
}
