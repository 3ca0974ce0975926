// Package cli wires configuration, logging and storage for the sashes
// command line.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/domain/build"
	"github.com/bnema/sashes/internal/domain/repository"
	"github.com/bnema/sashes/internal/infrastructure/config"
	"github.com/bnema/sashes/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/sashes/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigFile    string
	ConfigManager *config.Manager
	Theme      *styles.Theme
	BuildInfo  build.Info

	ctx    context.Context
	logger zerolog.Logger

	db      *sql.DB
	journal repository.JournalRepository
}

// AppOptions customises NewApp.
type AppOptions struct {
	// ConfigDir overrides the XDG config directory.
	ConfigDir string
	// LogLevel overrides the configured level when set.
	LogLevel string
}

// NewApp loads the configuration and builds the logger.
func NewApp(opts AppOptions) (*App, error) {
	var managerOpts []config.ManagerOption
	if opts.ConfigDir != "" {
		managerOpts = append(managerOpts, config.WithConfigDir(opts.ConfigDir))
	}

	manager, err := config.NewManager(managerOpts...)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	logCfg := logging.ConfigFromEnv(cfg.Logging.LoggerConfig())
	if opts.LogLevel != "" {
		logCfg.Level = logging.ParseLevel(opts.LogLevel, logCfg.Level)
	}
	logger := logging.New(logCfg)
	ctx := logging.WithContext(context.Background(), logger)

	logger.Debug().Str("config_file", manager.ConfigFile()).Msg("configuration loaded")

	return &App{
		Config:        cfg,
		ConfigFile:    manager.ConfigFile(),
		ConfigManager: manager,
		Theme:         styles.NewTheme(),
		ctx:           ctx,
		logger:        logger,
	}, nil
}

// Context returns the application context carrying the logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// JournalPath resolves the journal database path: the override when set,
// else the configured path.
func (a *App) JournalPath(override string) string {
	if override != "" {
		return override
	}
	if a.Config.Events.Journal.Path != "" {
		return a.Config.Events.Journal.Path
	}
	return config.GetJournalFile()
}

// Journal opens the event journal at path. The connection is reused for
// the lifetime of the App.
func (a *App) Journal(path string) (repository.JournalRepository, error) {
	if a.journal != nil {
		return a.journal, nil
	}

	db, err := sqlite.NewConnection(a.ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	a.db = db
	a.journal = sqlite.NewJournalRepository(db)

	a.logger.Debug().Str("path", path).Msg("journal opened")
	return a.journal, nil
}

// Close releases the journal connection.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := sqlite.Close(a.db)
	a.db = nil
	a.journal = nil
	return err
}
