package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/config"
	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/generation"
	"github.com/abhisek/edupath/internal/llm"
	"github.com/abhisek/edupath/internal/logging"
	"github.com/abhisek/edupath/internal/notes"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/store"
)

var (
	v       = viper.New()
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "edupath",
	Short: "AI-generated learning paths in your terminal",
	Long: "EduPath turns a topic into a day-by-day learning path with videos, reading,\n" +
		"exercises and assessments, and tracks your progress through it.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/edupath/config.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides EDUPATH_DB env var)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Log file path")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	bindFlags(flags)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"db":        "db",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = v.BindPFlag(key, f)
		}
	})
}

// env holds what every command needs: settings, the store and a logger.
type env struct {
	cfg    *config.Config
	store  *store.Store
	logger *zap.Logger
}

type setupOptions struct {
	// console logs to stderr; the TUI leaves it off.
	console bool
	// defaultLogFile logs to the state directory when no file is set.
	defaultLogFile bool
}

// setup loads configuration, builds the logger and opens the store.
func setup(opts setupOptions) (*env, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := cfg.Log
	if logCfg.File == "" && opts.defaultLogFile {
		if f, err := logging.DefaultFile(); err == nil {
			logCfg.File = f
		}
	}
	logger, err := logging.New(logCfg, logging.Options{Console: opts.console})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	return &env{cfg: cfg, store: st, logger: logger}, nil
}

func (e *env) Close() {
	_ = e.logger.Sync()
	_ = e.store.Close()
}

// resolveDBPath returns the database path using --db or the db setting
// (highest priority), then EDUPATH_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// orchestrator wires the configured LLM provider into a generation
// orchestrator that saves into the store.
func (e *env) orchestrator(ctx context.Context) (*generation.Orchestrator, error) {
	if err := e.cfg.ValidateLLM(); err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, e.cfg.LLM.ClientConfig(), e.store.EventRepo(), e.logger)
	if err != nil {
		return nil, err
	}
	gen := curriculum.NewLLMGenerator(provider, e.cfg.Generation.Curriculum())
	return generation.NewOrchestrator(gen, e.store.PathRepo(), generation.WithLogger(e.logger)), nil
}

// baseServices are the store-backed services without generation.
func (e *env) baseServices() screen.Services {
	return screen.Services{
		Paths:        e.store.PathRepo(),
		Progress:     e.store.ProgressRepo(),
		Cursors:      e.store.CursorRepo(),
		Events:       e.store.EventRepo(),
		Logger:       e.logger,
		NotesOptions: []notes.Option{notes.WithSavedWindow(e.cfg.Notes.SavedWindow)},
		ExportDir:    ".",
	}
}

// services builds the TUI dependencies. A missing LLM provider leaves
// generation disabled rather than failing.
func (e *env) services(ctx context.Context) screen.Services {
	svc := e.baseServices()
	orch, err := e.orchestrator(ctx)
	switch {
	case err == nil:
		svc.Generator = orch
	case errors.Is(err, config.ErrNoProvider):
		e.logger.Info("generation disabled", zap.Error(err))
	default:
		e.logger.Warn("LLM provider unavailable", zap.Error(err))
	}
	return svc
}
