package app

import (
	"context"
	"fmt"
	"os"

	"dbu-go/internal/config"
	"dbu-go/internal/dbu"
	"dbu-go/internal/encrypt"
	"dbu-go/internal/store"
)

// App is the application layer between the CLI and the pipeline Service.
// It constructs all dependencies from config and owns the log file
// lifecycle. Everything it builds lives for exactly one run.
type App struct {
	cfg     *config.Config
	store   dbu.ObjectStore
	service *dbu.Service
	runID   string
	logFile *os.File
}

// New creates a fully wired App from the given config.
// The caller must call Close when done.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	runID := dbu.UUIDGenerator{}.New()

	logDir := cfg.LogDir
	if logDir == "" {
		defaults, err := GetDefaults()
		if err != nil {
			return nil, err
		}
		logDir = defaults["log_dir"]
	}
	logger, logFile, err := newLogger(logDir, runID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	st, err := store.NewObjectStoreFromConfig(ctx, cfg.Store)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating object store: %w", err)
	}

	enc, err := encrypt.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	log := &slogAdapter{l: logger}
	selector := dbu.NewSelector(cfg.Suffix, log)
	archiver := dbu.NewArchiver(cfg.DestRoot, log)
	svc := dbu.NewService(selector, archiver, st, enc, dbu.ServiceOptions{
		SourceDir:      cfg.SourceDir,
		Bucket:         cfg.Store.Bucket,
		FileDateFormat: cfg.FileDateFormat,
		PathDateFormat: cfg.PathDateFormat,
	}, log, dbu.RealClock{})

	return &App{
		cfg:     cfg,
		store:   st,
		service: svc,
		runID:   runID,
		logFile: logFile,
	}, nil
}

// RunID identifies this run in the logs.
func (a *App) RunID() string { return a.runID }

// Run executes the whole pipeline once.
func (a *App) Run(ctx context.Context) (*dbu.RunResult, error) {
	return a.service.Run(ctx)
}

// Plan runs only the selection step; nothing is copied or uploaded.
func (a *App) Plan() (dbu.DateStamp, []dbu.CandidateFile, error) {
	return a.service.Plan()
}

// Close releases the resources held for the run.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
