package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dbu-go/internal/app"
	"dbu-go/internal/config"
	"dbu-go/internal/dbu"
)

// newTestConfig wires a memory-store config over temp dirs.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig(t.TempDir(), t.TempDir())
	cfg.Store = config.StoreConfig{Type: "memory", Bucket: "test-bucket"}
	cfg.LogDir = filepath.Join(t.TempDir(), "log")
	return cfg
}

func TestApp_Run(t *testing.T) {
	t.Run("ships today's files end to end", func(t *testing.T) {
		cfg := newTestConfig(t)

		// A file named for today, per the configured filename token.
		token := time.Now().Format(cfg.FileDateFormat)
		name := "db_" + token + ".bak"
		if err := os.WriteFile(filepath.Join(cfg.SourceDir, name), []byte("dump"), 0644); err != nil {
			t.Fatal(err)
		}

		a, err := app.New(context.Background(), cfg)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer a.Close()

		res, err := a.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if res.State != dbu.StateUploadSucceeded {
			t.Errorf("State = %q, want %q", res.State, dbu.StateUploadSucceeded)
		}

		wantKey := time.Now().Format(cfg.PathDateFormat) + "/" + time.Now().Format(cfg.PathDateFormat) + ".zip"
		if res.Key != wantKey {
			t.Errorf("Key = %q, want %q", res.Key, wantKey)
		}

		// The run left a log trail.
		if _, err := os.Stat(filepath.Join(cfg.LogDir, "dbu.log")); err != nil {
			t.Errorf("log file missing: %v", err)
		}
	})

	t.Run("empty source ends with ErrNoMatches", func(t *testing.T) {
		cfg := newTestConfig(t)

		a, err := app.New(context.Background(), cfg)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer a.Close()

		_, err = a.Run(context.Background())
		if !errors.Is(err, dbu.ErrNoMatches) {
			t.Errorf("Run() error = %v, want ErrNoMatches", err)
		}
	})

	t.Run("rejects an invalid config", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.SourceDir = ""

		if _, err := app.New(context.Background(), cfg); err == nil {
			t.Error("New() error = nil, want validation failure")
		}
	})
}

func TestApp_Plan(t *testing.T) {
	cfg := newTestConfig(t)

	token := time.Now().Format(cfg.FileDateFormat)
	if err := os.WriteFile(filepath.Join(cfg.SourceDir, "db_"+token+".bak"), []byte("dump"), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	_, files, err := a.Plan()
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Plan() returned %d files, want 1", len(files))
	}

	// Plan never touches the destination root.
	entries, err := os.ReadDir(cfg.DestRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("destination root has %d entries after Plan(), want 0", len(entries))
	}
}
