package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"dbu-go/internal/dbu"
)

// Secret is a credential value scoped to a single run. It decodes from
// TOML like a plain string but renders redacted everywhere it is printed,
// so credentials never leak into logs or console output.
type Secret string

// String implements fmt.Stringer with a redacted rendering.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}

// Value returns the underlying credential for handing to the transport.
func (s Secret) Value() string { return string(s) }

// Config represents the main configuration for dbu.
type Config struct {
	SourceDir      string `toml:"source_dir"`
	DestRoot       string `toml:"dest_root"`
	Suffix         string `toml:"suffix"`
	FileDateFormat string `toml:"file_date_format"`
	PathDateFormat string `toml:"path_date_format"`
	LogDir         string `toml:"log_dir"`

	Store      StoreConfig      `toml:"store"`
	Encryption EncryptionConfig `toml:"encryption"`
}

// StoreConfig represents configuration for the object store backend.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "s3", "filesystem", or "memory"

	// S3-specific fields (only used when Type == "s3")
	Bucket          string `toml:"bucket,omitempty"`
	Region          string `toml:"region,omitempty"`
	AccessKeyID     Secret `toml:"access_key_id,omitempty"`
	SecretAccessKey Secret `toml:"secret_access_key,omitempty"`

	// Filesystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`
}

// EncryptionConfig holds the optional age recipient the archive is sealed
// to before upload. Empty means the archive ships as-is.
type EncryptionConfig struct {
	Recipient string `toml:"recipient,omitempty"`
}

// NewConfig creates a Config with the provided paths and default settings.
func NewConfig(sourceDir, destRoot string) *Config {
	cfg := &Config{
		SourceDir: sourceDir,
		DestRoot:  destRoot,
		Store:     StoreConfig{Type: "s3"},
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in the fields that have well-known defaults.
func (c *Config) applyDefaults() {
	if c.Suffix == "" {
		c.Suffix = dbu.DefaultSuffix
	}
	if c.FileDateFormat == "" {
		c.FileDateFormat = dbu.DefaultFileDateFormat
	}
	if c.PathDateFormat == "" {
		c.PathDateFormat = dbu.DefaultPathDateFormat
	}
}

// ApplyEnv overrides config values from the environment. Credentials in
// particular are commonly injected this way rather than written to disk.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DBU_SOURCE_DIR"); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv("DBU_DEST_ROOT"); v != "" {
		c.DestRoot = v
	}
	if v := os.Getenv("DBU_BUCKET"); v != "" {
		c.Store.Bucket = v
	}
	if v := os.Getenv("DBU_REGION"); v != "" {
		c.Store.Region = v
	}
	if v := os.Getenv("DBU_ACCESS_KEY_ID"); v != "" {
		c.Store.AccessKeyID = Secret(v)
	}
	if v := os.Getenv("DBU_SECRET_ACCESS_KEY"); v != "" {
		c.Store.SecretAccessKey = Secret(v)
	}
}

// Validate checks the fields every run needs regardless of store type.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir must be set")
	}
	if c.DestRoot == "" {
		return fmt.Errorf("dest_root must be set")
	}
	if c.Store.Type == "" {
		return fmt.Errorf("store.type must be set")
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader and applies defaults.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path and applies
// environment overrides on top.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config. It refuses to clobber an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
