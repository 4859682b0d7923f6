package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dbu-go/internal/app"
	"dbu-go/internal/config"
	"dbu-go/internal/dbu"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, dbu.ErrNoMatches) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer
// app.Close().
func newApp(cmd *cobra.Command) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "dbu",
	Short: "Daily backup uploader",
	Long: `dbu selects today's backup files from a source directory, archives
them into a dated zip, and uploads the archive to an object store.

Exit codes: 0 on a successful upload, 3 when no files match today's date,
1 on any failure.`,
	SilenceUsage: true,
}

// run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Select, archive, and upload today's backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Run(cmd.Context())
		if err != nil {
			if errors.Is(err, dbu.ErrNoMatches) {
				fmt.Println("No files found for the current date.")
			}
			return err
		}

		fmt.Printf("Uploaded %s (%d file(s)) to %s/%s\n",
			filepath.Base(res.ArchivePath), res.Selected, res.Bucket, res.Key)
		return nil
	},
}

// plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a run would ship, without copying or uploading",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		stamp, files, err := a.Plan()
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Println("No files found for the current date.")
			return dbu.ErrNoMatches
		}

		fmt.Printf("Would ship %d file(s) under key prefix %s/:\n", len(files), stamp.PathToken)
		for _, f := range files {
			fmt.Printf("  %s\n", f.Name)
		}
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init SOURCE_DIR DEST_ROOT",
	Short: "Initialize configuration",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		sourceDir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving source dir: %w", err)
		}
		destRoot, err := filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("resolving destination root: %w", err)
		}

		cfg := config.NewConfig(sourceDir, destRoot)
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Source Dir: %s\n", sourceDir)
		fmt.Printf("Dest Root:  %s\n", destRoot)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Source Dir:  %s\n", cfg.SourceDir)
		fmt.Printf("Dest Root:   %s\n", cfg.DestRoot)
		fmt.Printf("Suffix:      %s\n", cfg.Suffix)
		fmt.Printf("Store Type:  %s\n", cfg.Store.Type)
		if cfg.Store.Type == "s3" {
			fmt.Printf("Bucket:      %s\n", cfg.Store.Bucket)
			fmt.Printf("Region:      %s\n", cfg.Store.Region)
			fmt.Printf("Access Key:  %s\n", cfg.Store.AccessKeyID)
			fmt.Printf("Secret Key:  %s\n", cfg.Store.SecretAccessKey)
		}
		if cfg.Store.Type == "filesystem" {
			fmt.Printf("FS Root:     %s\n", cfg.Store.FSRoot)
		}
		if cfg.Encryption.Recipient != "" {
			fmt.Printf("Encrypt To:  %s\n", cfg.Encryption.Recipient)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
}
