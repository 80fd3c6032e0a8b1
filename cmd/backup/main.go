package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"playtracker/internal/config"
	"playtracker/internal/service"
	"playtracker/internal/store"
)

var (
	v = viper.New()

	rootCmd = &cobra.Command{
		Use:   "backup",
		Short: "PlayTracker dataset backup tool",
		Long: `Export, import or migrate the PlayTracker dataset.

The source store is selected the same way as for the server (STORE,
DATA_FILE, DB_PATH, DATABASE_URL, BADGER_DIR, BLOB_URL), and --store
overrides STORE.`,
		SilenceUsage: true,
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export the dataset to a JSON file",
		RunE:  runExport,
	}

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Replace the dataset with a JSON backup",
		RunE:  runImport,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Copy the dataset into another store backend",
		Long: `Copy the dataset from the configured store into another backend.

--target is the location for the destination: a file path for file,
sqlite and badger, or a URL for postgres, mysql and blob.`,
		RunE: runMigrate,
	}
)

func init() {
	rootCmd.PersistentFlags().String("store", "", "source store backend (overrides STORE)")
	_ = v.BindPFlag("STORE", rootCmd.PersistentFlags().Lookup("store"))

	exportCmd.Flags().StringP("output", "o", "", "output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	importCmd.Flags().StringP("input", "i", "", "input file path")
	_ = importCmd.MarkFlagRequired("input")
	importCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	migrateCmd.Flags().String("to", "", "destination store backend")
	_ = migrateCmd.MarkFlagRequired("to")
	migrateCmd.Flags().String("target", "", "destination path or URL")

	rootCmd.AddCommand(exportCmd, importCmd, migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// openSource opens the configured store
func openSource(ctx context.Context) (store.Store, *config.Config, error) {
	cfg := config.LoadViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	return s, cfg, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	src, cfg, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	// Ensure directory exists
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	log.Printf("Exporting %s store to: %s", cfg.Store, outputPath)
	if err := service.NewBackupService(src, cfg.Store).Export(ctx, outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fileInfo, err := os.Stat(outputPath)
	if err == nil {
		log.Printf("Export complete! File size: %.2f KB", float64(fileInfo.Size())/1024)
	}
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		fmt.Print("WARNING: This will replace all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return nil
		}
	}

	ctx := cmd.Context()
	dst, cfg, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer dst.Close()

	log.Printf("Importing %s into %s store", inputPath, cfg.Store)
	if err := service.NewBackupService(dst, cfg.Store).Import(ctx, inputPath); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	log.Println("Import complete!")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	src, cfg, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	to, _ := cmd.Flags().GetString("to")
	target, _ := cmd.Flags().GetString("target")
	dstCfg := destinationConfig(*cfg, to, target)
	if err := dstCfg.Validate(); err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}
	if dstCfg == *cfg {
		return fmt.Errorf("source and destination are the same %s store", cfg.Store)
	}

	dst, err := store.Open(ctx, &dstCfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", dstCfg.Store, err)
	}
	defer dst.Close()

	log.Printf("Migrating %s store to %s store", cfg.Store, dstCfg.Store)
	return service.NewBackupService(src, cfg.Store).MigrateTo(ctx, dst)
}

// destinationConfig copies the source config and points it at the target
func destinationConfig(cfg config.Config, to, target string) config.Config {
	cfg.Store = to
	if target == "" {
		return cfg
	}

	switch to {
	case config.StoreFile:
		cfg.DataFile = target
	case config.StoreSQLite:
		cfg.DatabasePath = target
	case config.StorePostgres, config.StoreMySQL:
		cfg.DatabaseURL = target
	case config.StoreBadger:
		cfg.BadgerDir = target
	case config.StoreBlob:
		cfg.BlobURL = target
	}
	return cfg
}
