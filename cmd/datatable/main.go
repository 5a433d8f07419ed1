package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matst80/slask-table/pkg/config"
	"github.com/matst80/slask-table/pkg/filter"
	"github.com/matst80/slask-table/pkg/logging"
	"github.com/matst80/slask-table/pkg/storage"
	"github.com/matst80/slask-table/pkg/table"
	"github.com/matst80/slask-table/pkg/types"
)

// version is set at build time.
var version = "development version"

type options struct {
	configFile string
	dataFile   string
	strict     bool
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.dataFile != "" {
		cfg.DataFile = o.dataFile
	}
	if o.strict {
		cfg.StrictRangeBounds = true
	}
	return cfg, nil
}

func loadTable(cfg *config.Config) (*table.Table, error) {
	records, err := storage.NewDiskStorage("").LoadRecords(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	registry := filter.NewRegistry(filter.RegistryOptions{StrictBounds: cfg.StrictRangeBounds})
	zap.L().Info("dataset loaded", zap.Int("records", len(records)), zap.String("file", cfg.DataFile), zap.Bool("strictBounds", cfg.StrictRangeBounds))
	return table.NewTable(records, types.DefaultColumns(), registry), nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "datatable",
		Short:         "Searchable, sortable and groupable product table",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().StringVarP(&opts.dataFile, "data", "d", "", "JSON dataset, the bundled dataset when empty")
	rootCmd.PersistentFlags().BoolVar(&opts.strict, "strict-bounds", false, "unset range bounds match no rows")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newColumnsCmd(opts))
	rootCmd.AddCommand(newEventsCmd(opts))
	return rootCmd
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setupLogging installs the configured logger and returns its cleanup.
func setupLogging(cfg *config.Config) func() {
	_, done := logging.Setup(cfg.Log)
	return done
}
