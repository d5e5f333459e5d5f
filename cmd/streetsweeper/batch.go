package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/streetsweeper/internal/batch"
	"github.com/streetsweeper/internal/config"
	"github.com/streetsweeper/internal/db"
	"github.com/streetsweeper/internal/debug"
	"github.com/streetsweeper/internal/normalize"
	"github.com/streetsweeper/internal/source"
)

// createBatchCmd groups the Postgres-backed bulk commands.
func createBatchCmd(debugFlag *bool) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Bulk-parse addresses stored in PostgreSQL",
		Long:  `Load raw addresses into raw_address, parse them with a worker pool into parsed_address, and report progress`,
	}

	batchCmd.AddCommand(createBatchInitCmd())
	batchCmd.AddCommand(createBatchImportCmd())
	batchCmd.AddCommand(createBatchRunCmd(debugFlag))
	batchCmd.AddCommand(createBatchStatsCmd())

	return batchCmd
}

// withStore loads the configuration, connects and hands fn a store.
func withStore(ctx context.Context, fn func(cfg *config.Config, store *db.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	conn, err := db.NewConnection(ctx, cfg.PostgresDSN(), cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(cfg, db.NewStore(conn.DB))
}

func createBatchInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the raw_address and parsed_address tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ *config.Config, store *db.Store) error {
				if err := store.EnsureSchema(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Schema ready")
				return nil
			})
		},
	}
}

func createBatchImportCmd() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "import [filename]",
		Short: "Import addresses as pending rows",
		Long:  `Import one address per line, or one column of a CSV file with --csv-column`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addresses, stats, err := source.ReadFile(args[0], column)
			if err != nil {
				return err
			}

			return withStore(cmd.Context(), func(_ *config.Config, store *db.Store) error {
				n, err := store.Import(cmd.Context(), addresses)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d addresses from %s (%d blank, %d invalid skipped)\n",
					n, args[0], stats.Blank, stats.Invalid)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&column, "csv-column", "", "read this column of a CSV file instead of plain lines")

	return cmd
}

func createBatchRunCmd(debugFlag *bool) *cobra.Command {
	var workers, size int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Parse every pending row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withStore(ctx, func(cfg *config.Config, store *db.Store) error {
				debugOn := *debugFlag || cfg.Debug
				p, err := newParser(debugOn)
				if err != nil {
					return err
				}

				runner := &batch.Runner{
					Parser:    p,
					Store:     store,
					Workers:   cfg.BatchWorkers,
					BatchSize: cfg.BatchSize,
					Options:   normalize.Options{AvoidRedundantStreetType: cfg.AvoidRedundantStreetType},
					Log:       debug.New(debugOn, "batch"),
				}
				if workers > 0 {
					runner.Workers = workers
				}
				if size > 0 {
					runner.BatchSize = size
				}

				stats, err := runner.Run(ctx)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Batches:   %d\n", stats.Batches)
				fmt.Fprintf(out, "Processed: %d\n", stats.Processed)
				fmt.Fprintf(out, "Parsed:    %d\n", stats.Parsed)
				fmt.Fprintf(out, "Unmatched: %d\n", stats.Unmatched)
				fmt.Fprintf(out, "Elapsed:   %.1fs\n", stats.Elapsed.Seconds())
				return err
			})
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (default BATCH_WORKERS)")
	cmd.Flags().IntVar(&size, "batch-size", 0, "rows per batch (default BATCH_SIZE)")

	return cmd
}

func createBatchStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ *config.Config, store *db.Store) error {
				counts, err := store.Counts(cmd.Context())
				if err != nil {
					return err
				}
				statuses := make([]string, 0, len(counts))
				for s := range counts {
					statuses = append(statuses, s)
				}
				sort.Strings(statuses)
				for _, s := range statuses {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", s, counts[s])
				}
				return nil
			})
		},
	}
}
