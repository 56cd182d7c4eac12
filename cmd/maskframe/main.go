// Package main contains the operational entrypoint for maskframe. It
// uses cobra for CLI wiring; the actual pipeline lives entirely under
// internal/.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"maskframe/internal/config"
	"maskframe/internal/frameio"
	"maskframe/internal/introspect"
	_ "maskframe/internal/introspect/postgresql"
	"maskframe/internal/objectstore"
	"maskframe/internal/orchestrator"
	"maskframe/internal/report"
	"maskframe/internal/runlog"
	"maskframe/internal/settings"
	"maskframe/internal/supervisor"
	"maskframe/internal/targetdb"
)

type snapshotFlags struct {
	database string
	schema   string
	tables   []string
	bucket   string
	prefix   string
	mode     string
	format   string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "maskframe",
		Short: "Discover, anonymize and load columnar snapshot files into a target database",
	}

	rootCmd.AddCommand(snapshotCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func snapshotCmd() *cobra.Command {
	flags := &snapshotFlags{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Run one anonymized snapshot load for a (database, schema)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSnapshot(flags)
		},
	}

	cmd.Flags().StringVar(&flags.database, "database", "", "Source database name (required)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "Source schema name (required)")
	cmd.Flags().StringSliceVar(&flags.tables, "table", nil, "Table name(s) to process (required, repeatable)")
	cmd.Flags().StringVar(&flags.bucket, "bucket", "", "Source object-store bucket (required)")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "cdc", "Object-store key prefix")
	cmd.Flags().StringVar(&flags.mode, "mode", "full-load-only", "Listing mode: date-aware, full-load-only, absolute-path")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "human", "Run report format: human or json")

	_ = cmd.MarkFlagRequired("database")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}

func runSnapshot(flags *snapshotFlags) error {
	ctx := context.Background()
	started := time.Now()

	runSettings, err := settings.Load()
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}

	logger, err := runlog.New()
	if err != nil {
		return fmt.Errorf("maskframe: build logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(config.Path(".", flags.database, flags.schema))
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}

	s3Client, err := objectstore.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}

	applier, err := targetdb.Connect(ctx, targetdb.Options{
		ConnString:     runSettings.DBConnString,
		MaxConns:       runSettings.DBMaxConns,
		ConnectTimeout: runSettings.DBConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}
	defer applier.Close()

	introspecter, err := introspect.NewIntrospecter(introspect.PostgreSQL)
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}

	var writer *frameio.Writer
	if runSettings.UploadAnonymizedFiles {
		writer = frameio.NewWriter(s3Client, runSettings.AnonymizedBucket)
	}

	deps := orchestrator.Deps{
		Lister:       objectstore.NewLister(s3Client),
		Loader:       frameio.NewLoader(s3Client),
		Writer:       writer,
		Applier:      applier,
		Introspecter: introspecter,
		Settings:     runSettings,
		Logger:       logger,
	}

	mode, err := parseMode(flags.mode)
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}

	jobs := make([]orchestrator.Job, 0, len(flags.tables))
	for _, table := range flags.tables {
		tableConfig, hasConfig := cfg.ByTable(table)

		job := orchestrator.Job{
			Database: flags.database,
			Schema:   flags.schema,
			Table:    table,
			List: objectstore.ListPayload{
				Mode:     mode,
				Bucket:   flags.bucket,
				Prefix:   flags.prefix,
				Database: flags.database,
				Schema:   flags.schema,
				Table:    table,
			},
		}
		if hasConfig {
			job.Config = &tableConfig
		}
		jobs = append(jobs, job)
	}

	results := supervisor.Run(ctx, runSettings.NumOfBuffers, jobs, func(ctx context.Context, job orchestrator.Job) report.TableResult {
		return orchestrator.Run(ctx, deps, job)
	})

	runReport := &report.RunReport{Started: started, Elapsed: time.Since(started), Tables: results}
	formatter, err := report.NewFormatter(flags.format)
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}
	rendered, err := formatter.Format(runReport)
	if err != nil {
		return fmt.Errorf("maskframe: %w", err)
	}
	fmt.Print(rendered)

	if runReport.ExitCode() != 0 {
		return fmt.Errorf("maskframe: %d table(s) failed", len(runReport.Failed()))
	}
	return nil
}

func parseMode(raw string) (objectstore.Mode, error) {
	switch raw {
	case "date-aware":
		return objectstore.DateAware, nil
	case "full-load-only":
		return objectstore.FullLoadOnly, nil
	case "absolute-path":
		return objectstore.AbsolutePath, nil
	default:
		return 0, fmt.Errorf("unsupported mode %q", raw)
	}
}
