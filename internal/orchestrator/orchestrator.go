// Package orchestrator runs the per-table pipeline: resolve a
// transformation plan, discover the source schema, list snapshot
// files, and apply each file in order to the target database.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"maskframe/internal/config"
	"maskframe/internal/core"
	"maskframe/internal/frameio"
	"maskframe/internal/introspect"
	"maskframe/internal/objectstore"
	"maskframe/internal/plan"
	"maskframe/internal/report"
	"maskframe/internal/rngkernel"
	"maskframe/internal/runlog"
	"maskframe/internal/settings"
	"maskframe/internal/targetdb"
	"maskframe/internal/transform"
)

var metadataColumns = map[string]struct{}{
	"Op":                       {},
	"_dms_ingestion_timestamp": {},
}

// Deps bundles the collaborators a table worker needs. They are
// constructed once per run and shared (read-only, concurrency-safe)
// across every table worker.
type Deps struct {
	Lister       *objectstore.Lister
	Loader       *frameio.Loader
	Writer       *frameio.Writer // nil when anonymized-file upload is disabled
	Applier      *targetdb.Applier
	Introspecter introspect.Introspecter
	Settings     settings.Settings
	Logger       *zap.Logger
}

// Job describes one table's run: its location in the object store and
// its (possibly absent) declarative configuration.
type Job struct {
	Database string
	Schema   string
	Table    string
	Config   *config.TableConfig // nil: no configured transformation
	List     objectstore.ListPayload
}

// Run executes the 5-step per-table flow and returns its result. It
// never returns an error directly: every failure is captured on the
// returned TableResult so the supervisor can continue with siblings.
func Run(ctx context.Context, deps Deps, job Job) report.TableResult {
	start := time.Now()
	log := runlog.Table(deps.Logger, job.Table)
	result := report.TableResult{Table: job.Table}

	schema, err := deps.Introspecter.TableSchema(ctx, deps.Applier.Pool(), job.Schema, job.Table)
	if err != nil {
		result.Err = fmt.Errorf("query source schema: %w", err)
		result.Elapsed = time.Since(start)
		return result
	}

	files, err := deps.Lister.List(ctx, job.List)
	if err != nil {
		result.Err = fmt.Errorf("list files: %w", err)
		result.Elapsed = time.Since(start)
		return result
	}

	for _, file := range files {
		if err := runFile(ctx, deps, job, schema, file, log, &result); err != nil {
			result.Err = err
			break
		}
	}

	result.Elapsed = time.Since(start)
	if result.Err != nil {
		log.Error("table failed", zap.Error(result.Err))
	}
	return result
}

func runFile(ctx context.Context, deps Deps, job Job, schema introspect.TableSchema, file core.FileRef, log *zap.Logger, result *report.TableResult) error {
	fileLog := runlog.File(log, file.Key)

	worker := rngkernel.NewWorkerRNG(deps.Settings.RNGSeed, job.Table, file.Key)

	opts := frameio.LoadOptions{RecordReductionEnabled: deps.Settings.RecordReductionEnabled}
	if job.Config != nil {
		opts.KeepNumOfRecords = job.Config.KeepNumOfRecords
	}

	var frame *core.Frame
	err := runlog.Phase(fileLog, "load", func() error {
		f, err := deps.Loader.Load(ctx, file, opts)
		if err != nil {
			return fmt.Errorf("load %q: %w", file.Key, err)
		}
		frame = f
		return nil
	})
	if err != nil {
		return err
	}
	if frame == nil {
		result.FilesSkipped++
		return nil
	}

	if job.Config != nil {
		frame = applyFilter(frame, job.Config.Filter)
	}

	if file.IsLoadFile {
		if drift := detectSchemaDrift(frame, schema); drift != "" {
			return fmt.Errorf("%w: column %q not present in source schema for table %q", core.ErrSchemaDrift, drift, job.Table)
		}
	}

	if job.Config != nil {
		err := runlog.Phase(fileLog, "transform", func() error {
			transformers, err := plan.Compile(job.Config, worker)
			if err != nil {
				return fmt.Errorf("compile plan: %w", err)
			}
			if err := transform.Apply(frame, transformers, worker); err != nil {
				return fmt.Errorf("apply transforms: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if file.IsLoadFile {
		err := runlog.Phase(fileLog, "insert", func() error {
			if err := deps.Applier.InsertFrame(ctx, job.Schema, job.Table, frame); err != nil {
				return fmt.Errorf("insert %q: %w", file.Key, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		err := runlog.Phase(fileLog, "upsert", func() error {
			if err := deps.Applier.UpsertFrame(ctx, job.Schema, job.Table, schema.PrimaryKey, frame); err != nil {
				return fmt.Errorf("upsert %q: %w", file.Key, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	result.FilesApplied++

	if deps.Settings.UploadAnonymizedFiles && deps.Writer != nil {
		if job.Config != nil {
			if err := deps.Writer.Write(ctx, job.Table, file.Key, frame); err != nil {
				fileLog.Warn("anonymized upload failed", zap.Error(err))
			}
		} else if err := deps.Writer.CopyRaw(ctx, file.Bucket, file.Key); err != nil {
			fileLog.Warn("anonymized copy failed", zap.Error(err))
		}
	}

	return nil
}

// detectSchemaDrift returns the first frame column name absent from
// the source schema (excluding DMS metadata columns), or "" if none.
func detectSchemaDrift(frame *core.Frame, schema introspect.TableSchema) string {
	for _, name := range frame.ColumnNames() {
		if _, isMeta := metadataColumns[name]; isMeta {
			continue
		}
		if !schema.HasColumn(name) {
			return name
		}
	}
	return ""
}
