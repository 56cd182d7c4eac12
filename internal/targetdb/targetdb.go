// Package targetdb applies loaded and transformed frames to the target
// Postgres-compatible database: INSERT for LOAD files (presumes an
// empty table after a prior schema restore) and UPSERT by primary key
// for CDC files.
package targetdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maskframe/internal/core"
)

const (
	defaultMaxConns       = 24
	defaultConnectTimeout = 180 * time.Second
)

// Options configures the shared connection pool backing an Applier.
type Options struct {
	ConnString     string
	MaxConns       int32
	ConnectTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxConns <= 0 {
		o.MaxConns = defaultMaxConns
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	return o
}

// Applier owns the pool used to insert/upsert frames into the target
// database. One Applier is shared across every table worker.
type Applier struct {
	pool *pgxpool.Pool
}

// Connect builds the pgxpool and verifies connectivity.
func Connect(ctx context.Context, opts Options) (*Applier, error) {
	opts = opts.withDefaults()

	cfg, err := pgxpool.ParseConfig(opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("targetdb: parse connection string: %w", err)
	}
	cfg.MaxConns = opts.MaxConns
	cfg.ConnConfig.ConnectTimeout = opts.ConnectTimeout

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("targetdb: connect: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("targetdb: ping: %w", err)
	}

	return &Applier{pool: pool}, nil
}

// Pool exposes the shared pool for source-schema introspection.
func (a *Applier) Pool() *pgxpool.Pool {
	return a.pool
}

// Close releases the pool. Safe to call once per Applier.
func (a *Applier) Close() {
	a.pool.Close()
}

// InsertFrame bulk-inserts every row of frame into schema.table via
// COPY, presuming the table starts empty.
func (a *Applier) InsertFrame(ctx context.Context, schema, table string, frame *core.Frame) error {
	if frame == nil || frame.Len() == 0 {
		return nil
	}

	names := frame.ColumnNames()
	_, err := a.pool.CopyFrom(ctx,
		pgx.Identifier{schema, table},
		names,
		&frameCopySource{frame: frame, row: -1},
	)
	if err != nil {
		return fmt.Errorf("targetdb: insert into %s.%s: %w", schema, table, err)
	}
	return nil
}

// UpsertFrame applies every row of frame to schema.table with
// INSERT ... ON CONFLICT (primaryKey) DO UPDATE, batched one statement
// per row.
func (a *Applier) UpsertFrame(ctx context.Context, schema, table string, primaryKey []string, frame *core.Frame) error {
	if frame == nil || frame.Len() == 0 {
		return nil
	}
	if len(primaryKey) == 0 {
		return fmt.Errorf("targetdb: upsert into %s.%s: no primary key", schema, table)
	}

	names := frame.ColumnNames()
	stmt := upsertStatement(schema, table, names, primaryKey)

	batch := &pgx.Batch{}
	for r := 0; r < frame.Len(); r++ {
		args := make([]any, len(names))
		for i, name := range names {
			col, _ := frame.Column(name)
			args[i] = cellValue(col, r)
		}
		batch.Queue(stmt, args...)
	}

	results := a.pool.SendBatch(ctx, batch)
	defer results.Close()

	for r := 0; r < frame.Len(); r++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("targetdb: upsert into %s.%s: %w", schema, table, err)
		}
	}
	return nil
}

func upsertStatement(schema, table string, columns, primaryKey []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	pkSet := make(map[string]struct{}, len(primaryKey))
	for _, pk := range primaryKey {
		pkSet[pk] = struct{}{}
	}

	updates := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, isPK := pkSet[c]; isPK {
			continue
		}
		q := pgx.Identifier{c}.Sanitize()
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", q, q))
	}

	quotedPK := make([]string, len(primaryKey))
	for i, pk := range primaryKey {
		quotedPK[i] = pgx.Identifier{pk}.Sanitize()
	}

	return fmt.Sprintf(
		"INSERT INTO %s.%s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		pgx.Identifier{schema}.Sanitize(), pgx.Identifier{table}.Sanitize(),
		strings.Join(quoted, ", "), strings.Join(placeholders, ", "),
		strings.Join(quotedPK, ", "), strings.Join(updates, ", "),
	)
}

type frameCopySource struct {
	frame *core.Frame
	row   int
}

func (s *frameCopySource) Next() bool {
	s.row++
	return s.row < s.frame.Len()
}

func (s *frameCopySource) Values() ([]any, error) {
	names := s.frame.ColumnNames()
	values := make([]any, len(names))
	for i, name := range names {
		col, _ := s.frame.Column(name)
		values[i] = cellValue(col, s.row)
	}
	return values, nil
}

func (s *frameCopySource) Err() error {
	return nil
}

func cellValue(col *core.Column, row int) any {
	switch col.Type {
	case core.DTypeString:
		if col.Strings[row] == nil {
			return nil
		}
		return *col.Strings[row]
	case core.DTypeInt32:
		if col.Int32s[row] == nil {
			return nil
		}
		return *col.Int32s[row]
	case core.DTypeFloat64:
		if col.Float64s[row] == nil {
			return nil
		}
		return *col.Float64s[row]
	case core.DTypeBool:
		if col.Bools[row] == nil {
			return nil
		}
		return *col.Bools[row]
	default:
		return nil
	}
}
