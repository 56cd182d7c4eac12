// Package introspect discovers a source table's column set and primary
// key from the live database, the way the orchestrator needs it before
// it can detect schema drift or build an upsert statement.
package introspect

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Dialect string

const PostgreSQL Dialect = "postgresql"

// TableSchema is a table's column names in declaration order and its
// primary-key column list (possibly composite, possibly empty).
type TableSchema struct {
	Columns    []string
	PrimaryKey []string
}

// HasColumn reports whether name is one of the table's columns.
func (s TableSchema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

type Introspecter interface {
	TableSchema(ctx context.Context, pool *pgxpool.Pool, schema, table string) (TableSchema, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[Dialect]func() Introspecter)
)

// Register installs a constructor for the given dialect.
func Register(d Dialect, ctor func() Introspecter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d] = ctor
}

// NewIntrospecter returns a fresh Introspecter for the given dialect.
func NewIntrospecter(d Dialect) (Introspecter, error) {
	registryMu.RLock()
	ctor, ok := registry[d]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("introspect: unsupported dialect %q", d)
	}
	return ctor(), nil
}
