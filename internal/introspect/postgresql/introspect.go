// Package postgresql implements introspect.Introspecter against a live
// Postgres-compatible target, the only dialect this system ships.
package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"maskframe/internal/introspect"
)

func init() {
	introspect.Register(introspect.PostgreSQL, New)
}

type postgresqlIntrospecter struct{}

func New() introspect.Introspecter {
	return &postgresqlIntrospecter{}
}

const columnsQuery = `
SELECT column_name
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position
`

const primaryKeyQuery = `
SELECT kcu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON tc.constraint_name = kcu.constraint_name
 AND tc.table_schema = kcu.table_schema
WHERE tc.constraint_type = 'PRIMARY KEY'
  AND tc.table_schema = $1
  AND tc.table_name = $2
ORDER BY kcu.ordinal_position
`

func (i *postgresqlIntrospecter) TableSchema(ctx context.Context, pool *pgxpool.Pool, schema, table string) (introspect.TableSchema, error) {
	columns, err := queryStrings(ctx, pool, columnsQuery, schema, table)
	if err != nil {
		return introspect.TableSchema{}, fmt.Errorf("postgresql: columns for %s.%s: %w", schema, table, err)
	}

	pk, err := queryStrings(ctx, pool, primaryKeyQuery, schema, table)
	if err != nil {
		return introspect.TableSchema{}, fmt.Errorf("postgresql: primary key for %s.%s: %w", schema, table, err)
	}

	return introspect.TableSchema{Columns: columns, PrimaryKey: pk}, nil
}

func queryStrings(ctx context.Context, pool *pgxpool.Pool, query, schema, table string) ([]string, error) {
	rows, err := pool.Query(ctx, query, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
