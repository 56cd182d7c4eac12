package targetdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maskframe/internal/core"
)

func strPtr(v string) *string { return &v }
func i32Ptr(v int32) *int32   { return &v }

func TestOptionsWithDefaultsFillsZeroValues(t *testing.T) {
	opts := Options{ConnString: "postgres://x"}.withDefaults()
	assert.EqualValues(t, defaultMaxConns, opts.MaxConns)
	assert.Equal(t, defaultConnectTimeout, opts.ConnectTimeout)
}

func TestOptionsWithDefaultsPreservesExplicitValues(t *testing.T) {
	opts := Options{MaxConns: 5, ConnectTimeout: 10 * time.Second}.withDefaults()
	assert.EqualValues(t, 5, opts.MaxConns)
	assert.Equal(t, 10*time.Second, opts.ConnectTimeout)
}

func TestUpsertStatementExcludesPrimaryKeyFromUpdateSet(t *testing.T) {
	stmt := upsertStatement("public", "users", []string{"id", "email", "status"}, []string{"id"})

	assert.Contains(t, stmt, `INSERT INTO "public"."users"`)
	assert.Contains(t, stmt, `ON CONFLICT ("id") DO UPDATE SET`)
	assert.Contains(t, stmt, `"email" = EXCLUDED."email"`)
	assert.Contains(t, stmt, `"status" = EXCLUDED."status"`)
	assert.NotContains(t, stmt, `"id" = EXCLUDED."id"`)
}

func TestUpsertStatementSupportsCompositePrimaryKey(t *testing.T) {
	stmt := upsertStatement("public", "orders", []string{"order_id", "line_no", "sku"}, []string{"order_id", "line_no"})

	assert.Contains(t, stmt, `ON CONFLICT ("order_id", "line_no") DO UPDATE SET`)
	assert.Contains(t, stmt, `"sku" = EXCLUDED."sku"`)
}

func TestCellValueDereferencesOrReturnsNil(t *testing.T) {
	col := &core.Column{Name: "email", Type: core.DTypeString, Strings: []*string{strPtr("a@x"), nil}}

	assert.Equal(t, "a@x", cellValue(col, 0))
	assert.Nil(t, cellValue(col, 1))
}

func TestFrameCopySourceIteratesRowsInOrder(t *testing.T) {
	frame := core.NewFrame([]*core.Column{
		{Name: "id", Type: core.DTypeInt32, Int32s: []*int32{i32Ptr(1), i32Ptr(2)}},
	})
	src := &frameCopySource{frame: frame, row: -1}

	require.True(t, src.Next())
	values, err := src.Values()
	require.NoError(t, err)
	assert.Equal(t, int32(1), values[0])

	require.True(t, src.Next())
	values, err = src.Values()
	require.NoError(t, err)
	assert.Equal(t, int32(2), values[0])

	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}
