package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zeroTime = time.Time{}

func TestFrameLenReflectsFirstColumn(t *testing.T) {
	s := "a"
	frame := NewFrame([]*Column{
		{Name: "x", Type: DTypeString, Strings: []*string{&s, &s, nil}},
	})
	assert.Equal(t, 3, frame.Len())
}

func TestFrameLenZeroWithNoColumns(t *testing.T) {
	assert.Equal(t, 0, NewFrame(nil).Len())
}

func TestFrameColumnLookup(t *testing.T) {
	frame := NewFrame([]*Column{{Name: "id", Type: DTypeInt32}})

	col, ok := frame.Column("id")
	require.True(t, ok)
	assert.Equal(t, "id", col.Name)

	_, ok = frame.Column("missing")
	assert.False(t, ok)
	assert.True(t, frame.HasColumn("id"))
	assert.False(t, frame.HasColumn("missing"))
}

func TestFrameSetColumnReplacesExistingByName(t *testing.T) {
	frame := NewFrame([]*Column{{Name: "id", Type: DTypeInt32}})
	replacement := &Column{Name: "id", Type: DTypeString}

	frame.SetColumn(replacement)

	col, _ := frame.Column("id")
	assert.Same(t, replacement, col)
	assert.Len(t, frame.Columns(), 1)
}

func TestFrameSetColumnAppendsWhenAbsent(t *testing.T) {
	frame := NewFrame([]*Column{{Name: "id", Type: DTypeInt32}})
	frame.SetColumn(&Column{Name: "email", Type: DTypeString})

	assert.Len(t, frame.Columns(), 2)
	assert.ElementsMatch(t, []string{"id", "email"}, frame.ColumnNames())
}

func TestDTypeStringer(t *testing.T) {
	assert.Equal(t, "string", DTypeString.String())
	assert.Equal(t, "i32", DTypeInt32.String())
	assert.Equal(t, "f64", DTypeFloat64.String())
	assert.Equal(t, "bool", DTypeBool.String())
	assert.Equal(t, "other", DTypeOther.String())
}

func TestNewFileRefDerivesIsLoadFile(t *testing.T) {
	load := NewFileRef("b", "cdc/db/schema/table/LOAD00000001.parquet", zeroTime)
	assert.True(t, load.IsLoadFile)
	assert.True(t, load.IsFirstLoadFile())

	second := NewFileRef("b", "cdc/db/schema/table/LOAD00000002.parquet", zeroTime)
	assert.True(t, second.IsLoadFile)
	assert.False(t, second.IsFirstLoadFile())

	cdc := NewFileRef("b", "cdc/db/schema/table/20260101-000000000.parquet", zeroTime)
	assert.False(t, cdc.IsLoadFile)
}
