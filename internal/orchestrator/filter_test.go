package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maskframe/internal/config"
	"maskframe/internal/core"
)

func strPtr(v string) *string { return &v }
func i32Ptr(v int32) *int32   { return &v }

func TestApplyFilterNoneReturnsFrameUnchanged(t *testing.T) {
	frame := core.NewFrame([]*core.Column{
		{Name: "status", Type: core.DTypeString, Strings: []*string{strPtr("active"), strPtr("inactive")}},
	})

	got := applyFilter(frame, config.Filter{Kind: config.FilterNone})
	assert.Same(t, frame, got)
}

func TestApplyFilterContainsKeepsMatchingRows(t *testing.T) {
	frame := core.NewFrame([]*core.Column{
		{Name: "status", Type: core.DTypeString, Strings: []*string{strPtr("active"), strPtr("inactive"), strPtr("semi-active")}},
		{Name: "id", Type: core.DTypeInt32, Int32s: []*int32{i32Ptr(1), i32Ptr(2), i32Ptr(3)}},
	})

	got := applyFilter(frame, config.Filter{Kind: config.FilterContains, Column: "status", Value: "active"})
	require.Equal(t, 2, got.Len())

	col, ok := got.Column("id")
	require.True(t, ok)
	assert.Equal(t, int32(1), *col.Int32s[0])
	assert.Equal(t, int32(3), *col.Int32s[1])
}

func TestApplyFilterAnyOfIntMatchesByValue(t *testing.T) {
	frame := core.NewFrame([]*core.Column{
		{Name: "code", Type: core.DTypeInt32, Int32s: []*int32{i32Ptr(1), i32Ptr(2), i32Ptr(3)}},
	})

	got := applyFilter(frame, config.Filter{Kind: config.FilterAnyOfInt, Column: "code", IntValues: []int64{1, 3}})
	require.Equal(t, 2, got.Len())
}

func TestApplyFilterUnknownColumnReturnsFrameUnchanged(t *testing.T) {
	frame := core.NewFrame([]*core.Column{
		{Name: "status", Type: core.DTypeString, Strings: []*string{strPtr("active")}},
	})

	got := applyFilter(frame, config.Filter{Kind: config.FilterContains, Column: "missing", Value: "x"})
	assert.Same(t, frame, got)
}

func TestApplyFilterStartsAndEndsWithUsesDistinctBounds(t *testing.T) {
	frame := core.NewFrame([]*core.Column{
		{Name: "code", Type: core.DTypeString, Strings: []*string{
			strPtr("ABC123XYZ"), strPtr("ABC123ABC"), strPtr("XYZ123XYZ"),
		}},
		{Name: "id", Type: core.DTypeInt32, Int32s: []*int32{i32Ptr(1), i32Ptr(2), i32Ptr(3)}},
	})

	got := applyFilter(frame, config.Filter{
		Kind:       config.FilterStartsAndEndsWith,
		Column:     "code",
		StartValue: "ABC",
		EndValue:   "XYZ",
	})
	require.Equal(t, 1, got.Len())

	col, ok := got.Column("id")
	require.True(t, ok)
	assert.Equal(t, int32(1), *col.Int32s[0])
}

func TestApplyFilterNullValuesNeverMatch(t *testing.T) {
	frame := core.NewFrame([]*core.Column{
		{Name: "status", Type: core.DTypeString, Strings: []*string{nil, strPtr("active")}},
	})

	got := applyFilter(frame, config.Filter{Kind: config.FilterEquals, Column: "status", Value: "active"})
	require.Equal(t, 1, got.Len())
}
