package frameio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maskframe/internal/core"
)

func strPtr(v string) *string { return &v }
func i32Ptr(v int32) *int32   { return &v }

func sampleFrame() *core.Frame {
	return core.NewFrame([]*core.Column{
		{Name: "id", Type: core.DTypeInt32, Int32s: []*int32{i32Ptr(1), i32Ptr(2), i32Ptr(3)}},
		{Name: "email", Type: core.DTypeString, Strings: []*string{strPtr("a@x"), nil, strPtr("c@x")}},
	})
}

func TestEncodeDecodeRoundTripsValuesAndNulls(t *testing.T) {
	frame := sampleFrame()

	data, err := encode("users", frame)
	require.NoError(t, err)

	decoded, err := decode(data)
	require.NoError(t, err)

	require.Equal(t, 3, decoded.Len())

	idCol, ok := decoded.Column("id")
	require.True(t, ok)
	assert.Equal(t, int32(1), *idCol.Int32s[0])
	assert.Equal(t, int32(3), *idCol.Int32s[2])

	emailCol, ok := decoded.Column("email")
	require.True(t, ok)
	assert.Equal(t, "a@x", *emailCol.Strings[0])
	assert.Nil(t, emailCol.Strings[1])
	assert.Equal(t, "c@x", *emailCol.Strings[2])
}

func TestSliceFrameKeepsFirstKRows(t *testing.T) {
	frame := sampleFrame()

	got := sliceFrame(frame, 2)
	assert.Equal(t, 2, got.Len())

	idCol, _ := got.Column("id")
	assert.Equal(t, int32(1), *idCol.Int32s[0])
	assert.Equal(t, int32(2), *idCol.Int32s[1])
}

func TestSliceFrameNoOpWhenKExceedsLength(t *testing.T) {
	frame := sampleFrame()
	got := sliceFrame(frame, 100)
	assert.Same(t, frame, got)
}

func TestLoadSkipsNonFirstLoadFileWithoutTouchingClient(t *testing.T) {
	loader := NewLoader(nil)
	k := 10

	ref := core.NewFileRef("bucket", "cdc/mydb/public/users/LOAD00000002.parquet", time.Time{})
	frame, err := loader.Load(context.Background(), ref, LoadOptions{
		KeepNumOfRecords:       &k,
		RecordReductionEnabled: true,
	})

	require.NoError(t, err)
	assert.Nil(t, frame, "a nil client would panic if Load attempted a download")
}
