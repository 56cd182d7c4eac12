package frameio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"

	"maskframe/internal/core"
)

// Loader downloads a snapshot file and decodes it into a Frame.
type Loader struct {
	client *s3.Client
}

func NewLoader(client *s3.Client) *Loader {
	return &Loader{client: client}
}

// LoadOptions carries the per-table record-reduction knobs that decide
// whether a LOAD file is skipped or sliced.
type LoadOptions struct {
	KeepNumOfRecords       *int
	RecordReductionEnabled bool
}

// Load downloads ref and decodes it into a Frame. It returns (nil, nil)
// — an "absent frame" — for a non-first LOAD file of a table with
// keep_num_of_records configured while record reduction is enabled,
// without touching the object store.
func (l *Loader) Load(ctx context.Context, ref core.FileRef, opts LoadOptions) (*core.Frame, error) {
	if ref.IsLoadFile && !ref.IsFirstLoadFile() && opts.KeepNumOfRecords != nil && opts.RecordReductionEnabled {
		return nil, nil
	}

	data, err := l.download(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("frameio: download %q: %w", ref.Key, err)
	}

	frame, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("frameio: decode %q: %w", ref.Key, err)
	}

	if opts.RecordReductionEnabled && ref.IsLoadFile && ref.IsFirstLoadFile() && opts.KeepNumOfRecords != nil {
		frame = sliceFrame(frame, *opts.KeepNumOfRecords)
	}

	return frame, nil
}

func (l *Loader) download(ctx context.Context, ref core.FileRef) ([]byte, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func decode(data []byte) (*core.Frame, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	schema := file.Schema()
	fields := schema.Fields()
	dtypes := make([]core.DType, len(fields))
	for i, field := range fields {
		dtypes[i] = dtypeOf(field)
	}

	reader := parquet.NewReader(bytes.NewReader(data), schema)
	defer reader.Close()

	numRows := int(file.NumRows())
	columns := make([]*core.Column, len(fields))
	for i, field := range fields {
		columns[i] = &core.Column{Name: field.Name(), Type: dtypes[i]}
		switch dtypes[i] {
		case core.DTypeString:
			columns[i].Strings = make([]*string, 0, numRows)
		case core.DTypeInt32:
			columns[i].Int32s = make([]*int32, 0, numRows)
		case core.DTypeFloat64:
			columns[i].Float64s = make([]*float64, 0, numRows)
		case core.DTypeBool:
			columns[i].Bools = make([]*bool, 0, numRows)
		}
	}

	rows := make([]parquet.Row, 64)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			appendRow(columns, row)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return core.NewFrame(columns), nil
}

func appendRow(columns []*core.Column, row parquet.Row) {
	for _, v := range row {
		idx := v.Column()
		if idx < 0 || idx >= len(columns) {
			continue
		}
		col := columns[idx]
		switch col.Type {
		case core.DTypeString:
			if v.IsNull() {
				col.Strings = append(col.Strings, nil)
			} else {
				s := string(v.ByteArray())
				col.Strings = append(col.Strings, &s)
			}
		case core.DTypeInt32:
			if v.IsNull() {
				col.Int32s = append(col.Int32s, nil)
			} else {
				n := v.Int32()
				col.Int32s = append(col.Int32s, &n)
			}
		case core.DTypeFloat64:
			if v.IsNull() {
				col.Float64s = append(col.Float64s, nil)
			} else {
				n := v.Double()
				col.Float64s = append(col.Float64s, &n)
			}
		case core.DTypeBool:
			if v.IsNull() {
				col.Bools = append(col.Bools, nil)
			} else {
				b := v.Boolean()
				col.Bools = append(col.Bools, &b)
			}
		}
	}
}

// sliceFrame keeps rows [0, min(k, len)) of every column.
func sliceFrame(frame *core.Frame, k int) *core.Frame {
	if k >= frame.Len() {
		return frame
	}

	columns := make([]*core.Column, 0, len(frame.Columns()))
	for _, col := range frame.Columns() {
		sliced := &core.Column{Name: col.Name, Type: col.Type}
		switch col.Type {
		case core.DTypeString:
			sliced.Strings = col.Strings[:k]
		case core.DTypeInt32:
			sliced.Int32s = col.Int32s[:k]
		case core.DTypeFloat64:
			sliced.Float64s = col.Float64s[:k]
		case core.DTypeBool:
			sliced.Bools = col.Bools[:k]
		}
		columns = append(columns, sliced)
	}
	return core.NewFrame(columns)
}
