package frameio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"
	"golang.org/x/sync/errgroup"

	"maskframe/internal/core"
)

const writerRowGroupSize = 10_000

// Writer serializes a frame back to columnar form and uploads it to
// the anonymized bucket, used only when anonymized-file upload is
// enabled for the run.
type Writer struct {
	client *s3.Client
	bucket string
}

func NewWriter(client *s3.Client, anonymizedBucket string) *Writer {
	return &Writer{client: client, bucket: anonymizedBucket}
}

// Write encodes frame as Parquet with a 10,000-row row group size and
// uploads it under key in the anonymized bucket.
func (w *Writer) Write(ctx context.Context, tableName, key string, frame *core.Frame) error {
	data, err := encode(tableName, frame)
	if err != nil {
		return fmt.Errorf("frameio: encode %q: %w", key, err)
	}

	_, err = w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("frameio: upload %q: %w", key, err)
	}
	return nil
}

// CopyRaw copies an unmodified object into the anonymized bucket, used
// for tables with no configured transformation plan.
func (w *Writer) CopyRaw(ctx context.Context, sourceBucket, key string) error {
	_, err := w.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(w.bucket),
		Key:        aws.String(key),
		CopySource: aws.String(sourceBucket + "/" + key),
	})
	if err != nil {
		return fmt.Errorf("frameio: copy %q: %w", key, err)
	}
	return nil
}

// encode builds one row group per writerRowGroupSize rows, encoding the
// row groups concurrently into independent in-memory buffers, then
// flushes them into the output file in row order.
func encode(tableName string, frame *core.Frame) ([]byte, error) {
	schema := schemaOf(tableName, frame)
	rows := rowsOf(frame, schema)
	chunks := chunkRows(rows, writerRowGroupSize)

	groups := make([]*parquet.Buffer, len(chunks))
	g := new(errgroup.Group)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			rg := parquet.NewBuffer(schema)
			if _, err := rg.WriteRows(chunk); err != nil {
				return fmt.Errorf("encode row group %d: %w", i, err)
			}
			groups[i] = rg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := parquet.NewWriter(&buf, schema, &parquet.WriterConfig{
		CreatedBy: "maskframe",
		KeyValueMetadata: map[string]string{
			"row-group-target-size": fmt.Sprintf("%d", writerRowGroupSize),
		},
	})
	for _, rg := range groups {
		if _, err := writer.WriteRowGroup(rg); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func chunkRows(rows []parquet.Row, size int) [][]parquet.Row {
	if len(rows) == 0 {
		return nil
	}
	chunks := make([][]parquet.Row, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

func rowsOf(frame *core.Frame, schema *parquet.Schema) []parquet.Row {
	length := frame.Len()
	fields := schema.Fields()

	rows := make([]parquet.Row, length)
	for r := 0; r < length; r++ {
		row := make(parquet.Row, len(fields))
		for i, field := range fields {
			col, _ := frame.Column(field.Name())
			v := valueOf(col, r)
			definitionLevel := 1
			if v.IsNull() {
				definitionLevel = 0
			}
			row[i] = v.Level(0, definitionLevel, i)
		}
		rows[r] = row
	}
	return rows
}

func valueOf(col *core.Column, row int) parquet.Value {
	switch col.Type {
	case core.DTypeString:
		if col.Strings[row] == nil {
			return parquet.NullValue()
		}
		return parquet.ByteArrayValue([]byte(*col.Strings[row]))
	case core.DTypeInt32:
		if col.Int32s[row] == nil {
			return parquet.NullValue()
		}
		return parquet.Int32Value(*col.Int32s[row])
	case core.DTypeFloat64:
		if col.Float64s[row] == nil {
			return parquet.NullValue()
		}
		return parquet.DoubleValue(*col.Float64s[row])
	case core.DTypeBool:
		if col.Bools[row] == nil {
			return parquet.NullValue()
		}
		return parquet.BooleanValue(*col.Bools[row])
	default:
		return parquet.NullValue()
	}
}
