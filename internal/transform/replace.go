package transform

import (
	"math/rand"

	"maskframe/internal/core"
)

// Replace emits a string column of identical repeated value, the frame's
// length unchanged. Applying Replace to an already-replaced column is
// idempotent by construction.
type Replace struct {
	ColumnName string
	Value      string
}

func NewReplace(columnName, value string) *Replace {
	return &Replace{ColumnName: columnName, Value: value}
}

func (r *Replace) Transform(frame *core.Frame, _ *rand.Rand) ([]core.TransformOutput, error) {
	col, ok := frame.Column(r.ColumnName)
	if !ok {
		return nil, nil
	}

	length := col.Len()
	values := make([]*string, length)
	for i := range values {
		v := r.Value
		values[i] = &v
	}

	out := &core.Column{Name: r.ColumnName, Type: core.DTypeString, Strings: values}
	return []core.TransformOutput{{ColumnName: r.ColumnName, Column: out}}, nil
}

func (r *Replace) ColumnKind() ColumnKind {
	return ColumnKind{Kind: KindSingleColumn, Column: r.ColumnName}
}
