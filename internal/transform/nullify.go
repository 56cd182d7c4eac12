package transform

import (
	"fmt"
	"math/rand"

	"maskframe/internal/core"
)

// Nullify replaces a column's entire content with the dtype-appropriate
// null sentinel. Supported dtypes are string, i32, f64; anything else is
// a fatal configuration error for the table.
type Nullify struct {
	ColumnName string
}

func NewNullify(columnName string) *Nullify {
	return &Nullify{ColumnName: columnName}
}

func (n *Nullify) Transform(frame *core.Frame, _ *rand.Rand) ([]core.TransformOutput, error) {
	col, ok := frame.Column(n.ColumnName)
	if !ok {
		return nil, nil
	}

	length := col.Len()
	out := &core.Column{Name: n.ColumnName, Type: col.Type}

	switch col.Type {
	case core.DTypeString:
		out.Strings = make([]*string, length)
	case core.DTypeInt32:
		out.Int32s = make([]*int32, length)
	case core.DTypeFloat64:
		out.Float64s = make([]*float64, length)
	default:
		return nil, fmt.Errorf("transform: nullify column %q: %w (%s)", n.ColumnName, core.ErrUnsupportedDType, col.Type)
	}

	return []core.TransformOutput{{ColumnName: n.ColumnName, Column: out}}, nil
}

func (n *Nullify) ColumnKind() ColumnKind {
	return ColumnKind{Kind: KindSingleColumn, Column: n.ColumnName}
}
