package frameio

import (
	"github.com/parquet-go/parquet-go"

	"maskframe/internal/core"
)

func dtypeOf(node parquet.Node) core.DType {
	switch node.Type().Kind() {
	case parquet.ByteArray:
		return core.DTypeString
	case parquet.Int32:
		return core.DTypeInt32
	case parquet.Double:
		return core.DTypeFloat64
	case parquet.Boolean:
		return core.DTypeBool
	default:
		return core.DTypeOther
	}
}

func nodeOf(d core.DType) parquet.Node {
	switch d {
	case core.DTypeString:
		return parquet.Optional(parquet.String())
	case core.DTypeInt32:
		return parquet.Optional(parquet.Int(32))
	case core.DTypeFloat64:
		return parquet.Optional(parquet.Leaf(parquet.DoubleType))
	case core.DTypeBool:
		return parquet.Optional(parquet.Leaf(parquet.BooleanType))
	default:
		return parquet.Optional(parquet.String())
	}
}

// schemaOf builds a parquet schema matching a frame's current column
// set and dtypes. parquet.Group orders its fields by name, so the
// schema's field order is alphabetical, not the frame's column order.
func schemaOf(tableName string, frame *core.Frame) *parquet.Schema {
	group := parquet.Group{}
	for _, col := range frame.Columns() {
		group[col.Name] = nodeOf(col.Type)
	}
	return parquet.NewSchema(tableName, group)
}
