package orchestrator

import (
	"strings"

	"maskframe/internal/config"
	"maskframe/internal/core"
)

// applyFilter retains only the rows matching f, applied to the loaded
// frame before transformation. FilterNone matches every row.
func applyFilter(frame *core.Frame, f config.Filter) *core.Frame {
	if f.Kind == config.FilterNone {
		return frame
	}

	col, ok := frame.Column(f.Column)
	if !ok {
		return frame
	}

	keep := make([]bool, frame.Len())
	for i := range keep {
		keep[i] = matches(col, i, f)
	}

	return sliceRows(frame, keep)
}

func matches(col *core.Column, row int, f config.Filter) bool {
	switch f.Kind {
	case config.FilterAnyOfInt:
		if col.Int32s[row] == nil {
			return false
		}
		v := int64(*col.Int32s[row])
		for _, want := range f.IntValues {
			if v == want {
				return true
			}
		}
		return false
	case config.FilterAnyOfString:
		if col.Strings[row] == nil {
			return false
		}
		for _, want := range f.Values {
			if *col.Strings[row] == want {
				return true
			}
		}
		return false
	default:
		if col.Strings[row] == nil {
			return false
		}
		v := *col.Strings[row]
		switch f.Kind {
		case config.FilterContains:
			return strings.Contains(v, f.Value)
		case config.FilterStartsWith:
			return strings.HasPrefix(v, f.Value)
		case config.FilterEndsWith:
			return strings.HasSuffix(v, f.Value)
		case config.FilterStartsAndEndsWith:
			return strings.HasPrefix(v, f.StartValue) && strings.HasSuffix(v, f.EndValue)
		case config.FilterEquals:
			return v == f.Value
		default:
			return true
		}
	}
}

func sliceRows(frame *core.Frame, keep []bool) *core.Frame {
	columns := make([]*core.Column, 0, len(frame.Columns()))
	for _, col := range frame.Columns() {
		out := &core.Column{Name: col.Name, Type: col.Type}
		switch col.Type {
		case core.DTypeString:
			for i, k := range keep {
				if k {
					out.Strings = append(out.Strings, col.Strings[i])
				}
			}
		case core.DTypeInt32:
			for i, k := range keep {
				if k {
					out.Int32s = append(out.Int32s, col.Int32s[i])
				}
			}
		case core.DTypeFloat64:
			for i, k := range keep {
				if k {
					out.Float64s = append(out.Float64s, col.Float64s[i])
				}
			}
		case core.DTypeBool:
			for i, k := range keep {
				if k {
					out.Bools = append(out.Bools, col.Bools[i])
				}
			}
		}
		columns = append(columns, out)
	}
	return core.NewFrame(columns)
}
