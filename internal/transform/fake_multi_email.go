package transform

import (
	"math/rand"
	"strings"

	"maskframe/internal/core"
	"maskframe/internal/fakegen"
)

// FakeMultiEmail rewrites brace-wrapped comma-delimited email lists, e.g.
// "{a@x.com,b@x.com}", replacing each element with a freshly generated
// email while preserving the element count and delimiter shape. Values
// too short to be a real list (len <= 1) pass through unchanged.
type FakeMultiEmail struct {
	ColumnName string
}

func NewFakeMultiEmail(columnName string) *FakeMultiEmail {
	return &FakeMultiEmail{ColumnName: columnName}
}

func (f *FakeMultiEmail) Transform(frame *core.Frame, rng *rand.Rand) ([]core.TransformOutput, error) {
	col, ok := frame.Column(f.ColumnName)
	if !ok {
		return nil, nil
	}

	out := make([]*string, len(col.Strings))
	for i, v := range col.Strings {
		if v == nil {
			out[i] = nil
			continue
		}
		out[i] = rewriteMultiEmail(*v, rng)
	}

	outCol := &core.Column{Name: f.ColumnName, Type: core.DTypeString, Strings: out}
	return []core.TransformOutput{{ColumnName: f.ColumnName, Column: outCol}}, nil
}

func (f *FakeMultiEmail) ColumnKind() ColumnKind {
	return ColumnKind{Kind: KindMultiColumn}
}

func rewriteMultiEmail(v string, rng *rand.Rand) *string {
	if len(v) <= 1 {
		return &v
	}

	inner := v[1 : len(v)-1]
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = fakegen.SafeEmail(rng)
	}
	result := "{" + strings.Join(parts, ",") + "}"
	return &result
}
