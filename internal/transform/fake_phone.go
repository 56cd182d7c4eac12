package transform

import (
	"math/rand"
	"strings"
	"unicode"

	"maskframe/internal/core"
)

// FakePhone performs a character-wise digit permutation: every digit in
// the input is replaced with a different uniformly-drawn digit, and every
// non-digit character (spaces, "+", "-", ...) is preserved verbatim.
type FakePhone struct {
	ColumnName string
}

func NewFakePhone(columnName string) *FakePhone {
	return &FakePhone{ColumnName: columnName}
}

func (f *FakePhone) Transform(frame *core.Frame, rng *rand.Rand) ([]core.TransformOutput, error) {
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
		out[i] = permuteDigits(*v, rng)
	}

	outCol := &core.Column{Name: f.ColumnName, Type: core.DTypeString, Strings: out}
	return []core.TransformOutput{{ColumnName: f.ColumnName, Column: outCol}}, nil
}

func (f *FakePhone) ColumnKind() ColumnKind {
	return ColumnKind{Kind: KindMultiColumn}
}

func permuteDigits(v string, rng *rand.Rand) *string {
	var b strings.Builder
	for _, c := range v {
		if unicode.IsDigit(c) {
			original := int(c - '0')
			next := original
			for next == original {
				next = rng.Intn(10)
			}
			b.WriteRune(rune('0' + next))
			continue
		}
		b.WriteRune(c)
	}
	result := b.String()
	return &result
}
