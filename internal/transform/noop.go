package transform

import (
	"math/rand"

	"maskframe/internal/core"
)

// NoOp performs no rewrite. It exists so a table can have a
// zero-transformation plan (e.g. the default WholeTableTransformer) that
// still satisfies the Transformer contract.
type NoOp struct{}

func (NoOp) Transform(*core.Frame, *rand.Rand) ([]core.TransformOutput, error) {
	return nil, nil
}

func (NoOp) ColumnKind() ColumnKind {
	return ColumnKind{Kind: KindNoOp}
}
