// Package transform implements the column-level rewrite operations the
// anonymization plan compiles into: NoOp, Nullify, Replace, and the
// faker-backed family (Faker, FakePhone, FakeMultiEmail,
// FakeEmailWithIdPrefix). Every variant fulfills the Transformer contract.
package transform

import (
	"math/rand"

	"maskframe/internal/core"
	"maskframe/internal/rngkernel"
)

// Kind tags a Transformer's column footprint: none, a single named
// column, or multiple/derived columns. Apply uses Kind to decide
// whether a transformer should run at all against a given frame,
// without invoking it.
type Kind int

const (
	KindNoOp Kind = iota
	KindSingleColumn
	KindMultiColumn
)

// ColumnKind describes a transformer's footprint: its Kind, and for
// KindSingleColumn the one column name it touches.
type ColumnKind struct {
	Kind   Kind
	Column string
}

// Transformer is the polymorphic contract every column operation fulfills.
type Transformer interface {
	// Transform runs the operation against frame using rng, returning the
	// new columns to bind back in. It must not mutate frame directly.
	Transform(frame *core.Frame, rng *rand.Rand) ([]core.TransformOutput, error)

	// ColumnKind reports the transformer's footprint without running it.
	ColumnKind() ColumnKind
}

// Apply runs plan against frame in order, skipping NoOp transformers and
// SingleColumn transformers whose target column is absent from the frame
// (MultiColumn transformers always run — they may reference more than one
// column). The frame's column-name set is computed once up front, per
// §4.3's edge-case rule.
func Apply(frame *core.Frame, plan []Transformer, worker *rngkernel.WorkerRNG) error {
	rng := worker.Rand()

	present := make(map[string]struct{}, len(frame.Columns()))
	for _, name := range frame.ColumnNames() {
		present[name] = struct{}{}
	}

	for _, t := range plan {
		kind := t.ColumnKind()
		switch kind.Kind {
		case KindNoOp:
			continue
		case KindSingleColumn:
			if _, ok := present[kind.Column]; !ok {
				continue
			}
		}

		outputs, err := t.Transform(frame, rng)
		if err != nil {
			return err
		}
		for _, out := range outputs {
			frame.SetColumn(out.Column)
		}
	}
	return nil
}
