package transform

import (
	"math/rand"

	"maskframe/internal/core"
	"maskframe/internal/fakegen"
	"maskframe/internal/rngkernel"
)

// Faker rewrites a string column's values with the output of a locale-bound
// fake-value generator, one independently-seeded value per row. If
// RetainIfEmpty is set, empty strings and nulls pass through unchanged;
// otherwise every row (including empty/null) is faked.
type Faker struct {
	ColumnName    string
	FakerType     fakegen.Type
	RetainIfEmpty bool
	worker        *rngkernel.WorkerRNG
}

func NewFaker(columnName string, fakerType fakegen.Type, retainIfEmpty bool, worker *rngkernel.WorkerRNG) *Faker {
	return &Faker{ColumnName: columnName, FakerType: fakerType, RetainIfEmpty: retainIfEmpty, worker: worker}
}

func (f *Faker) Transform(frame *core.Frame, rng *rand.Rand) ([]core.TransformOutput, error) {
	col, ok := frame.Column(f.ColumnName)
	if !ok {
		return nil, nil
	}

	out := make([]*string, len(col.Strings))
	for i, v := range col.Strings {
		switch {
		case v == nil:
			if f.RetainIfEmpty {
				out[i] = nil
				continue
			}
			fake := fakegen.Generate(f.FakerType, rng)
			out[i] = &fake
		case f.RetainIfEmpty && *v == "":
			empty := ""
			out[i] = &empty
		default:
			valueRng := f.worker.RandFor(*v)
			fake := fakegen.Generate(f.FakerType, valueRng)
			out[i] = &fake
		}
	}

	outCol := &core.Column{Name: f.ColumnName, Type: core.DTypeString, Strings: out}
	return []core.TransformOutput{{ColumnName: f.ColumnName, Column: outCol}}, nil
}

func (f *Faker) ColumnKind() ColumnKind {
	return ColumnKind{Kind: KindMultiColumn}
}
