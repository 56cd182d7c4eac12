package transform

import (
	"fmt"
	"math/rand"

	"maskframe/internal/core"
	"maskframe/internal/fakegen"
	"maskframe/internal/rngkernel"
)

// FakeEmailWithIdPrefix rewrites an email column as "{id}-{fake_email}",
// reading the sibling i32 "id" column for the prefix and per-value seeding
// the fake email on the original (pre-transform) email string, so the same
// source email always maps to the same fake email within one file of one
// table, run after run. The worker seed differs per (table, file), so the
// same email in another file gets a different fake email.
type FakeEmailWithIdPrefix struct {
	ColumnName string
	worker     *rngkernel.WorkerRNG
}

func NewFakeEmailWithIdPrefix(columnName string, worker *rngkernel.WorkerRNG) *FakeEmailWithIdPrefix {
	return &FakeEmailWithIdPrefix{ColumnName: columnName, worker: worker}
}

func (f *FakeEmailWithIdPrefix) Transform(frame *core.Frame, _ *rand.Rand) ([]core.TransformOutput, error) {
	col, ok := frame.Column(f.ColumnName)
	if !ok {
		return nil, nil
	}
	idCol, ok := frame.Column("id")
	if !ok || idCol.Type != core.DTypeInt32 {
		return nil, fmt.Errorf("transform: fake_email_with_id_prefix on %q: %w (id)", f.ColumnName, core.ErrUnsupportedDType)
	}

	out := make([]*string, len(col.Strings))
	for i, v := range col.Strings {
		idVal := idCol.Int32s[i]
		if v == nil || idVal == nil {
			out[i] = nil
			continue
		}
		valueRng := f.worker.RandFor(*v)
		fake := fakegen.SafeEmail(valueRng)
		result := fmt.Sprintf("%d-%s", *idVal, fake)
		out[i] = &result
	}

	outCol := &core.Column{Name: f.ColumnName, Type: core.DTypeString, Strings: out}
	return []core.TransformOutput{{ColumnName: f.ColumnName, Column: outCol}}, nil
}

func (f *FakeEmailWithIdPrefix) ColumnKind() ColumnKind {
	return ColumnKind{Kind: KindMultiColumn}
}
