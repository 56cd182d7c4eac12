// Package plan compiles a table's declarative configuration into an
// ordered list of transform.Transformer values ready to run against a
// loaded frame.
package plan

import (
	"fmt"

	"maskframe/internal/config"
	"maskframe/internal/core"
	"maskframe/internal/fakegen"
	"maskframe/internal/rngkernel"
	"maskframe/internal/transform"
)

// opTable maps a Custom transform's operation_type string onto the
// faker type it drives. Operations not present here are handled as
// specialized transformers in Compile.
var opTable = map[string]fakegen.Type{
	"fake_firstname_transformation":   fakegen.FirstName,
	"fake_lastname_transformation":    fakegen.LastName,
	"fake_name_transformation":        fakegen.Name,
	"fake_companyname_transformation": fakegen.CompanyName,
	"fake_email_transformation":       fakegen.Email,
	"fake_address_transformation":     fakegen.Address,
	"fake_md5_transformation":         fakegen.Md5,
}

const (
	opFakePhone             = "fake_phone_transformation"
	opFakeMultiEmail        = "fake_multi_email_transformation"
	opFakeEmailWithIDPrefix = "fake_email_with_id_prefix_transformation"
)

// Compile turns a table's config into an ordered transformer plan. An
// unrecognized Custom op string is a fatal configuration error raised
// here, at construction time, rather than during apply.
func Compile(tc *config.TableConfig, worker *rngkernel.WorkerRNG) ([]transform.Transformer, error) {
	switch tc.AnonymizationKind {
	case config.AnonymizationMulti:
		return compileMulti(tc, worker)
	case config.AnonymizationSingle:
		factory, err := GetWholeTableTransformer(tc.WholeTableOp)
		if err != nil {
			return nil, fmt.Errorf("plan: table %q: %w", tc.TableName, err)
		}
		return []transform.Transformer{factory()}, nil
	default:
		return nil, fmt.Errorf("plan: table %q: unrecognized anonymization kind", tc.TableName)
	}
}

func compileMulti(tc *config.TableConfig, worker *rngkernel.WorkerRNG) ([]transform.Transformer, error) {
	out := make([]transform.Transformer, 0, len(tc.Columns))
	for _, ct := range tc.Columns {
		t, err := compileColumn(&ct, worker)
		if err != nil {
			return nil, fmt.Errorf("plan: table %q column %q: %w", tc.TableName, ct.ColumnName, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func compileColumn(ct *config.ColumnTransform, worker *rngkernel.WorkerRNG) (transform.Transformer, error) {
	switch ct.TransformKind {
	case config.TransformReplace:
		return transform.NewReplace(ct.ColumnName, ct.ReplacementValue), nil
	case config.TransformNullify:
		return transform.NewNullify(ct.ColumnName), nil
	case config.TransformCustom:
		return compileCustom(ct, worker)
	default:
		return nil, fmt.Errorf("unrecognized transform kind")
	}
}

func compileCustom(ct *config.ColumnTransform, worker *rngkernel.WorkerRNG) (transform.Transformer, error) {
	switch ct.OperationType {
	case opFakePhone:
		return transform.NewFakePhone(ct.ColumnName), nil
	case opFakeMultiEmail:
		return transform.NewFakeMultiEmail(ct.ColumnName), nil
	case opFakeEmailWithIDPrefix:
		return transform.NewFakeEmailWithIdPrefix(ct.ColumnName, worker), nil
	}

	fakerType, ok := opTable[ct.OperationType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownOperation, ct.OperationType)
	}
	return transform.NewFaker(ct.ColumnName, fakerType, ct.RetainIfEmpty, worker), nil
}
