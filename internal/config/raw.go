package config

import "fmt"

// rawConfig mirrors the TOML document shape exactly (externally-tagged
// variants via a "type" discriminator string) before being converted to
// the domain AnonymizationConfig.
type rawConfig struct {
	Tables []rawTable `toml:"tables"`
}

type rawTable struct {
	TableName         string               `toml:"table_name"`
	KeepNumOfRecords  *int                 `toml:"keep_num_of_records"`
	AnonymizationType rawAnonymizationType `toml:"anonymization_type"`
	FilterType        *rawFilter           `toml:"filter_type"`
}

type rawAnonymizationType struct {
	Type                  string               `toml:"type"`
	ColumnTransformations []rawColumnTransform `toml:"column_transformations"`
	Transformation        string               `toml:"transformation"`
}

type rawColumnTransform struct {
	ColumnName         string                `toml:"column_name"`
	RetainIfEmpty      bool                  `toml:"retain_if_empty"`
	TransformationType rawTransformationType `toml:"transformation_type"`
}

type rawTransformationType struct {
	Type             string `toml:"type"`
	ReplacementValue string `toml:"replacement_value"`
	OperationType    string `toml:"operation_type"`
}

type rawFilter struct {
	Type       string   `toml:"type"`
	Column     string   `toml:"column"`
	Value      string   `toml:"value"`
	StartValue string   `toml:"start_value"`
	EndValue   string   `toml:"end_value"`
	Values     []string `toml:"values"`
	IntValues  []int64  `toml:"int_values"`
}

type converter struct {
	raw  *rawConfig
	path string
}

func newConverter(raw *rawConfig, path string) *converter {
	return &converter{raw: raw, path: path}
}

func (c *converter) convert() (*AnonymizationConfig, error) {
	out := &AnonymizationConfig{Tables: make([]TableConfig, 0, len(c.raw.Tables))}
	for i := range c.raw.Tables {
		t, err := c.convertTable(&c.raw.Tables[i])
		if err != nil {
			return nil, fmt.Errorf("config: %q table %q: %w", c.path, c.raw.Tables[i].TableName, err)
		}
		out.Tables = append(out.Tables, t)
	}
	return out, nil
}

func (c *converter) convertTable(rt *rawTable) (TableConfig, error) {
	tc := TableConfig{
		TableName:        rt.TableName,
		KeepNumOfRecords: rt.KeepNumOfRecords,
	}

	switch rt.AnonymizationType.Type {
	case "Multi":
		tc.AnonymizationKind = AnonymizationMulti
		seen := make(map[string]struct{}, len(rt.AnonymizationType.ColumnTransformations))
		for _, rc := range rt.AnonymizationType.ColumnTransformations {
			if _, dup := seen[rc.ColumnName]; dup {
				return TableConfig{}, fmt.Errorf("duplicate column_name %q in Multi config", rc.ColumnName)
			}
			seen[rc.ColumnName] = struct{}{}

			ct, err := convertColumnTransform(&rc)
			if err != nil {
				return TableConfig{}, err
			}
			tc.Columns = append(tc.Columns, ct)
		}
	case "Single":
		tc.AnonymizationKind = AnonymizationSingle
		tc.WholeTableOp = rt.AnonymizationType.Transformation
	default:
		return TableConfig{}, fmt.Errorf("unknown anonymization_type.type %q", rt.AnonymizationType.Type)
	}

	if rt.FilterType != nil {
		filter, err := convertFilter(rt.FilterType)
		if err != nil {
			return TableConfig{}, err
		}
		tc.Filter = filter
	}

	return tc, nil
}

func convertColumnTransform(rc *rawColumnTransform) (ColumnTransform, error) {
	ct := ColumnTransform{
		ColumnName:    rc.ColumnName,
		RetainIfEmpty: rc.RetainIfEmpty,
	}

	switch rc.TransformationType.Type {
	case "Replace":
		ct.TransformKind = TransformReplace
		ct.ReplacementValue = rc.TransformationType.ReplacementValue
	case "Custom":
		ct.TransformKind = TransformCustom
		ct.OperationType = rc.TransformationType.OperationType
	case "Nullify":
		ct.TransformKind = TransformNullify
	default:
		return ColumnTransform{}, fmt.Errorf("unknown transformation_type.type %q for column %q", rc.TransformationType.Type, rc.ColumnName)
	}

	return ct, nil
}

func convertFilter(rf *rawFilter) (Filter, error) {
	f := Filter{
		Column:     rf.Column,
		Value:      rf.Value,
		StartValue: rf.StartValue,
		EndValue:   rf.EndValue,
		Values:     rf.Values,
		IntValues:  rf.IntValues,
	}

	switch rf.Type {
	case "Contains":
		f.Kind = FilterContains
	case "StartsWith":
		f.Kind = FilterStartsWith
	case "EndsWith":
		f.Kind = FilterEndsWith
	case "StartsAndEndsWith":
		f.Kind = FilterStartsAndEndsWith
	case "Equals":
		f.Kind = FilterEquals
	case "AnyOfInt":
		f.Kind = FilterAnyOfInt
	case "AnyOfString":
		f.Kind = FilterAnyOfString
	case "NoFilter", "":
		f.Kind = FilterNone
	default:
		return Filter{}, fmt.Errorf("unknown filter_type.type %q", rf.Type)
	}

	return f, nil
}
