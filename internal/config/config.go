// Package config loads the per-(database, schema) anonymization
// configuration: which tables get transformed, by which column
// transforms or whole-table operation, and under which row filter.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"maskframe/internal/core"
)

// AnonymizationConfig is the full set of table configs for one
// (database, schema) pair, in declaration order.
type AnonymizationConfig struct {
	Tables []TableConfig
}

// ByTable returns the config for the named table, if present.
func (c *AnonymizationConfig) ByTable(name string) (TableConfig, bool) {
	for _, t := range c.Tables {
		if t.TableName == name {
			return t, true
		}
	}
	return TableConfig{}, false
}

type AnonymizationKind int

const (
	AnonymizationMulti AnonymizationKind = iota
	AnonymizationSingle
)

// TableConfig describes how one table's snapshot files are transformed.
type TableConfig struct {
	TableName         string
	KeepNumOfRecords  *int
	AnonymizationKind AnonymizationKind
	Columns           []ColumnTransform // Multi
	WholeTableOp      string            // Single
	Filter            Filter
}

type TransformKind int

const (
	TransformReplace TransformKind = iota
	TransformCustom
	TransformNullify
)

// ColumnTransform describes one column's rewrite rule within a Multi
// table config. Within one config, duplicate column names are rejected
// when the config file is loaded rather than silently last-write-wins.
type ColumnTransform struct {
	ColumnName       string
	RetainIfEmpty    bool
	TransformKind    TransformKind
	ReplacementValue string // Replace
	OperationType    string // Custom
}

type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterContains
	FilterStartsWith
	FilterEndsWith
	FilterStartsAndEndsWith
	FilterEquals
	FilterAnyOfInt
	FilterAnyOfString
)

// Filter is a logical row predicate applied to a loaded frame before
// transformation. FilterNone (the zero value) matches every row.
// StartValue/EndValue back FilterStartsAndEndsWith only, since that
// variant compares against two independent substrings, not one.
type Filter struct {
	Kind       FilterKind
	Column     string
	Value      string
	StartValue string
	EndValue   string
	Values     []string
	IntValues  []int64
}

// Path builds the conventional config file location for a (db, schema)
// pair relative to dir (typically the process working directory).
func Path(dir, db, schema string) string {
	return filepath.Join(dir, "configuration_data", fmt.Sprintf("%s-%s-sync.toml", db, schema))
}

// Load reads and parses the config file at path. A missing file yields
// an empty config, not an error. A TOML decode failure wraps
// core.ErrConfigParse; other read failures and conversion errors (an
// unknown type tag, a duplicate column name) are returned as plain
// errors naming the file.
func Load(path string) (*AnonymizationConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &AnonymizationConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var raw rawConfig
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w: %v", path, core.ErrConfigParse, err)
	}

	return newConverter(&raw, path).convert()
}
