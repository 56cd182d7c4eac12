package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Tables)
}

func TestLoadParsesMultiAndSingleTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db-schema-sync.toml")

	doc := `
[[tables]]
table_name = "users"
keep_num_of_records = 100

[tables.anonymization_type]
type = "Multi"

[[tables.anonymization_type.column_transformations]]
column_name = "email"
retain_if_empty = true

[tables.anonymization_type.column_transformations.transformation_type]
type = "Custom"
operation_type = "fake_email_with_id_prefix_transformation"

[[tables.anonymization_type.column_transformations]]
column_name = "ssn"

[tables.anonymization_type.column_transformations.transformation_type]
type = "Nullify"

[tables.filter_type]
type = "Contains"
column = "status"
value = "active"

[[tables]]
table_name = "audit_log"

[tables.anonymization_type]
type = "Single"
transformation = "fake_clear_table_transformation"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Tables, 2)

	users, ok := cfg.ByTable("users")
	require.True(t, ok)
	assert.Equal(t, AnonymizationMulti, users.AnonymizationKind)
	require.NotNil(t, users.KeepNumOfRecords)
	assert.Equal(t, 100, *users.KeepNumOfRecords)
	require.Len(t, users.Columns, 2)
	assert.Equal(t, TransformCustom, users.Columns[0].TransformKind)
	assert.True(t, users.Columns[0].RetainIfEmpty)
	assert.Equal(t, TransformNullify, users.Columns[1].TransformKind)
	assert.Equal(t, FilterContains, users.Filter.Kind)
	assert.Equal(t, "status", users.Filter.Column)

	auditLog, ok := cfg.ByTable("audit_log")
	require.True(t, ok)
	assert.Equal(t, AnonymizationSingle, auditLog.AnonymizationKind)
	assert.Equal(t, "fake_clear_table_transformation", auditLog.WholeTableOp)
}

func TestLoadRejectsDuplicateColumnNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db-schema-sync.toml")

	doc := `
[[tables]]
table_name = "users"

[tables.anonymization_type]
type = "Multi"

[[tables.anonymization_type.column_transformations]]
column_name = "email"
[tables.anonymization_type.column_transformations.transformation_type]
type = "Nullify"

[[tables.anonymization_type.column_transformations]]
column_name = "email"
[tables.anonymization_type.column_transformations.transformation_type]
type = "Nullify"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadParsesStartsAndEndsWithFilterBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db-schema-sync.toml")

	doc := `
[[tables]]
table_name = "users"

[tables.anonymization_type]
type = "Single"
transformation = "fake_clear_table_transformation"

[tables.filter_type]
type = "StartsAndEndsWith"
column = "code"
start_value = "ABC"
end_value = "XYZ"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	users, ok := cfg.ByTable("users")
	require.True(t, ok)
	assert.Equal(t, FilterStartsAndEndsWith, users.Filter.Kind)
	assert.Equal(t, "ABC", users.Filter.StartValue)
	assert.Equal(t, "XYZ", users.Filter.EndValue)
}

func TestPathBuildsConventionalLocation(t *testing.T) {
	got := Path("/work", "mydb", "public")
	assert.Equal(t, filepath.Join("/work", "configuration_data", "mydb-public-sync.toml"), got)
}
