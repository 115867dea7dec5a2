package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keats/kickstart/pkg/errors"
)

// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Verify --set flag parsing into variable overrides

func TestParseSetFlags(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "empty",
			pairs: nil,
			want:  nil,
		},
		{
			name:  "single pair",
			pairs: []string{"project_name=demo"},
			want:  map[string]string{"project_name": "demo"},
		},
		{
			name:  "value containing equals",
			pairs: []string{"motto=a=b"},
			want:  map[string]string{"motto": "a=b"},
		},
		{
			name:  "empty value",
			pairs: []string{"name="},
			want:  map[string]string{"name": ""},
		},
		{
			name:    "missing equals",
			pairs:   []string{"project_name"},
			wantErr: true,
		},
		{
			name:    "missing name",
			pairs:   []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSetFlags(tt.pairs)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TEST TYPE: Integration Test
// DEPENDENCIES: Filesystem
// PURPOSE: Verify the validate subcommand against real template.toml files

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.toml")
	content := `
name = "demo"
description = "A demo template"
kickstart_version = 1

[[variables]]
name = "project_name"
default = "My Project"
prompt = "What is the name of your project?"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rootCmd.SetArgs([]string{"validate", path})
	err := rootCmd.Execute()
	assert.NoError(t, err)
}

func TestValidateCmdReportsProblems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.toml")
	content := `
name = "demo"
description = "A demo template"
kickstart_version = 1

[[variables]]
name = "maintained"
default = true
prompt = "Is the project maintained?"

[[variables]]
name = "gated"
default = "yes"
prompt = "Gated?"

[variables.only_if]
name = "missing_variable"
value = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rootCmd.SetArgs([]string{"validate", path})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSchemaInvalid))
}

func TestValidateCmdMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"validate", filepath.Join(t.TempDir(), "template.toml")})
	err := rootCmd.Execute()
	require.Error(t, err)
}
