// pkg/schema/definition_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test schema parsing and narrowing of TOML values

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/schema"
)

const minimalSchema = `
name = "Test template"
description = "A description"
kickstart_version = 1

[[variables]]
name = "project_name"
default = "My project"
prompt = "What's the name of your project?"

[[variables]]
name = "database"
default = "postgres"
prompt = "Which database to use?"
choices = ["postgres", "mysql"]

[[variables]]
name = "pg_version"
prompt = "Which version of Postgres?"
default = "10.4"
choices = ["10.4", "9.3"]
only_if = { name = "database", value = "postgres" }
`

func TestParse(t *testing.T) {
	def, err := schema.Parse([]byte(minimalSchema))
	require.NoError(t, err)

	assert.Equal(t, "Test template", def.Name)
	assert.Equal(t, 1, def.KickstartVersion)
	require.Len(t, def.Variables, 3)

	first := def.Variables[0]
	assert.Equal(t, "project_name", first.Name)
	assert.Equal(t, schema.KindString, first.Default.Kind())
	assert.Nil(t, first.Choices)

	third := def.Variables[2]
	require.NotNil(t, third.OnlyIf)
	assert.Equal(t, "database", third.OnlyIf.Name)
	assert.True(t, third.OnlyIf.Value.Equal(schema.StringValue("postgres")))
}

func TestParseTypedDefaults(t *testing.T) {
	def, err := schema.Parse([]byte(`
name = "Typed"
kickstart_version = 1

[[variables]]
name = "spa"
default = false
prompt = "Single page app?"

[[variables]]
name = "port"
default = 8080
prompt = "Which port?"
`))
	require.NoError(t, err)
	require.Len(t, def.Variables, 2)

	assert.Equal(t, schema.KindBool, def.Variables[0].Default.Kind())
	assert.Equal(t, schema.KindInt, def.Variables[1].Default.Kind())

	i, ok := def.Variables[1].Default.AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(8080), i)
}

func TestParseRejectsNonScalarValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "array_default",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "langs"
default = ["go", "rust"]
prompt = "?"
`,
		},
		{
			name: "float_default",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "ratio"
default = 0.5
prompt = "?"
`,
		},
		{
			name: "missing_default",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "nothing"
prompt = "?"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSchemaInvalid))
		})
	}
}

func TestParseCleanupRules(t *testing.T) {
	def, err := schema.Parse([]byte(`
name = "Cleanup"
kickstart_version = 1

[[variables]]
name = "auth_method"
default = "jwt"
prompt = "Auth?"
choices = ["jwt", "none"]

[[cleanup]]
name = "auth_method"
value = "none"
paths = ["docs/auth.md", "src/auth/"]
`))
	require.NoError(t, err)
	require.Len(t, def.Cleanup, 1)

	rule := def.Cleanup[0]
	assert.Equal(t, "auth_method", rule.Name)
	assert.True(t, rule.Value.Equal(schema.StringValue("none")))
	assert.Equal(t, []string{"docs/auth.md", "src/auth/"}, rule.Paths)
}

func TestValueEquality(t *testing.T) {
	// Same display form, different kinds
	assert.False(t, schema.StringValue("true").Equal(schema.BoolValue(true)))
	assert.False(t, schema.StringValue("1").Equal(schema.IntValue(1)))
	assert.True(t, schema.IntValue(42).Equal(schema.IntValue(42)))
	assert.True(t, schema.BoolValue(false).Equal(schema.BoolValue(false)))
	assert.Equal(t, "42", schema.IntValue(42).String())
	assert.Equal(t, "false", schema.BoolValue(false).String())
}
