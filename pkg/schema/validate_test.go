// pkg/schema/validate_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test that schema validation reports every problem in one pass

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keats/kickstart/pkg/schema"
)

func validate(t *testing.T, doc string) []string {
	t.Helper()
	def, err := schema.Parse([]byte(doc))
	require.NoError(t, err)
	return def.Validate()
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantErrs []string
	}{
		{
			name: "valid_schema",
			doc: `
name = "Ok"
kickstart_version = 1

[[variables]]
name = "project_name"
default = "My project"
prompt = "Name?"
validation = "[a-zA-Z ]+"

[[variables]]
name = "spa"
default = false
prompt = "SPA?"

[[variables]]
name = "js_framework"
default = "React"
prompt = "Framework?"
choices = ["React", "Angular", "Vue", "None"]
only_if = { name = "spa", value = true }
`,
			wantErrs: nil,
		},
		{
			name: "default_not_in_choices",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "database"
default = "sqlite"
prompt = "Database?"
choices = ["postgres", "mysql"]
`,
			wantErrs: []string{"variable `database` has `sqlite` as default, which isn't in the choices"},
		},
		{
			name: "forward_reference",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "pg_version"
default = "10.4"
prompt = "Version?"
only_if = { name = "database", value = "postgres" }

[[variables]]
name = "database"
default = "postgres"
prompt = "Database?"
`,
			wantErrs: []string{"variable `pg_version` depends on `database`, which wasn't asked"},
		},
		{
			name: "condition_type_mismatch",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "spa"
default = false
prompt = "SPA?"

[[variables]]
name = "js_framework"
default = "React"
prompt = "Framework?"
only_if = { name = "spa", value = "true" }
`,
			wantErrs: []string{"variable `js_framework` depends on `spa=true`, but the type of `spa` is bool"},
		},
		{
			name: "validation_on_bool",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "spa"
default = false
prompt = "SPA?"
validation = "[a-z]+"
`,
			wantErrs: []string{"variable `spa` has a validation regex but is not a string"},
		},
		{
			name: "invalid_validation_regex",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "project_name"
default = "ok"
prompt = "Name?"
validation = "[unclosed"
`,
			wantErrs: []string{"variable `project_name` has an invalid validation regex: [unclosed"},
		},
		{
			name: "default_fails_validation",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "project_name"
default = "Has Spaces"
prompt = "Name?"
validation = "[a-z]+"
`,
			wantErrs: []string{"variable `project_name` has a default that doesn't pass its validation regex"},
		},
		{
			name: "missing_template_name",
			doc: `
kickstart_version = 1

[[variables]]
name = "spa"
default = false
prompt = "SPA?"
`,
			wantErrs: []string{"the template has no name"},
		},
		{
			name: "variable_without_prompt",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "spa"
default = false
`,
			wantErrs: []string{"variable `spa` has no prompt"},
		},
		{
			name: "unsupported_version",
			doc: `
name = "Bad"
kickstart_version = 2
`,
			wantErrs: []string{"kickstart_version is 2, only 1 is supported"},
		},
		{
			name: "cleanup_unknown_variable",
			doc: `
name = "Bad"
kickstart_version = 1

[[variables]]
name = "spa"
default = false
prompt = "SPA?"

[[cleanup]]
name = "auth_method"
value = "none"
paths = ["docs/auth.md"]
`,
			wantErrs: []string{"cleanup rule references `auth_method`, which isn't a variable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validate(t, tt.doc)
			assert.Equal(t, tt.wantErrs, errs)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	errs := validate(t, `
name = "Bad"
kickstart_version = 3

[[variables]]
name = "database"
default = "sqlite"
prompt = "Database?"
choices = ["postgres", "mysql"]

[[variables]]
name = "pg_version"
default = "10.4"
prompt = "Version?"
only_if = { name = "nope", value = "postgres" }
`)
	assert.Len(t, errs, 3)
}

func TestValidateSkipsTemplatedDefaults(t *testing.T) {
	// A templated default can only be checked against the regex once
	// rendered, so validation must not flag it up front.
	errs := validate(t, `
name = "Ok"
kickstart_version = 1

[[variables]]
name = "project_name"
default = "My Project"
prompt = "Name?"

[[variables]]
name = "package_name"
default = "{{ .project_name | snake_case }}"
prompt = "Package?"
validation = "[a-z_]+"
`)
	assert.Empty(t, errs)
}
