package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate goes through the definition and collects every problem:
// invalid globs or regexes, defaults missing from choices, conditions
// referencing unknown or later variables, type mismatches. An empty
// slice means the schema is usable.
func (d *Definition) Validate() []string {
	var errs []string

	if d.Name == "" {
		errs = append(errs, "the template has no name")
	}
	if d.KickstartVersion != SupportedVersion {
		errs = append(errs, fmt.Sprintf(
			"kickstart_version is %d, only %d is supported", d.KickstartVersion, SupportedVersion))
	}

	for _, pattern := range d.CopyWithoutRender {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Sprintf(
				"in copy_without_render, `%s` is not a valid pattern", pattern))
		}
	}
	for _, pattern := range d.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Sprintf("in ignore, `%s` is not a valid pattern", pattern))
		}
	}

	// Variables are ordered, so walking them while recording the type of
	// each name detects forward references and type mismatches in one pass.
	types := make(map[string]Kind)

	for _, v := range d.Variables {
		if v.Name == "" {
			errs = append(errs, "a variable has no name")
			continue
		}
		if v.Prompt == "" {
			errs = append(errs, fmt.Sprintf("variable `%s` has no prompt", v.Name))
		}
		if _, seen := types[v.Name]; seen {
			errs = append(errs, fmt.Sprintf("variable `%s` is declared twice", v.Name))
		}
		types[v.Name] = v.Default.Kind()

		if v.Choices != nil {
			found := false
			for _, c := range v.Choices {
				if c.Equal(v.Default) {
					found = true
				}
			}
			if !found {
				errs = append(errs, fmt.Sprintf(
					"variable `%s` has `%s` as default, which isn't in the choices", v.Name, v.Default))
			}
		}

		if v.OnlyIf != nil {
			if t, ok := types[v.OnlyIf.Name]; ok {
				if v.OnlyIf.Name == v.Name {
					errs = append(errs, fmt.Sprintf("variable `%s` depends on itself", v.Name))
				} else if t != v.OnlyIf.Value.Kind() {
					errs = append(errs, fmt.Sprintf(
						"variable `%s` depends on `%s=%s`, but the type of `%s` is %s",
						v.Name, v.OnlyIf.Name, v.OnlyIf.Value, v.OnlyIf.Name, t))
				}
			} else {
				errs = append(errs, fmt.Sprintf(
					"variable `%s` depends on `%s`, which wasn't asked", v.Name, v.OnlyIf.Name))
			}
		}

		if v.Validation != "" {
			if v.Default.Kind() != KindString {
				errs = append(errs, fmt.Sprintf(
					"variable `%s` has a validation regex but is not a string", v.Name))
				continue
			}
			if v.Choices != nil {
				errs = append(errs, fmt.Sprintf(
					"variable `%s` has both choices and a validation regex", v.Name))
				continue
			}

			re, err := regexp.Compile(anchored(v.Validation))
			if err != nil {
				errs = append(errs, fmt.Sprintf(
					"variable `%s` has an invalid validation regex: %s", v.Name, v.Validation))
				continue
			}

			// Templated defaults can only be checked once resolved
			def, _ := v.Default.AsString()
			if !strings.Contains(def, "{{") && !re.MatchString(def) {
				errs = append(errs, fmt.Sprintf(
					"variable `%s` has a default that doesn't pass its validation regex", v.Name))
			}
		}
	}

	for _, rule := range d.Cleanup {
		if t, ok := types[rule.Name]; ok {
			if t != rule.Value.Kind() {
				errs = append(errs, fmt.Sprintf(
					"cleanup rule on `%s=%s` doesn't match the variable type %s",
					rule.Name, rule.Value, t))
			}
		} else {
			errs = append(errs, fmt.Sprintf(
				"cleanup rule references `%s`, which isn't a variable", rule.Name))
		}
	}

	return errs
}

// ValidateFile loads a schema document and returns its problems.
// An error is only returned when the file can't be read or parsed at all.
func ValidateFile(path string) ([]string, error) {
	def, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return def.Validate(), nil
}

// ValidationRegexp compiles a variable's validation pattern anchored at
// both ends, so the whole input has to match
func (v *Variable) ValidationRegexp() (*regexp.Regexp, error) {
	if v.Validation == "" {
		return nil, nil
	}
	return regexp.Compile(anchored(v.Validation))
}

func anchored(pattern string) string {
	return "^(?:" + pattern + ")$"
}
