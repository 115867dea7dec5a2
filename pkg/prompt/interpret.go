// Package prompt is the interactive I/O collaborator: it asks the
// questions a template declares and interprets the raw answers.
// Interpretation is kept in pure functions so the retry loops around
// them stay trivial and the logic stays testable without a terminal.
package prompt

import (
	"regexp"
	"strconv"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/schema"
)

// InterpretBool reads a yes/no answer. Empty input picks the default.
func InterpretBool(input string, def bool) (bool, error) {
	switch input {
	case "y", "Y", "yes", "YES", "true":
		return true, nil
	case "n", "N", "no", "NO", "false":
		return false, nil
	case "":
		return def, nil
	default:
		return false, errors.Newf(errors.ErrInvalidInput, "invalid choice: '%s'", input)
	}
}

// InterpretString reads a free-text answer, matching it against the
// anchored validation regex when one is set. Empty input picks the
// default without validating it again.
func InterpretString(input, def string, validation *regexp.Regexp) (string, error) {
	if input == "" {
		return def, nil
	}
	if validation != nil && !validation.MatchString(input) {
		return "", errors.Newf(errors.ErrInvalidInput,
			"the value needs to pass the regex: %s", validation.String())
	}
	return input, nil
}

// InterpretInteger reads an integer answer. The whole token must parse.
func InterpretInteger(input string, def int64) (int64, error) {
	if input == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, errors.Newf(errors.ErrInvalidInput, "invalid integer: '%s'", input)
	}
	return i, nil
}

// InterpretChoice reads a 1-based index into the choices list.
// Empty input picks the default.
func InterpretChoice(input string, def schema.Value, choices []schema.Value) (schema.Value, error) {
	if input == "" {
		return def, nil
	}
	num, err := strconv.Atoi(input)
	if err != nil || num < 1 || num > len(choices) {
		return schema.Value{}, errors.Newf(errors.ErrInvalidInput, "invalid choice: '%s'", input)
	}
	return choices[num-1], nil
}

// Coerce converts a raw string (from an unattended source such as a
// --set flag) to the given kind. There is no default and no retry:
// failure is a type mismatch.
func Coerce(raw string, kind schema.Kind) (schema.Value, error) {
	switch kind {
	case schema.KindString:
		return schema.StringValue(raw), nil
	case schema.KindBool:
		b, err := InterpretBool(raw, false)
		if err != nil || raw == "" {
			return schema.Value{}, errors.Newf(errors.ErrTypeMismatch,
				"'%s' is not a boolean", raw)
		}
		return schema.BoolValue(b), nil
	case schema.KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return schema.Value{}, errors.Newf(errors.ErrTypeMismatch,
				"'%s' is not an integer", raw)
		}
		return schema.IntValue(i), nil
	}
	return schema.Value{}, errors.Newf(errors.ErrTypeMismatch, "unknown kind for '%s'", raw)
}
