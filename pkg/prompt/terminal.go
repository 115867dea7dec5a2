package prompt

import (
	"regexp"

	"github.com/pterm/pterm"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/logging"
	"github.com/Keats/kickstart/pkg/schema"
)

// Terminal asks questions on the controlling terminal through pterm.
// Each Ask method blocks until the answer interprets cleanly; invalid
// input re-prompts, it never aborts the run.
type Terminal struct{}

// NewTerminal creates the interactive prompter
func NewTerminal() *Terminal {
	return &Terminal{}
}

// AskString prompts for free text, re-prompting until the validation
// regex (if any) passes
func (t *Terminal) AskString(prompt, def string, validation *regexp.Regexp) (string, error) {
	logger := logging.GetLogger("prompt")
	for {
		input, err := pterm.DefaultInteractiveTextInput.
			WithDefaultValue(def).
			Show(prompt)
		if err != nil {
			return "", readError(err)
		}

		res, ierr := InterpretString(input, def, validation)
		if ierr != nil {
			pterm.Error.Println(ierr.Error())
			logger.Debug().Str("input", input).Msg("Rejected string answer")
			continue
		}
		return res, nil
	}
}

// AskBool prompts for a yes/no confirmation
func (t *Terminal) AskBool(prompt string, def bool) (bool, error) {
	res, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(prompt)
	if err != nil {
		return false, readError(err)
	}
	return res, nil
}

// AskInteger prompts for an integer, re-prompting until it parses
func (t *Terminal) AskInteger(prompt string, def int64) (int64, error) {
	logger := logging.GetLogger("prompt")
	for {
		input, err := pterm.DefaultInteractiveTextInput.
			WithDefaultValue(schema.IntValue(def).String()).
			Show(prompt)
		if err != nil {
			return 0, readError(err)
		}

		res, ierr := InterpretInteger(input, def)
		if ierr != nil {
			pterm.Error.Println(ierr.Error())
			logger.Debug().Str("input", input).Msg("Rejected integer answer")
			continue
		}
		return res, nil
	}
}

// AskChoice prompts with a selection list constrained to the declared
// choices; free text is never accepted
func (t *Terminal) AskChoice(prompt string, def schema.Value, choices []schema.Value) (schema.Value, error) {
	options := make([]string, len(choices))
	for i, c := range choices {
		options[i] = c.String()
	}

	picked, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(def.String()).
		Show(prompt)
	if err != nil {
		return schema.Value{}, readError(err)
	}

	for i, o := range options {
		if o == picked {
			return choices[i], nil
		}
	}
	// pterm only returns one of the options, so this is unreachable
	return def, nil
}

// Confirm asks a standalone yes/no question outside variable resolution
func (t *Terminal) Confirm(prompt string, def bool) (bool, error) {
	return t.AskBool(prompt, def)
}

func readError(err error) error {
	return errors.Wrap(err, errors.ErrUnreadableInput, "unable to read from the terminal")
}
