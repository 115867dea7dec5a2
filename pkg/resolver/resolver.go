// Package resolver walks a template's ordered variable list and builds
// the Context used for all rendering. Resolution is strictly
// sequential: a variable's gate and templated default only ever see
// variables declared before it.
package resolver

import (
	"regexp"
	"strings"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/logging"
	"github.com/Keats/kickstart/pkg/prompt"
	"github.com/Keats/kickstart/pkg/render"
	"github.com/Keats/kickstart/pkg/schema"
)

// Prompter is the interactive input source for one variable at a time.
// Implementations block until they have a usable answer; invalid input
// is their retry point, not the resolver's.
type Prompter interface {
	AskString(prompt, def string, validation *regexp.Regexp) (string, error)
	AskBool(prompt string, def bool) (bool, error)
	AskInteger(prompt string, def int64) (int64, error)
	AskChoice(prompt string, def schema.Value, choices []schema.Value) (schema.Value, error)
}

// Options controls a resolution run
type Options struct {
	// NoInput answers every question with its effective default
	NoInput bool
	// Overrides are raw values from --set flags, coerced to each
	// variable's declared type. An overridden variable is never prompted.
	Overrides map[string]string
	// Prompter supplies interactive answers; required unless NoInput
	Prompter Prompter
}

// Resolve builds the Context for the definition's variables, in
// declaration order
func Resolve(def *schema.Definition, opts Options) (*schema.Context, error) {
	logger := logging.GetLogger("resolver")
	engine := render.NewEngine()
	ctx := schema.NewContext()

	for name := range opts.Overrides {
		if _, ok := def.Variable(name); !ok {
			return nil, errors.Newf(errors.ErrUnknownVariable,
				"`%s` was set but isn't a variable of this template", name)
		}
	}

	declared := make(map[string]bool, len(def.Variables))

	for i := range def.Variables {
		v := &def.Variables[i]

		if v.OnlyIf != nil {
			if !declared[v.OnlyIf.Name] {
				return nil, errors.Newf(errors.ErrBadReference,
					"variable `%s` depends on `%s`, which wasn't asked", v.Name, v.OnlyIf.Name)
			}
			current, resolved := ctx.Get(v.OnlyIf.Name)
			if !resolved || !current.Equal(v.OnlyIf.Value) {
				logger.Debug().Str("variable", v.Name).Msg("Gate not met, skipping")
				declared[v.Name] = true
				continue
			}
		}
		declared[v.Name] = true

		defVal, err := effectiveDefault(engine, v, ctx)
		if err != nil {
			return nil, err
		}

		if raw, ok := opts.Overrides[v.Name]; ok {
			val, err := override(v, raw)
			if err != nil {
				return nil, err
			}
			ctx.Insert(v.Name, val)
			continue
		}

		if opts.NoInput {
			ctx.Insert(v.Name, defVal)
			continue
		}

		val, err := ask(opts.Prompter, v, defVal)
		if err != nil {
			return nil, err
		}
		ctx.Insert(v.Name, val)
	}

	logger.Debug().Strs("resolved", ctx.Names()).Msg("Context built")
	return ctx, nil
}

// effectiveDefault renders a templated string default against the
// partial context; other defaults pass through unchanged
func effectiveDefault(engine *render.Engine, v *schema.Variable, ctx *schema.Context) (schema.Value, error) {
	s, isString := v.Default.AsString()
	if !isString || !strings.Contains(s, "{{") {
		return v.Default, nil
	}

	rendered, err := engine.Render("default of `"+v.Name+"`", s, ctx)
	if err != nil {
		return schema.Value{}, err
	}
	return schema.StringValue(rendered), nil
}

// override coerces a --set value to the variable's type and, for a
// choices variable, checks it against the permitted set
func override(v *schema.Variable, raw string) (schema.Value, error) {
	val, err := prompt.Coerce(raw, v.Default.Kind())
	if err != nil {
		return schema.Value{}, errors.Wrapf(err, errors.ErrTypeMismatch,
			"value set for `%s`", v.Name)
	}

	if v.Choices != nil {
		for _, c := range v.Choices {
			if c.Equal(val) {
				return val, nil
			}
		}
		return schema.Value{}, errors.Newf(errors.ErrInvalidInput,
			"`%s` was set to `%s`, which isn't one of its choices", v.Name, raw)
	}

	return val, nil
}

// ask dispatches on the variable shape: choices first, then the kind
// inferred from the default
func ask(p Prompter, v *schema.Variable, def schema.Value) (schema.Value, error) {
	if p == nil {
		return schema.Value{}, errors.New(errors.ErrInternal, "no prompter configured for interactive resolution")
	}

	if v.Choices != nil {
		return p.AskChoice(v.Prompt, def, v.Choices)
	}

	switch v.Default.Kind() {
	case schema.KindBool:
		b, _ := def.AsBool()
		res, err := p.AskBool(v.Prompt, b)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.BoolValue(res), nil
	case schema.KindInt:
		i, _ := def.AsInt()
		res, err := p.AskInteger(v.Prompt, i)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.IntValue(res), nil
	default:
		s, _ := def.AsString()
		validation, err := v.ValidationRegexp()
		if err != nil {
			return schema.Value{}, errors.Wrapf(err, errors.ErrBadPattern,
				"validation regex of `%s`", v.Name)
		}
		res, err := p.AskString(v.Prompt, s, validation)
		if err != nil {
			return schema.Value{}, err
		}
		return schema.StringValue(res), nil
	}
}
