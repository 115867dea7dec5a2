package schema

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/logging"
)

// DefinitionFilename is the schema file expected at the template root
const DefinitionFilename = "template.toml"

// SupportedVersion is the only schema version this engine understands
const SupportedVersion = 1

// Condition gates a variable or a cleanup rule on the resolved value of
// an earlier variable
type Condition struct {
	Name  string
	Value Value
}

// CleanupRule deletes the listed rendered paths after generation when
// the named variable resolved to the given value
type CleanupRule struct {
	Name  string
	Value Value
	Paths []string
}

// Variable is one question of the template, in document order.
// The TOML type of its default fixes the value type for the session.
type Variable struct {
	Name       string
	Default    Value
	Prompt     string
	Choices    []Value
	Validation string
	OnlyIf     *Condition
}

// Definition is the parsed template.toml
type Definition struct {
	Name              string
	Description       string
	Version           string
	KickstartVersion  int
	URL               string
	Authors           []string
	Keywords          []string
	Directory         string
	Ignore            []string
	CopyWithoutRender []string
	Cleanup           []CleanupRule
	Variables         []Variable
}

// Raw mirror of the TOML document. Defaults, choices and condition
// values decode as interface{} and are narrowed to Value afterwards.
type rawCondition struct {
	Name  string      `toml:"name"`
	Value interface{} `toml:"value"`
}

type rawCleanup struct {
	Name  string      `toml:"name"`
	Value interface{} `toml:"value"`
	Paths []string    `toml:"paths"`
}

type rawVariable struct {
	Name       string        `toml:"name"`
	Default    interface{}   `toml:"default"`
	Prompt     string        `toml:"prompt"`
	Choices    []interface{} `toml:"choices"`
	Validation string        `toml:"validation"`
	OnlyIf     *rawCondition `toml:"only_if"`
}

type rawDefinition struct {
	Name              string        `toml:"name"`
	Description       string        `toml:"description"`
	Version           string        `toml:"version"`
	KickstartVersion  int           `toml:"kickstart_version"`
	URL               string        `toml:"url"`
	Authors           []string      `toml:"authors"`
	Keywords          []string      `toml:"keywords"`
	Directory         string        `toml:"directory"`
	Ignore            []string      `toml:"ignore"`
	CopyWithoutRender []string      `toml:"copy_without_render"`
	Cleanup           []rawCleanup  `toml:"cleanup"`
	Variables         []rawVariable `toml:"variables"`
}

// Load reads and parses the template.toml found at the template root
func Load(templateRoot string) (*Definition, error) {
	path := filepath.Join(templateRoot, DefinitionFilename)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Newf(errors.ErrSchemaMissing, "no %s found in %s", DefinitionFilename, templateRoot)
	}
	return LoadFile(path)
}

// LoadFile reads and parses a schema document from an explicit path
func LoadFile(path string) (*Definition, error) {
	logger := logging.GetLogger("schema")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "reading %s", path).
			WithDetail("path", path)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("template", def.Name).
		Int("variables", len(def.Variables)).
		Int("cleanup_rules", len(def.Cleanup)).
		Msg("Schema loaded")

	return def, nil
}

// Parse decodes a schema document and narrows the dynamically typed
// fields to the closed value union
func Parse(data []byte) (*Definition, error) {
	var raw rawDefinition
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrSchemaParse, "invalid TOML")
	}

	def := &Definition{
		Name:              raw.Name,
		Description:       raw.Description,
		Version:           raw.Version,
		KickstartVersion:  raw.KickstartVersion,
		URL:               raw.URL,
		Authors:           raw.Authors,
		Keywords:          raw.Keywords,
		Directory:         raw.Directory,
		Ignore:            raw.Ignore,
		CopyWithoutRender: raw.CopyWithoutRender,
	}

	for _, rc := range raw.Cleanup {
		v, err := ValueFromTOML(rc.Value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSchemaInvalid, "cleanup rule on `%s`", rc.Name)
		}
		def.Cleanup = append(def.Cleanup, CleanupRule{Name: rc.Name, Value: v, Paths: rc.Paths})
	}

	for _, rv := range raw.Variables {
		if rv.Default == nil {
			return nil, errors.Newf(errors.ErrSchemaInvalid, "variable `%s` has no default", rv.Name)
		}
		d, err := ValueFromTOML(rv.Default)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSchemaInvalid, "default of variable `%s`", rv.Name)
		}

		v := Variable{
			Name:       rv.Name,
			Default:    d,
			Prompt:     rv.Prompt,
			Validation: rv.Validation,
		}

		for _, rc := range rv.Choices {
			c, err := ValueFromTOML(rc)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrSchemaInvalid, "choice of variable `%s`", rv.Name)
			}
			v.Choices = append(v.Choices, c)
		}

		if rv.OnlyIf != nil {
			cv, err := ValueFromTOML(rv.OnlyIf.Value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrSchemaInvalid, "only_if of variable `%s`", rv.Name)
			}
			v.OnlyIf = &Condition{Name: rv.OnlyIf.Name, Value: cv}
		}

		def.Variables = append(def.Variables, v)
	}

	return def, nil
}

// Variable returns the declared variable with the given name
func (d *Definition) Variable(name string) (*Variable, bool) {
	for i := range d.Variables {
		if d.Variables[i].Name == name {
			return &d.Variables[i], true
		}
	}
	return nil, false
}
