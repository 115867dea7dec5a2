package render

import (
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
)

// Filters returns the registered case-conversion functions. They are
// pure string to string and usable in pipelines on both path and
// content templates.
func Filters() template.FuncMap {
	return template.FuncMap{
		"upper_camel_case":  strcase.ToCamel,
		"camel_case":        strcase.ToLowerCamel,
		"snake_case":        strcase.ToSnake,
		"kebab_case":        strcase.ToKebab,
		"shouty_snake_case": strcase.ToScreamingSnake,
		"shouty_kebab_case": strcase.ToScreamingKebab,
		"title_case":        titleCase,
		"lower":             strings.ToLower,
		"upper":             strings.ToUpper,
	}
}

// titleCase renders "my-project_name" as "My Project Name"
func titleCase(s string) string {
	words := strings.Fields(strcase.ToDelimited(s, ' '))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
