package schema

import "sort"

// Context is the append-only mapping from variable name to resolved value.
// It is built incrementally in declaration order by the resolver and is
// read-only during rendering and cleanup.
type Context struct {
	values map[string]Value
}

// NewContext creates an empty Context
func NewContext() *Context {
	return &Context{values: make(map[string]Value)}
}

// Insert adds a resolved variable. Later inserts for the same name win,
// which never happens for a valid schema since names are unique.
func (c *Context) Insert(name string, v Value) {
	c.values[name] = v
}

// Get returns the value for a name, false if the variable was skipped
// or never declared
func (c *Context) Get(name string) (Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has reports whether a name was resolved
func (c *Context) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Len returns the number of resolved variables
func (c *Context) Len() int {
	return len(c.values)
}

// Names returns the resolved variable names, sorted
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateData returns the context as native Go values for the
// template engine
func (c *Context) TemplateData() map[string]interface{} {
	data := make(map[string]interface{}, len(c.values))
	for name, v := range c.values {
		data[name] = v.Interface()
	}
	return data
}
