package stringtemplate

import (
	"fmt"
	"strings"
)

// Template is a compiled template string.
//
// Create with New. A Template is immutable and safe for concurrent use.
type Template struct {
	source string
	nodes  []Node
	vars   []*Variable
	byName map[string]*Variable
}

// New compiles source. It never fails.
//
// Example:
//
//	tmpl := stringtemplate.New("Hello ${name^}!")
//	out, err := tmpl.Substitute(stringtemplate.Strings(map[string]string{"name": "world"}))
//	// out: "Hello World!"
func New(source string) *Template {
	p := newParser()
	p.parse(source)
	return &Template{
		source: source,
		nodes:  p.nodes,
		vars:   p.vars.ordered,
		byName: p.vars.byName,
	}
}

// Source returns the string the template was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Nodes returns the node sequence in output order.
func (t *Template) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Variables returns the distinct variables in order of first appearance.
func (t *Template) Variables() []*Variable {
	out := make([]*Variable, len(t.vars))
	copy(out, t.vars)
	return out
}

// Variable returns the variable called name.
func (t *Template) Variable(name string) (*Variable, bool) {
	v, ok := t.byName[name]
	return v, ok
}

// Names returns the variable names in order of first appearance.
func (t *Template) Names() []string {
	names := make([]string, len(t.vars))
	for i, v := range t.vars {
		names[i] = v.name
	}
	return names
}

// Normalized rebuilds the template from its nodes: text with "$" escaped
// as "$$", placeholders as "${name<suffix>}". Stray "$" characters and
// unterminated placeholders of the source are gone.
func (t *Template) Normalized() string {
	var sb strings.Builder
	for _, n := range t.nodes {
		switch n := n.(type) {
		case *TextNode:
			sb.WriteString(strings.ReplaceAll(n.text, "$", "$$"))
		case *VariableNode:
			sb.WriteString(n.marker())
		}
	}
	return sb.String()
}

// Substitute renders the template with values from m.
//
// Returns a *MissingMappingError if a referenced variable is absent from m
// or its provider is unset. Func providers are called once per placeholder
// occurrence on every call.
func (t *Template) Substitute(m Mapping) (string, error) {
	var sb strings.Builder
	for _, n := range t.nodes {
		switch n := n.(type) {
		case *TextNode:
			sb.WriteString(n.text)
		case *VariableNode:
			v, ok := m.resolve(n.variable.name)
			if !ok {
				return "", &MissingMappingError{Name: n.variable.name}
			}
			sb.WriteString(n.transform.Apply(v))
		default:
			return "", &InternalError{Node: fmt.Sprintf("%T", n)}
		}
	}
	return sb.String(), nil
}

// MustSubstitute is like Substitute but panics on error.
func (t *Template) MustSubstitute(m Mapping) string {
	out, err := t.Substitute(m)
	if err != nil {
		panic(fmt.Sprintf("stringtemplate: %v", err))
	}
	return out
}

// SubstituteAll renders the template once per mapping.
//
// On error, returns nil and the first error.
func (t *Template) SubstituteAll(ms []Mapping) ([]string, error) {
	if ms == nil {
		return nil, nil
	}

	results := make([]string, len(ms))
	for i, m := range ms {
		out, err := t.Substitute(m)
		if err != nil {
			return nil, err
		}
		results[i] = out
	}
	return results, nil
}
