package stringtemplate

// Node is one element of a compiled template: a *TextNode or a *VariableNode.
// The set of implementations is closed.
type Node interface {
	node()
}

// TextNode holds literal text, with escape sequences already resolved.
type TextNode struct {
	text string
}

func (*TextNode) node() {}

// Text returns the literal text.
func (n *TextNode) Text() string {
	return n.text
}

// VariableNode is one placeholder occurrence.
type VariableNode struct {
	variable  *Variable
	transform Transform
}

func (*VariableNode) node() {}

// Variable returns the variable this placeholder refers to.
func (n *VariableNode) Variable() *Variable {
	return n.variable
}

// Transform returns the case conversion attached to this placeholder.
func (n *VariableNode) Transform() Transform {
	return n.transform
}

// marker renders the placeholder as it would appear in a template.
func (n *VariableNode) marker() string {
	return "${" + n.variable.name + n.transform.Suffix() + "}"
}

// Variable is a distinct placeholder name together with every node that
// references it.
type Variable struct {
	name  string
	nodes []*VariableNode
}

// Name returns the variable name without transform suffix.
func (v *Variable) Name() string {
	return v.name
}

// Nodes returns the referencing nodes in order of appearance.
func (v *Variable) Nodes() []*VariableNode {
	out := make([]*VariableNode, len(v.nodes))
	copy(out, v.nodes)
	return out
}

// UsageCount returns how many placeholders reference the variable.
func (v *Variable) UsageCount() int {
	return len(v.nodes)
}

// registry indexes variables by name while keeping first-occurrence order.
type registry struct {
	byName  map[string]*Variable
	ordered []*Variable
}

func newRegistry() *registry {
	return &registry{byName: make(map[string]*Variable)}
}

// getOrCreate returns the variable called name, adding it if needed.
func (r *registry) getOrCreate(name string) *Variable {
	if v, ok := r.byName[name]; ok {
		return v
	}
	v := &Variable{name: name}
	r.byName[name] = v
	r.ordered = append(r.ordered, v)
	return v
}
