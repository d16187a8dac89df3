package stringtemplate

import "strings"

// parser turns a template source into nodes. It is used once per Template
// and discarded afterwards, which is what keeps the result immutable.
type parser struct {
	nodes     []Node
	vars      *registry
	text      strings.Builder
	name      strings.Builder
	dollar    bool
	declaring bool
}

func newParser() *parser {
	return &parser{vars: newRegistry()}
}

// parse scans source rune by rune. It never fails: malformed placeholders
// degrade into text or are dropped.
func (p *parser) parse(source string) {
	for _, c := range source {
		switch c {
		case '$':
			if p.dollar {
				p.text.WriteRune('$')
				p.dollar = false
			} else {
				p.dollar = true
			}
		case '{':
			if p.dollar {
				p.declaring = true
				p.flushText()
			} else {
				p.text.WriteRune('{')
			}
		case '}':
			if p.declaring {
				p.declaring = false
				p.closeVariable()
			} else {
				p.text.WriteRune('}')
				p.dollar = false
			}
		default:
			// A "$" not followed by "$" or "{" is dropped.
			p.dollar = false
			if p.declaring {
				p.name.WriteRune(c)
			} else {
				p.text.WriteRune(c)
			}
		}
	}
	// Whatever an unterminated "${" collected in the name buffer is lost.
	p.flushText()
}

func (p *parser) flushText() {
	if p.text.Len() == 0 {
		return
	}
	p.nodes = append(p.nodes, &TextNode{text: p.text.String()})
	p.text.Reset()
}

// closeVariable handles the "}" that ends a placeholder.
func (p *parser) closeVariable() {
	name := p.name.String()
	p.name.Reset()
	if name == "" {
		return
	}

	name, transform := splitSuffix(name)
	v := p.vars.getOrCreate(name)
	n := &VariableNode{variable: v, transform: transform}
	v.nodes = append(v.nodes, n)
	p.nodes = append(p.nodes, n)
}

// splitSuffix strips the first matching transform marker from raw. The
// transform is kept only if a name remains, so "${^^}" is the variable ""
// without transform, and "x^^^" is the variable "x^" upper-cased.
func splitSuffix(raw string) (string, Transform) {
	for _, s := range suffixes {
		if !strings.HasSuffix(raw, s.marker) {
			continue
		}
		name := strings.TrimSuffix(raw, s.marker)
		if name == "" {
			return name, TransformNone
		}
		return name, s.transform
	}
	return raw, TransformNone
}
