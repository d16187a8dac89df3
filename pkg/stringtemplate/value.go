package stringtemplate

// Provider supplies the value for a variable at substitution time.
//
// Provide returns the value and whether the provider counts as set.
// An unset provider makes Substitute fail with a MissingMappingError.
type Provider interface {
	Provide() (string, bool)
}

// Literal is a fixed string value. The empty Literal counts as unset.
type Literal string

// Provide implements Provider.
func (l Literal) Provide() (string, bool) {
	return string(l), l != ""
}

// Func computes a value lazily. It is called on every resolution and its
// result is never cached, so it may return a different value each time.
// A nil Func counts as unset; an empty result from a non-nil Func does not.
type Func func() string

// Provide implements Provider.
func (f Func) Provide() (string, bool) {
	if f == nil {
		return "", false
	}
	return f(), true
}

// Mapping maps variable names to providers.
type Mapping map[string]Provider

// Strings builds a Mapping of literals from a plain string map.
func Strings(values map[string]string) Mapping {
	m := make(Mapping, len(values))
	for name, v := range values {
		m[name] = Literal(v)
	}
	return m
}

// resolve returns the value for name and false when it is missing or unset.
func (m Mapping) resolve(name string) (string, bool) {
	p, ok := m[name]
	if !ok || p == nil {
		return "", false
	}
	return p.Provide()
}
