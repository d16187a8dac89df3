package stringtemplate

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform is a case conversion applied to a resolved value.
type Transform int

const (
	// TransformNone leaves the value unchanged.
	TransformNone Transform = iota

	// TransformUpper upper-cases the whole value. Suffix "^^".
	TransformUpper

	// TransformLower lower-cases the whole value. Suffix ",,".
	TransformLower

	// TransformCapitalize upper-cases the first character. Suffix "^".
	TransformCapitalize

	// TransformUncapitalize lower-cases the first character. Suffix ",".
	TransformUncapitalize
)

// suffixes lists the transform markers in detection order. Doubled markers
// come first so "^^" is never read as "^".
var suffixes = []struct {
	marker    string
	transform Transform
}{
	{"^^", TransformUpper},
	{",,", TransformLower},
	{"^", TransformCapitalize},
	{",", TransformUncapitalize},
}

// String returns the transform name.
func (t Transform) String() string {
	switch t {
	case TransformNone:
		return "none"
	case TransformUpper:
		return "upper"
	case TransformLower:
		return "lower"
	case TransformCapitalize:
		return "capitalize"
	case TransformUncapitalize:
		return "uncapitalize"
	default:
		return "unknown"
	}
}

// Suffix returns the marker that selects t inside a placeholder.
func (t Transform) Suffix() string {
	for _, s := range suffixes {
		if s.transform == t {
			return s.marker
		}
	}
	return ""
}

// Apply converts s. Casers are created per call because x/text casers
// carry state and must not be shared between goroutines.
func (t Transform) Apply(s string) string {
	switch t {
	case TransformUpper:
		return cases.Upper(language.Und).String(s)
	case TransformLower:
		return cases.Lower(language.Und).String(s)
	case TransformCapitalize:
		return mapFirst(s, cases.Upper(language.Und))
	case TransformUncapitalize:
		return mapFirst(s, cases.Lower(language.Und))
	default:
		return s
	}
}

// mapFirst applies c to the first rune of s and keeps the rest as is.
func mapFirst(s string, c cases.Caser) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return c.String(s[:size]) + s[size:]
}
