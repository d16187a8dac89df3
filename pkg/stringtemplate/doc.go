/*
Package stringtemplate compiles strings with ${name} placeholders and
substitutes values into them.

# Overview

A template is compiled once with New and rendered any number of times with
Substitute. Compilation splits the source into text and placeholder nodes and
records every distinct variable in order of first appearance.

	tmpl := stringtemplate.New("Dear ${title^} ${name},")
	out, err := tmpl.Substitute(stringtemplate.Strings(map[string]string{
	    "title": "dr.",
	    "name":  "Who",
	}))
	// out: "Dear Dr. Who,"

# Syntax

  - ${name} - replaced by the value of name
  - $$ - a literal "$"
  - $ followed by anything other than "$" or "{" - the "$" is dropped
  - { and } outside a placeholder - kept literally
  - ${} - produces nothing

Compilation never fails. Unterminated placeholders are dropped.

# Transforms

A placeholder name may end with a case transform marker:

  - ${name^^} - upper-case the value
  - ${name,,} - lower-case the value
  - ${name^} - upper-case the first character
  - ${name,} - lower-case the first character

Markers are matched as plain suffixes, doubled ones first. ${x^^^} therefore
refers to the variable "x^" with the upper-case transform. A marker that
would leave an empty name is not a marker: ${^} refers to the variable "".

# Values

A Mapping maps names to Providers. Literal is a fixed value, Func is called
on every substitution:

	counter := 0
	m := stringtemplate.Mapping{
	    "host": stringtemplate.Literal("example.com"),
	    "n": stringtemplate.Func(func() string {
	        counter++
	        return strconv.Itoa(counter)
	    }),
	}

A missing name, a nil provider, a nil Func and the empty Literal all make
Substitute return a *MissingMappingError.

# Thread Safety

A Template has no mutating methods and is safe for concurrent use. Providers
run on the calling goroutine.
*/
package stringtemplate
