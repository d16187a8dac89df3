/*
Package config loads template sources and value mappings from YAML or JSON.

# Overview

config wraps a map[string]any with defaulting accessors and converts
sections of it into inputs for stringtemplate:

	# templates.yaml
	store: ./templates.db
	templates:
	  greeting: "Hello ${name^}!"
	  farewell: "Bye ${name,,}."
	values:
	  name: world
	  port: 8080

	cfg, err := config.FromFile("templates.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	sources, err := cfg.Templates("templates") // map[string]string
	values, err := cfg.Mapping("values")       // stringtemplate.Mapping
	path := cfg.String("store", ":memory:")

# Type Coercion

Mapping formats scalar values with fmt, so 8080 becomes "8080" and true
becomes "true". Null values are skipped. Nested maps and lists are rejected
with a *ValueError.

Scalar accessors (String, Int, Bool) return the default if the key is missing
or has the wrong type. Int accepts float64 without fractional part, which is
how JSON numbers decode.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
