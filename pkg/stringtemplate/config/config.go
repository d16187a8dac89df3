package config

import (
	"fmt"
	"sort"

	"github.com/randalmurphal/stringtemplate/pkg/stringtemplate"
)

// Config wraps a map[string]any for type-safe value extraction.
// Scalar accessors return default values if the key is missing or the value
// cannot be converted to the requested type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
//
// Accepts int, int64, and float64 without fractional part.
func (c Config) Int(key string, defaultVal int) int {
	switch val := c.data[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}

// ValueError reports a config value that cannot be used as requested.
type ValueError struct {
	// Section is the top-level key being read.
	Section string
	// Key is the entry inside the section, empty for the section itself.
	Key string
	// Value is the offending value.
	Value any
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config %s: expected a map, got %T", e.Section, e.Value)
	}
	return fmt.Sprintf("config %s.%s: unsupported value type %T", e.Section, e.Key, e.Value)
}

// section returns the map stored under key. A missing key is an empty map.
func (c Config) section(key string) (map[string]any, error) {
	v, ok := c.data[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &ValueError{Section: key, Value: v}
	}
	return m, nil
}

// Mapping converts the section under key into template values.
//
// Strings, numbers and booleans become literals formatted with fmt. Null
// entries are skipped, so templates referring to them fail as unmapped.
// Lists and maps are rejected with a *ValueError.
//
// Example:
//
//	cfg, _ := config.FromYAML([]byte("values:\n  name: World\n  port: 8080\n"))
//	m, err := cfg.Mapping("values")
//	// m["port"] is stringtemplate.Literal("8080")
func (c Config) Mapping(key string) (stringtemplate.Mapping, error) {
	sec, err := c.section(key)
	if err != nil {
		return nil, err
	}

	m := make(stringtemplate.Mapping, len(sec))
	for name, v := range sec {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			m[name] = stringtemplate.Literal(val)
		case bool, int, int64, uint64, float64:
			m[name] = stringtemplate.Literal(fmt.Sprint(val))
		default:
			return nil, &ValueError{Section: key, Key: name, Value: v}
		}
	}
	return m, nil
}

// Templates returns the name to source map stored under key.
// Every entry must be a string.
func (c Config) Templates(key string) (map[string]string, error) {
	sec, err := c.section(key)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(sec))
	for name, v := range sec {
		s, ok := v.(string)
		if !ok {
			return nil, &ValueError{Section: key, Key: name, Value: v}
		}
		out[name] = s
	}
	return out, nil
}

// Keys returns the top-level keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
