package stringtemplate

import (
	"errors"
	"fmt"
)

// Sentinel errors for substitution.
var (
	// ErrMissingMapping indicates a referenced variable had no usable value.
	ErrMissingMapping = errors.New("no mapping found")

	// ErrInternal indicates the node model violated a construction invariant.
	ErrInternal = errors.New("internal template error")
)

// MissingMappingError is returned by Substitute when a variable referenced
// by the template is absent from the mapping or maps to an unset provider.
type MissingMappingError struct {
	// Name is the variable name without any transform suffix.
	Name string
}

// Error implements the error interface.
func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("no mapping found for ${%s}", e.Name)
}

// Unwrap returns ErrMissingMapping for errors.Is support.
func (e *MissingMappingError) Unwrap() error {
	return ErrMissingMapping
}

// InternalError reports a node of unknown kind found during substitution.
type InternalError struct {
	// Node describes the offending node.
	Node string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("unknown node type: %s", e.Node)
}

// Unwrap returns ErrInternal for errors.Is support.
func (e *InternalError) Unwrap() error {
	return ErrInternal
}
