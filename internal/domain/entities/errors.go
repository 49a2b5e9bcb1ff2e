package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSigningConfigNotFound is returned by signing registries for unregistered names
var ErrSigningConfigNotFound = errors.New("signing config not found")

// ValidationError reports a violated ordering or format invariant
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Reference kinds reported by UnknownReferenceError
const (
	RefSigningConfig  = "signing config"
	RefBuildType      = "build type"
	RefPluginProperty = "plugin property"
)

// UnknownReferenceError reports a named reference that cannot be resolved
type UnknownReferenceError struct {
	Kind  string
	Name  string
	Field string
	Known []string
}

func (e *UnknownReferenceError) Error() string {
	msg := fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
	if e.Field != "" {
		msg += " referenced by " + e.Field
	}
	if len(e.Known) > 0 {
		msg += " (known: " + strings.Join(e.Known, ", ") + ")"
	}
	return msg
}

// UnsupportedArchitectureError reports an ABI identifier outside SupportedABIs
type UnsupportedArchitectureError struct {
	ABI   string
	Field string
}

func (e *UnsupportedArchitectureError) Error() string {
	return fmt.Sprintf("unsupported architecture %q in %s (supported: %s)",
		e.ABI, e.Field, strings.Join(SupportedABIs, ", "))
}
