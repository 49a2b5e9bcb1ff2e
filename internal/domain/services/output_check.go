package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
)

// OutputStatus represents whether the packaging tool produced what the descriptor promised
type OutputStatus string

// Output check statuses
const (
	StatusReady           OutputStatus = "ready"
	StatusNoOutputs       OutputStatus = "no_outputs"
	StatusMissingUnits    OutputStatus = "missing_units"
	StatusUnexpectedUnits OutputStatus = "unexpected_units"
)

// OutputValidation contains the result of comparing built APKs to packaging units
type OutputValidation struct {
	Status     OutputStatus
	Expected   []string
	Available  []string
	Missing    []string
	Unexpected []string
}

// IsReady returns true if every unit was produced and nothing else was
func (v *OutputValidation) IsReady() bool {
	return v.Status == StatusReady
}

// ErrorMessage returns a human-readable explanation when not ready
func (v *OutputValidation) ErrorMessage() string {
	switch v.Status {
	case StatusReady:
		return ""
	case StatusNoOutputs:
		return fmt.Sprintf("No APKs found (expected: %d)", len(v.Expected))
	case StatusMissingUnits:
		msg := fmt.Sprintf("Missing APKs (expected: %d, have: %d)\n   Missing: %s",
			len(v.Expected), len(v.Available), strings.Join(v.Missing, ", "))
		if len(v.Unexpected) > 0 {
			msg += "\n   Unexpected: " + strings.Join(v.Unexpected, ", ")
		}
		return msg
	case StatusUnexpectedUnits:
		return "Unexpected APKs found: " + strings.Join(v.Unexpected, ", ")
	default:
		return "Unknown status"
	}
}

// OutputCheckService validates packaging outputs against a descriptor
type OutputCheckService struct{}

// NewOutputCheckService creates a new output check service
func NewOutputCheckService() *OutputCheckService {
	return &OutputCheckService{}
}

// Check compares APK paths against the descriptor's packaging units.
// Files that do not belong to the descriptor's module and build type are ignored.
func (s *OutputCheckService) Check(d *entities.Descriptor, apkPaths []string) *OutputValidation {
	v := &OutputValidation{}

	for _, u := range d.Units {
		v.Expected = append(v.Expected, u.FileName)
	}
	sort.Strings(v.Expected)

	seen := make(map[string]bool)
	for _, p := range apkPaths {
		base := filepath.Base(p)
		if seen[base] || !d.OwnsFileName(base) {
			continue
		}
		seen[base] = true
		v.Available = append(v.Available, base)
	}
	sort.Strings(v.Available)

	expectedSet := make(map[string]bool, len(v.Expected))
	for _, e := range v.Expected {
		expectedSet[e] = true
		if !seen[e] {
			v.Missing = append(v.Missing, e)
		}
	}
	for _, a := range v.Available {
		if !expectedSet[a] {
			v.Unexpected = append(v.Unexpected, a)
		}
	}

	switch {
	case len(v.Available) == 0:
		v.Status = StatusNoOutputs
	case len(v.Missing) > 0:
		v.Status = StatusMissingUnits
	case len(v.Unexpected) > 0:
		v.Status = StatusUnexpectedUnits
	default:
		v.Status = StatusReady
	}

	return v
}
