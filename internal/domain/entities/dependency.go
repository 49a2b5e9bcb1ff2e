package entities

import (
	"fmt"
	"strings"
)

// Dependency is an external library reference with a pinned version
type Dependency struct {
	Configuration string `json:"configuration"`
	Group         string `json:"group"`
	Artifact      string `json:"artifact"`
	Version       string `json:"version"`
	// Declared is the notation as written in the config
	Declared string `json:"-"`
}

// ParseDependency parses a "group:artifact:version" notation declared under configuration
func ParseDependency(configuration, notation string) (Dependency, error) {
	if configuration == "" {
		return Dependency{}, &ValidationError{Field: "dependencies", Reason: fmt.Sprintf("%q has no configuration", notation)}
	}

	parts := strings.Split(notation, ":")
	if len(parts) != 3 {
		return Dependency{}, &ValidationError{
			Field:  "dependencies",
			Reason: fmt.Sprintf("%q is not group:artifact:version", notation),
		}
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" || p != strings.TrimSpace(p) {
			return Dependency{}, &ValidationError{
				Field:  "dependencies",
				Reason: fmt.Sprintf("%q has an empty or padded segment", notation),
			}
		}
	}

	version := parts[2]
	if strings.ContainsAny(version, "+[]()") || strings.HasPrefix(version, "latest.") {
		return Dependency{}, &ValidationError{
			Field:  "dependencies",
			Reason: fmt.Sprintf("%q must pin an exact version", notation),
		}
	}

	return Dependency{
		Configuration: configuration,
		Group:         parts[0],
		Artifact:      parts[1],
		Version:       version,
		Declared:      notation,
	}, nil
}

// DeclareDependency records a dependency as declared. The parsed fields stay empty
// when the notation is invalid; Validate reports why.
func DeclareDependency(configuration, notation string) Dependency {
	if dep, err := ParseDependency(configuration, notation); err == nil {
		return dep
	}
	return Dependency{Configuration: configuration, Declared: notation}
}

// Validate checks the declared notation, or the parsed fields when none was recorded
func (d Dependency) Validate() error {
	notation := d.Declared
	if notation == "" {
		notation = d.Notation()
	}
	_, err := ParseDependency(d.Configuration, notation)
	return err
}

// Notation returns the group:artifact:version form
func (d Dependency) Notation() string {
	return d.Group + ":" + d.Artifact + ":" + d.Version
}
