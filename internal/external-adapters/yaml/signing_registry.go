package yaml

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/ochairo/variants/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

type yamlSigningFile struct {
	SigningConfigs map[string]yamlSigningConfig `yaml:"signing_configs"`
}

type yamlSigningConfig struct {
	StoreFile string `yaml:"store_file"`
	KeyAlias  string `yaml:"key_alias"`
	StoreType string `yaml:"store_type"`
}

// SigningRegistry implements repositories.SigningConfigRepository.
// It is read-only after construction and always holds the debug config.
type SigningRegistry struct {
	configs map[string]entities.SigningConfig
}

// NewSigningRegistry creates a registry holding debug plus the given configs
func NewSigningRegistry(configs ...entities.SigningConfig) *SigningRegistry {
	r := &SigningRegistry{configs: map[string]entities.SigningConfig{
		entities.SigningConfigDebug: entities.DebugSigningConfig(),
	}}
	for _, sc := range configs {
		r.configs[sc.Name] = sc
	}
	return r
}

// LoadSigningRegistry reads a signing registry file. An empty path yields debug only.
func LoadSigningRegistry(filePath string) (*SigningRegistry, error) {
	if filePath == "" {
		return NewSigningRegistry(), nil
	}

	//nolint:gosec // G304: filePath is user-provided registry location
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing registry %s: %w", filePath, err)
	}
	return ParseSigningRegistry(data)
}

// ParseSigningRegistry parses signing registry YAML
func ParseSigningRegistry(data []byte) (*SigningRegistry, error) {
	var raw yamlSigningFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse signing registry: %w", err)
	}

	names := make([]string, 0, len(raw.SigningConfigs))
	for name := range raw.SigningConfigs {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := make([]entities.SigningConfig, 0, len(names))
	for _, name := range names {
		sc := raw.SigningConfigs[name]
		if name != entities.SigningConfigDebug && (sc.StoreFile == "" || sc.KeyAlias == "") {
			return nil, &entities.ValidationError{
				Field:  "signing_configs." + name,
				Reason: "store_file and key_alias are required",
			}
		}
		resolved := entities.SigningConfig{Name: name}
		if name == entities.SigningConfigDebug {
			resolved = entities.DebugSigningConfig()
		}
		if sc.StoreFile != "" {
			resolved.StoreFile = sc.StoreFile
		}
		if sc.KeyAlias != "" {
			resolved.KeyAlias = sc.KeyAlias
		}
		if sc.StoreType != "" {
			resolved.StoreType = sc.StoreType
		}
		if resolved.StoreType == "" {
			resolved.StoreType = "jks"
		}
		configs = append(configs, resolved)
	}

	return NewSigningRegistry(configs...), nil
}

// GetSigningConfig returns the named config or entities.ErrSigningConfigNotFound
func (r *SigningRegistry) GetSigningConfig(_ context.Context, name string) (*entities.SigningConfig, error) {
	sc, ok := r.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrSigningConfigNotFound, name)
	}
	return &sc, nil
}

// SigningConfigNames lists registered names in sorted order
func (r *SigningRegistry) SigningConfigNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
