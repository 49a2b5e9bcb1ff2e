package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
)

var configExtensions = []string{".yml", ".yaml"}

// ConfigRepository implements repositories.ConfigRepository using YAML files
type ConfigRepository struct {
	configsDir string
	parser     *ConfigParser
}

// NewConfigRepository creates a new YAML-based config repository
func NewConfigRepository(configsDir string) *ConfigRepository {
	return &ConfigRepository{
		configsDir: configsDir,
		parser:     NewConfigParser(),
	}
}

// GetConfig retrieves a module build config by name (file name without extension)
func (r *ConfigRepository) GetConfig(_ context.Context, name string) (*entities.BuildConfig, error) {
	for _, ext := range configExtensions {
		filePath := filepath.Join(r.configsDir, name+ext)
		if _, err := os.Stat(filePath); err == nil {
			return r.parser.ParseFile(filePath)
		}
	}
	return nil, fmt.Errorf("build config not found: %s", name)
}

// ListConfigs returns all config names in the directory, sorted
func (r *ConfigRepository) ListConfigs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.configsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read configs directory: %w", err)
	}

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}
