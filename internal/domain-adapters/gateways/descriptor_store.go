// Package gateways provides implementations of domain gateway interfaces.
package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/variants/internal/domain/entities"
)

// DescriptorStore writes descriptors as JSON files with a sha256sum-style sidecar
type DescriptorStore struct {
	outputDir string
}

// NewDescriptorStore creates a store rooted at outputDir ("dist" when empty)
func NewDescriptorStore(outputDir string) *DescriptorStore {
	if outputDir == "" {
		outputDir = "dist"
	}
	return &DescriptorStore{outputDir: outputDir}
}

// Save writes <outputDir>/<name>.json and <name>.json.sha256
func (s *DescriptorStore) Save(_ context.Context, name string, payload []byte) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, name+".json")
	if err := os.WriteFile(path, payload, 0600); err != nil {
		return "", fmt.Errorf("failed to write descriptor: %w", err)
	}

	sum := sha256.Sum256(payload)
	line := hex.EncodeToString(sum[:]) + "  " + filepath.Base(path) + "\n"
	if err := os.WriteFile(path+".sha256", []byte(line), 0600); err != nil {
		return "", fmt.Errorf("failed to write checksum: %w", err)
	}

	return path, nil
}

// LoadDescriptor reads a descriptor JSON file
func LoadDescriptor(path string) (*entities.Descriptor, error) {
	//nolint:gosec // G304: path is a user-provided descriptor
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var d entities.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	if d.Module == "" {
		return nil, fmt.Errorf("descriptor %s has no module", path)
	}
	return &d, nil
}
