package gateways

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/variants/internal/domain/entities"
)

// APKFinder locates packaging outputs on disk
type APKFinder struct{}

// NewAPKFinder creates a new APK finder
func NewAPKFinder() *APKFinder {
	return &APKFinder{}
}

// FindRecursive returns every APK below outputsDir that belongs to the descriptor's
// module and build type (see entities.Descriptor.OwnsFileName)
func (f *APKFinder) FindRecursive(outputsDir string, desc *entities.Descriptor) ([]string, error) {
	if _, err := os.Stat(outputsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("outputs directory does not exist: %s", outputsDir)
	}

	var apks []string

	err := filepath.WalkDir(outputsDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		if desc.OwnsFileName(entry.Name()) {
			apks = append(apks, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return apks, nil
}
