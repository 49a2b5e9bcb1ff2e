package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// checksumVerifier implements SHA-256 verification of descriptor files
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum verifies a file's SHA256 checksum
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	actualSum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if actualSum != strings.ToLower(expectedSum) {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}

// VerifySidecar checks filePath against the "<sum>  <name>" line in filePath+".sha256".
// The sidecar must name filePath itself.
func (v *checksumVerifier) VerifySidecar(ctx context.Context, filePath string) error {
	//nolint:gosec // G304: sidecar lives next to the user-provided descriptor
	data, err := os.ReadFile(filePath + ".sha256")
	if err != nil {
		return fmt.Errorf("failed to read checksum sidecar: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return fmt.Errorf("checksum sidecar for %s is not in \"<sum>  <name>\" form", filePath)
	}

	// sha256sum marks binary mode with a leading '*'
	if name, want := strings.TrimPrefix(fields[1], "*"), filepath.Base(filePath); name != want {
		return fmt.Errorf("checksum sidecar names %s, expected %s", name, want)
	}

	return v.VerifyChecksum(ctx, filePath, fields[0])
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (v *checksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
