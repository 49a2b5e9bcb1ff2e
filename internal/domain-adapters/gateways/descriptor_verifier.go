package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/variants/internal/external-adapters/gpg"
)

// DescriptorVerification reports what was checked for a descriptor file
type DescriptorVerification struct {
	ChecksumVerified  bool
	SignatureVerified bool
	SignerFingerprint string
}

// DescriptorVerifier checks descriptor integrity (sha256 sidecar) and authenticity
// (OpenPGP detached signature)
type DescriptorVerifier struct {
	checksum *checksumVerifier
	verifier *gpg.Verifier
}

// NewDescriptorVerifier creates a verifier. publicKeyPath may be empty to skip signatures.
func NewDescriptorVerifier(publicKeyPath string) (*DescriptorVerifier, error) {
	v := &DescriptorVerifier{checksum: NewChecksumVerifier()}
	if publicKeyPath == "" {
		return v, nil
	}

	v.verifier = gpg.NewVerifier()
	if err := v.verifier.ImportKeyFromFile(publicKeyPath); err != nil {
		return nil, fmt.Errorf("failed to import public key: %w", err)
	}
	return v, nil
}

// Verify checks the sidecar and, if a key was loaded, sigPath (path+".asc" when empty)
func (v *DescriptorVerifier) Verify(ctx context.Context, path, sigPath string) (*DescriptorVerification, error) {
	result := &DescriptorVerification{}

	if err := v.checksum.VerifySidecar(ctx, path); err != nil {
		return result, fmt.Errorf("checksum verification failed: %w", err)
	}
	result.ChecksumVerified = true

	if v.verifier == nil {
		return result, nil
	}

	if sigPath == "" {
		sigPath = path + ".asc"
	}
	fingerprint, err := v.verifier.VerifySignatureFromFile(path, sigPath)
	if err != nil {
		return result, err
	}
	result.SignatureVerified = true
	result.SignerFingerprint = fingerprint

	return result, nil
}
