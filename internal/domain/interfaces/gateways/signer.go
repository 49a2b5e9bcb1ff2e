package gateways

import "context"

// DescriptorSigner produces a detached signature for a written descriptor file
type DescriptorSigner interface {
	// SignFile writes an armored detached signature next to path and returns its location
	SignFile(ctx context.Context, path string) (string, error)
}

// DescriptorStore persists resolved descriptors
type DescriptorStore interface {
	// Save writes the descriptor and its checksum sidecar, returning the descriptor path
	Save(ctx context.Context, name string, payload []byte) (string, error)
}
