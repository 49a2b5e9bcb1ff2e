package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ochairo/variants/internal/domain-adapters/gateways"
)

func runVerify(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		keyPath = fs.String("key", "", "Armored OpenPGP public key; enables signature verification")
		sigPath = fs.String("signature", "", "Detached signature file (default: <descriptor>.asc)")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: variants verify <descriptor.json> [options]

Verify a descriptor against its .sha256 sidecar and, with --key,
its OpenPGP detached signature.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  variants verify dist/app-release.json
  variants verify dist/app-release.json --key release.pub.asc
`)
	}

	positionals, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	if len(positionals) < 1 {
		fmt.Fprintf(stderr, "Error: descriptor path is required\n\n")
		fs.Usage()
		return exitUsage
	}
	path := positionals[0]

	verifier, err := gateways.NewDescriptorVerifier(*keyPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	fmt.Fprintf(stdout, "🔍 Verifying %s\n\n", filepath.Base(path))

	result, err := verifier.Verify(ctx, path, *sigPath)
	if result.ChecksumVerified {
		fmt.Fprintf(stdout, "✅ Checksum verified\n")
	}
	if result.SignatureVerified {
		fmt.Fprintf(stdout, "✅ Signature verified (key %s)\n", result.SignerFingerprint)
	}
	if err != nil {
		fmt.Fprintf(stdout, "❌ Verification FAILED: %v\n", err)
		return exitInvalid
	}

	return exitOK
}
