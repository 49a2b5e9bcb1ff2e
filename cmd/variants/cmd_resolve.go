package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

func runResolve(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := addConfigFlags(fs)
	var (
		outputDir     = fs.String("output-dir", "dist", "Output directory for descriptors")
		signKey       = fs.String("sign-key", "", "Armored OpenPGP private key used to sign the descriptor")
		passphraseEnv = fs.String("passphrase-env", "", "Environment variable holding the signing key passphrase")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: variants resolve <module> [options]

Validate a module build config and write its resolved descriptor
(<module>-<build-type>.json) with a .sha256 checksum sidecar.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  variants resolve app
  variants resolve app --build-type debug
  variants resolve app --signing signing.yml --sign-key release.asc --passphrase-env VARIANTS_KEY_PASSPHRASE
`)
	}

	positionals, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	if len(positionals) < 1 {
		fmt.Fprintf(stderr, "Error: module name is required\n\n")
		fs.Usage()
		return exitUsage
	}
	module := positionals[0]
	logger := newLogger(stderr, *flags.verbose)

	signer, err := loadSigner(*signKey, *passphraseEnv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	orch, err := newOrchestrator(flags, *outputDir, signer, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	result, err := orch.ResolveModule(ctx, module, *flags.buildType)
	if err != nil {
		fmt.Fprintf(stderr, "❌ %s is invalid:\n", module)
		printErrors(stderr, "   ", err)
		return exitCodeFor(err)
	}

	d := result.Descriptor
	fmt.Fprintf(stdout, "✅ Resolved %s (%s)\n", d.Module, d.BuildType.Name)
	fmt.Fprintf(stdout, "   Application: %s %s (%d)\n", d.ApplicationID, d.VersionName, d.VersionCode)
	fmt.Fprintf(stdout, "   SDK: min %d, target %d, compile %d\n", d.Sdk.Min, d.Sdk.Target, d.Sdk.Compile)
	if d.Splits.Enabled {
		fmt.Fprintf(stdout, "   ABIs: %s\n", strings.Join(d.Splits.ABIs, ", "))
	}
	fmt.Fprintf(stdout, "   Units: %d\n", len(d.Units))
	for _, u := range d.Units {
		fmt.Fprintf(stdout, "     - %s\n", u.FileName)
	}
	fmt.Fprintf(stdout, "   Descriptor: %s\n", result.DescriptorPath)
	if result.SignaturePath != "" {
		fmt.Fprintf(stdout, "   Signature: %s\n", result.SignaturePath)
	}

	return exitOK
}
