package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/ochairo/variants/internal/domain-adapters/gateways"
	"github.com/ochairo/variants/internal/domain/services"
)

func runCheckOutputs(_ context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check-outputs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apkDir := fs.String("apk-dir", "build/app/outputs", "Directory searched recursively for built APKs")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: variants check-outputs <descriptor.json> [options]

Compare the APKs produced by the packaging tool against the
descriptor's packaging units.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  variants check-outputs dist/app-release.json --apk-dir build/app/outputs/flutter-apk
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

	d, err := gateways.LoadDescriptor(positionals[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	apks, err := gateways.NewAPKFinder().FindRecursive(*apkDir, d)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	validation := services.NewOutputCheckService().Check(d, apks)

	fmt.Fprintf(stdout, "Expected APKs: %d\n", len(validation.Expected))
	fmt.Fprintf(stdout, "Found APKs:    %d\n\n", len(validation.Available))

	if !validation.IsReady() {
		fmt.Fprintf(stdout, "❌ %s\n", validation.ErrorMessage())
		return exitInvalid
	}

	fmt.Fprintf(stdout, "✅ All %d packaging units present\n", len(validation.Expected))
	return exitOK
}
