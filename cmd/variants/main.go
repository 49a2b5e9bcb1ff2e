// Package main provides the variants CLI for validating Android build configs
// and resolving them into build descriptors.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Exit codes
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	command := args[0]

	// Dispatch to subcommand
	switch command {
	case "resolve":
		return runResolve(ctx, args[1:], stdout, stderr)
	case "validate":
		return runValidate(ctx, args[1:], stdout, stderr)
	case "list":
		return runList(ctx, args[1:], stdout, stderr)
	case "verify":
		return runVerify(ctx, args[1:], stdout, stderr)
	case "check-outputs":
		return runCheckOutputs(ctx, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return exitUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `variants - Android build variant configurator

Usage:
  variants <command> [options]

Commands:
  resolve        Validate a module config and write its build descriptor
  validate       Validate one or more module configs
  list           List available module configs
  verify         Verify a descriptor's checksum and signature
  check-outputs  Compare built APKs against a descriptor's packaging units

Use "variants <command> --help" for more information about a command.`)
}
