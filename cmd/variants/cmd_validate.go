package main

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func runValidate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := addConfigFlags(fs)
	quiet := fs.Bool("quiet", false, "Quiet mode - only print failures")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: variants validate [modules...] [options]

Validate module build configs without writing descriptors.
With no modules, every config in --configs-dir is validated.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  variants validate
  variants validate app wear --build-type debug
`)
	}

	positionals, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}

	logger := newLogger(stderr, *flags.verbose)
	orch, err := newOrchestrator(flags, "", nil, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	outcomes, err := orch.ValidateModules(ctx, positionals, *flags.buildType)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if len(outcomes) == 0 {
		fmt.Fprintf(stderr, "Error: no build configs found in %s\n", *flags.configsDir)
		return exitUsage
	}

	failed := 0
	code = exitOK
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(stdout, "❌ %s\n", o.Name)
			printErrors(stdout, "   ", o.Err)
			if c := exitCodeFor(o.Err); c > code {
				code = c
			}
			continue
		}
		if !*quiet {
			fmt.Fprintf(stdout, "✅ %s (%d units)\n", o.Name, len(o.Descriptor.Units))
		}
	}

	if !*quiet || failed > 0 {
		fmt.Fprintf(stdout, "\n%d valid, %d invalid\n", len(outcomes)-failed, failed)
	}
	return code
}
