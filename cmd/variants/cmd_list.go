package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/variants/internal/external-adapters/yaml"
)

func runList(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configsDir := fs.String("configs-dir", "variants", "Directory containing module build configs")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: variants list [options]

List all available module build configs.

Options:
`)
		fs.PrintDefaults()
	}

	positionals, code, ok := parseFlags(fs, args)
	if !ok {
		return code
	}
	if len(positionals) > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %s\n\n", strings.Join(positionals, " "))
		fs.Usage()
		return exitUsage
	}

	repo := yaml.NewConfigRepository(*configsDir)
	names, err := repo.ListConfigs(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error listing configs: %v\n", err)
		return exitUsage
	}

	fmt.Fprintf(stdout, "Available configs (%d total):\n\n", len(names))
	for _, name := range names {
		cfg, err := repo.GetConfig(ctx, name)
		if err != nil {
			fmt.Fprintf(stdout, "  %-20s (unreadable: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(stdout, "  %-20s %-32s sdk %s/%s/%s  %s\n", name, cfg.Namespace,
			cfg.DefaultConfig.MinSdk, cfg.DefaultConfig.TargetSdk, cfg.CompileSdk,
			strings.Join(cfg.Plugins, ", "))
	}

	return exitOK
}
