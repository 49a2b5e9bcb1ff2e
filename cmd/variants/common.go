package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/variants/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/variants/internal/domain-orchestrators"
	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
	"github.com/ochairo/variants/internal/domain/services"
	"github.com/ochairo/variants/internal/external-adapters/gpg"
	"github.com/ochairo/variants/internal/external-adapters/yaml"
)

// configFlags are shared by every command that loads module configs
type configFlags struct {
	configsDir *string
	signing    *string
	buildType  *string
	verbose    *bool
}

func addConfigFlags(fs *flag.FlagSet) configFlags {
	return configFlags{
		configsDir: fs.String("configs-dir", "variants", "Directory containing module build configs"),
		signing:    fs.String("signing", "", "Signing registry YAML (only the debug config when empty)"),
		buildType:  fs.String("build-type", entities.BuildTypeRelease, "Build type to resolve"),
		verbose:    fs.Bool("verbose", false, "Enable debug logging"),
	}
}

func newLogger(stderr io.Writer, verbose bool) interfaces.Logger {
	level := interfaces.LevelWarn
	if verbose {
		level = interfaces.LevelDebug
	}
	return interfaces.NewWriterLogger(stderr, level)
}

// newOrchestrator wires the yaml adapters, configurator and descriptor store
func newOrchestrator(flags configFlags, outputDir string, signer *gpg.Signer, logger interfaces.Logger) (*orchestrators.ResolveOrchestrator, error) {
	registry, err := yaml.LoadSigningRegistry(*flags.signing)
	if err != nil {
		return nil, err
	}

	configurator := services.NewConfiguratorService(
		registry,
		yaml.NewPubspecPropertySource(yaml.DefaultFlutterDefaults),
	)

	cfg := orchestrators.ResolveOrchestratorConfig{}
	if signer != nil {
		cfg.Signer = signer
	}

	return orchestrators.NewResolveOrchestrator(
		yaml.NewConfigRepository(*flags.configsDir),
		configurator,
		gateways.NewDescriptorStore(outputDir),
		cfg,
		logger,
	), nil
}

// parseFlags parses args with flags allowed before, between and after positional
// arguments, as in "resolve app --configs-dir android/app". Everything after "--" is
// positional. It returns the positionals, or the exit code when parsing stops.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, int, bool) {
	var positionals []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, exitOK, false
			}
			return nil, exitUsage, false
		}

		rest := fs.Args()
		if len(rest) == 0 {
			return positionals, 0, true
		}
		// flag stops after a literal "--"; everything left is positional
		if parsed := len(args) - len(rest); parsed > 0 && args[parsed-1] == "--" {
			return append(positionals, rest...), 0, true
		}
		positionals = append(positionals, rest[0])
		args = rest[1:]
	}
}

// printErrors writes each joined error on its own line
func printErrors(w io.Writer, prefix string, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			printErrors(w, prefix, e)
		}
		return
	}
	fmt.Fprintf(w, "%s%v\n", prefix, err)
}

// isValidationFailure reports whether err carries domain violations rather than I/O problems
func isValidationFailure(err error) bool {
	var ve *entities.ValidationError
	var ure *entities.UnknownReferenceError
	var uae *entities.UnsupportedArchitectureError
	return errors.As(err, &ve) || errors.As(err, &ure) || errors.As(err, &uae)
}

func exitCodeFor(err error) int {
	if isValidationFailure(err) {
		return exitInvalid
	}
	return exitUsage
}

func loadSigner(keyPath, passphraseEnv string) (*gpg.Signer, error) {
	if keyPath == "" {
		return nil, nil
	}
	var passphrase []byte
	if passphraseEnv != "" {
		passphrase = []byte(os.Getenv(passphraseEnv))
	}
	return gpg.NewSignerFromFile(keyPath, passphrase)
}
