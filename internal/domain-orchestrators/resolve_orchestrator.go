// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
	"github.com/ochairo/variants/internal/domain/interfaces/gateways"
	"github.com/ochairo/variants/internal/domain/interfaces/repositories"
	"github.com/ochairo/variants/internal/domain/interfaces/services"
	"golang.org/x/sync/errgroup"
)

// ResolveOrchestrator coordinates the load -> resolve -> persist -> sign workflow
type ResolveOrchestrator struct {
	configRepo   repositories.ConfigRepository
	configurator services.Configurator
	store        gateways.DescriptorStore
	signer       gateways.DescriptorSigner
	logger       interfaces.Logger
	workers      int
}

// ResolveOrchestratorConfig holds optional collaborators for the orchestrator
type ResolveOrchestratorConfig struct {
	// Signer is optional; descriptors are left unsigned when nil
	Signer gateways.DescriptorSigner
	// Workers bounds ValidateModules concurrency (runtime.NumCPU when zero)
	Workers int
}

// NewResolveOrchestrator creates a new resolve orchestrator
func NewResolveOrchestrator(
	configRepo repositories.ConfigRepository,
	configurator services.Configurator,
	store gateways.DescriptorStore,
	config ResolveOrchestratorConfig,
	logger interfaces.Logger,
) *ResolveOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &ResolveOrchestrator{
		configRepo:   configRepo,
		configurator: configurator,
		store:        store,
		signer:       config.Signer,
		logger:       logger,
		workers:      workers,
	}
}

// ResolveResult contains the result of resolving one module
type ResolveResult struct {
	Config         *entities.BuildConfig
	Descriptor     *entities.Descriptor
	DescriptorPath string
	SignaturePath  string
	Duration       time.Duration
}

// ResolveModule resolves the named config and persists its descriptor
func (o *ResolveOrchestrator) ResolveModule(ctx context.Context, name, buildType string) (*ResolveResult, error) {
	startTime := time.Now()
	result := &ResolveResult{}

	// Step 1: Load build config
	cfg, err := o.configRepo.GetConfig(ctx, name)
	if err != nil {
		return result, fmt.Errorf("failed to load build config: %w", err)
	}
	result.Config = cfg

	// Step 2: Validate and resolve; violations pass through unwrapped
	o.logger.Debug("resolving build config", interfaces.F("config", name), interfaces.F("build_type", buildType))
	descriptor, err := o.configurator.Resolve(ctx, cfg, buildType)
	if err != nil {
		return result, err
	}
	result.Descriptor = descriptor

	// Step 3: Persist descriptor and checksum
	payload, err := json.MarshalIndent(descriptor, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	payload = append(payload, '\n')

	path, err := o.store.Save(ctx, DescriptorName(descriptor), payload)
	if err != nil {
		return result, fmt.Errorf("failed to save descriptor: %w", err)
	}
	result.DescriptorPath = path
	o.logger.Info("descriptor written",
		interfaces.F("path", path),
		interfaces.F("units", len(descriptor.Units)),
	)

	// Step 4: Sign (optional)
	if o.signer != nil {
		sigPath, err := o.signer.SignFile(ctx, path)
		if err != nil {
			return result, fmt.Errorf("failed to sign descriptor: %w", err)
		}
		result.SignaturePath = sigPath
		o.logger.Info("descriptor signed", interfaces.F("signature", sigPath))
	}

	result.Duration = time.Since(startTime)
	return result, nil
}

// ValidationOutcome is the validation result for one config
type ValidationOutcome struct {
	Name       string
	Descriptor *entities.Descriptor
	Err        error
}

// ValidateModules resolves every named config without persisting anything.
// An empty names list validates every config in the repository.
// Outcomes are returned in input order; the error covers only listing failures.
func (o *ResolveOrchestrator) ValidateModules(ctx context.Context, names []string, buildType string) ([]ValidationOutcome, error) {
	if len(names) == 0 {
		listed, err := o.configRepo.ListConfigs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list build configs: %w", err)
		}
		names = listed
	}

	outcomes := make([]ValidationOutcome, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			outcomes[i] = o.validateOne(gctx, name, buildType)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func (o *ResolveOrchestrator) validateOne(ctx context.Context, name, buildType string) ValidationOutcome {
	outcome := ValidationOutcome{Name: name}
	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	cfg, err := o.configRepo.GetConfig(ctx, name)
	if err != nil {
		outcome.Err = fmt.Errorf("failed to load build config: %w", err)
		return outcome
	}

	outcome.Descriptor, outcome.Err = o.configurator.Resolve(ctx, cfg, buildType)
	if outcome.Err != nil {
		o.logger.Debug("validation failed", interfaces.F("config", name))
	}
	return outcome
}

// DescriptorName is the file stem a descriptor is stored under: <module>-<buildType>
func DescriptorName(d *entities.Descriptor) string {
	return d.Module + "-" + d.BuildType.Name
}
