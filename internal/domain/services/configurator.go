// Package services contains the build configuration business logic.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces/gateways"
	"github.com/ochairo/variants/internal/domain/interfaces/repositories"
)

// ConfiguratorService validates build configs and resolves them into descriptors
type ConfiguratorService struct {
	signing    repositories.SigningConfigRepository
	properties gateways.PropertySource
}

// NewConfiguratorService creates a configurator. properties may be nil when no
// plugin properties are available; any reference then fails to resolve.
func NewConfiguratorService(signing repositories.SigningConfigRepository, properties gateways.PropertySource) *ConfiguratorService {
	return &ConfiguratorService{
		signing:    signing,
		properties: properties,
	}
}

// Resolve validates cfg and produces the descriptor for buildType ("release" when empty).
// All violations are reported together; no descriptor is returned if any exist.
func (s *ConfiguratorService) Resolve(ctx context.Context, cfg *entities.BuildConfig, buildType string) (*entities.Descriptor, error) {
	if cfg == nil {
		return nil, errors.New("build config is nil")
	}
	if buildType == "" {
		buildType = entities.BuildTypeRelease
	}

	props := map[string]string{}
	if s.properties != nil && cfg.HasPlugin(entities.PluginFlutter) {
		p, err := s.properties.Properties(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load plugin properties: %w", err)
		}
		props = p
	}

	r := &propertyResolver{props: props, pluginApplied: cfg.HasPlugin(entities.PluginFlutter)}
	compileSdk, compileOK := r.intValue("android.compile_sdk", cfg.CompileSdk)
	minSdk, minOK := r.intValue("default_config.min_sdk", cfg.DefaultConfig.MinSdk)
	targetSdk, targetOK := r.intValue("default_config.target_sdk", cfg.DefaultConfig.TargetSdk)
	versionCode, versionCodeOK := r.intValue("default_config.version_code", cfg.DefaultConfig.VersionCode)
	versionName, versionNameOK := r.stringValue("default_config.version_name", cfg.DefaultConfig.VersionName)
	ndkVersion, ndkOK := r.stringValue("android.ndk_version", cfg.NdkVersion)

	errs := append([]error(nil), r.errs...)
	errs = append(errs, validatePlugins(cfg.Plugins)...)
	errs = append(errs, validatePackageName("android.namespace", cfg.Namespace)...)
	errs = append(errs, validatePackageName("default_config.application_id", cfg.DefaultConfig.ApplicationID)...)
	errs = append(errs, validateSdkLevels(
		sdkLevel{"default_config.min_sdk", minSdk, minOK},
		sdkLevel{"default_config.target_sdk", targetSdk, targetOK},
		sdkLevel{"android.compile_sdk", compileSdk, compileOK},
	)...)
	if versionCodeOK {
		errs = append(errs, validateVersionCode(versionCode)...)
	}
	if versionNameOK && versionName == "" {
		errs = append(errs, &entities.ValidationError{Field: "default_config.version_name", Reason: "must not be empty"})
	}
	if ndkOK {
		errs = append(errs, validateNdkVersion(ndkVersion)...)
	}

	java, javaErrs := resolveJava(cfg)
	errs = append(errs, javaErrs...)
	errs = append(errs, validateDesugaring(cfg)...)
	errs = append(errs, validateDependencies(cfg.Dependencies)...)

	abis, splitErrs := resolveSplitABIs(cfg.Splits)
	errs = append(errs, splitErrs...)

	buildTypes := effectiveBuildTypes(cfg.BuildTypes)
	signing, refErrs, err := s.resolveSigning(ctx, buildTypes)
	if err != nil {
		return nil, err
	}
	errs = append(errs, refErrs...)
	for _, name := range sortedBuildTypeNames(buildTypes) {
		bt := buildTypes[name]
		if bt.ShrinkResources && !bt.MinifyEnabled {
			errs = append(errs, &entities.ValidationError{
				Field:  "build_types." + name + ".shrink_resources",
				Reason: "removing unused resources requires minify_enabled",
			})
		}
	}

	selected, ok := buildTypes[buildType]
	if !ok {
		errs = append(errs, &entities.UnknownReferenceError{
			Kind:  entities.RefBuildType,
			Name:  buildType,
			Known: sortedBuildTypeNames(buildTypes),
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	module := cfg.Module
	if module == "" {
		module = entities.DefaultModuleName
	}

	resolved := entities.ResolvedBuildType{
		Name:            selected.Name,
		Signing:         signing[selected.Name],
		MinifyEnabled:   selected.MinifyEnabled,
		ShrinkResources: selected.ShrinkResources,
		Debuggable:      selected.Debuggable,
	}

	return &entities.Descriptor{
		Module:        module,
		Namespace:     cfg.Namespace,
		ApplicationID: cfg.DefaultConfig.ApplicationID,
		Sdk: entities.SdkLevels{
			Min:     minSdk,
			Target:  targetSdk,
			Compile: compileSdk,
		},
		NdkVersion:  ndkVersion,
		VersionCode: versionCode,
		VersionName: versionName,
		Java:        java,
		Plugins:     append([]string(nil), cfg.Plugins...),
		BuildType:   resolved,
		Splits: entities.ResolvedSplits{
			Enabled:      cfg.Splits.Enable,
			ABIs:         abis,
			UniversalApk: cfg.Splits.Enable && cfg.Splits.UniversalApk,
		},
		Units:        packagingUnits(module, resolved, cfg.Splits, abis, versionCode),
		Dependencies: append([]entities.Dependency(nil), cfg.Dependencies...),
	}, nil
}

// resolveSigning looks up every referenced signing config. Unregistered names become
// UnknownReferenceErrors; registry failures are returned as the third value.
func (s *ConfiguratorService) resolveSigning(ctx context.Context, buildTypes map[string]entities.BuildType) (map[string]*entities.SigningConfig, []error, error) {
	resolved := make(map[string]*entities.SigningConfig)
	var errs []error
	var known []string

	for _, name := range sortedBuildTypeNames(buildTypes) {
		ref := buildTypes[name].SigningConfig
		if ref == "" {
			continue
		}
		if s.signing == nil {
			errs = append(errs, &entities.UnknownReferenceError{
				Kind:  entities.RefSigningConfig,
				Name:  ref,
				Field: "build_types." + name + ".signing_config",
			})
			continue
		}

		sc, err := s.signing.GetSigningConfig(ctx, ref)
		if errors.Is(err, entities.ErrSigningConfigNotFound) {
			if known == nil {
				if known, err = s.signing.SigningConfigNames(ctx); err != nil {
					return nil, nil, fmt.Errorf("failed to list signing configs: %w", err)
				}
			}
			errs = append(errs, &entities.UnknownReferenceError{
				Kind:  entities.RefSigningConfig,
				Name:  ref,
				Field: "build_types." + name + ".signing_config",
				Known: known,
			})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up signing config %s: %w", ref, err)
		}
		resolved[name] = sc
	}

	return resolved, errs, nil
}

// effectiveBuildTypes adds the implicit debug and release build types
func effectiveBuildTypes(declared map[string]entities.BuildType) map[string]entities.BuildType {
	out := map[string]entities.BuildType{
		entities.BuildTypeDebug: {
			Name:          entities.BuildTypeDebug,
			SigningConfig: entities.SigningConfigDebug,
			Debuggable:    true,
		},
		entities.BuildTypeRelease: {Name: entities.BuildTypeRelease},
	}

	for name, bt := range declared {
		bt.Name = name
		if name == entities.BuildTypeDebug {
			if bt.SigningConfig == "" {
				bt.SigningConfig = entities.SigningConfigDebug
			}
			bt.Debuggable = true
		}
		out[name] = bt
	}

	return out
}

func sortedBuildTypeNames(buildTypes map[string]entities.BuildType) []string {
	names := make([]string, 0, len(buildTypes))
	for name := range buildTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// propertyResolver resolves plugin property references and records failures
type propertyResolver struct {
	props         map[string]string
	pluginApplied bool
	errs          []error
}

func (r *propertyResolver) lookup(field, ref string) (string, bool) {
	v, ok := r.props[ref]
	if !r.pluginApplied || !ok {
		r.errs = append(r.errs, &entities.UnknownReferenceError{
			Kind:  entities.RefPluginProperty,
			Name:  ref,
			Field: field,
		})
		return "", false
	}
	return v, true
}

func (r *propertyResolver) intValue(field string, p entities.IntProperty) (int, bool) {
	if !p.IsRef() {
		return p.Value, true
	}

	raw, ok := r.lookup(field, p.Ref)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, &entities.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%s resolved to non-integer %q", p.Ref, raw),
		})
		return 0, false
	}
	return n, true
}

func (r *propertyResolver) stringValue(field string, p entities.StringProperty) (string, bool) {
	if !p.IsRef() {
		return p.Value, true
	}
	return r.lookup(field, p.Ref)
}
