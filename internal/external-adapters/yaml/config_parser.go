// Package yaml provides YAML-based build config, signing registry and pubspec adapters.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ochairo/variants/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Module       string           `yaml:"module"`
	Plugins      []string         `yaml:"plugins"`
	Android      yamlAndroid      `yaml:"android"`
	Flutter      yamlFlutter      `yaml:"flutter"`
	Dependencies []yamlDependency `yaml:"dependencies"`
}

type yamlAndroid struct {
	Namespace      string                   `yaml:"namespace"`
	CompileSdk     yamlIntProperty          `yaml:"compile_sdk"`
	NdkVersion     yamlStringProperty       `yaml:"ndk_version"`
	CompileOptions yamlCompileOptions       `yaml:"compile_options"`
	KotlinOptions  yamlKotlinOptions        `yaml:"kotlin_options"`
	Splits         yamlSplits               `yaml:"splits"`
	DefaultConfig  yamlDefaultConfig        `yaml:"default_config"`
	BuildTypes     map[string]yamlBuildType `yaml:"build_types"`
}

type yamlCompileOptions struct {
	SourceCompatibility   string `yaml:"source_compatibility"`
	TargetCompatibility   string `yaml:"target_compatibility"`
	CoreLibraryDesugaring bool   `yaml:"core_library_desugaring"`
}

type yamlKotlinOptions struct {
	JvmTarget string `yaml:"jvm_target"`
}

type yamlSplits struct {
	Abi yamlAbiSplit `yaml:"abi"`
}

type yamlAbiSplit struct {
	Enable       bool     `yaml:"enable"`
	Reset        bool     `yaml:"reset"`
	Include      []string `yaml:"include"`
	Exclude      []string `yaml:"exclude"`
	UniversalApk bool     `yaml:"universal_apk"`
}

type yamlDefaultConfig struct {
	ApplicationID string             `yaml:"application_id"`
	MinSdk        yamlIntProperty    `yaml:"min_sdk"`
	TargetSdk     yamlIntProperty    `yaml:"target_sdk"`
	VersionCode   yamlIntProperty    `yaml:"version_code"`
	VersionName   yamlStringProperty `yaml:"version_name"`
}

type yamlBuildType struct {
	SigningConfig   string `yaml:"signing_config"`
	MinifyEnabled   bool   `yaml:"minify_enabled"`
	ShrinkResources bool   `yaml:"shrink_resources"`
	Debuggable      bool   `yaml:"debuggable"`
}

type yamlFlutter struct {
	Source string `yaml:"source"`
}

type yamlDependency struct {
	Configuration string `yaml:"configuration"`
	Notation      string `yaml:"notation"`
}

// yamlIntProperty accepts an integer or a flutter.* reference
type yamlIntProperty struct {
	entities.IntProperty
}

func (p *yamlIntProperty) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected integer or plugin property", value.Line)
	}
	if value.Tag != "!!int" && entities.IsPropertyRef(value.Value) {
		p.Ref = value.Value
		return nil
	}
	n, err := strconv.Atoi(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %q is neither an integer nor a plugin property", value.Line, value.Value)
	}
	p.Value = n
	return nil
}

// yamlStringProperty accepts a literal or a flutter.* reference
type yamlStringProperty struct {
	entities.StringProperty
}

func (p *yamlStringProperty) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected string or plugin property", value.Line)
	}
	if entities.IsPropertyRef(value.Value) {
		p.Ref = value.Value
		return nil
	}
	p.Value = value.Value
	return nil
}

// ConfigParser parses YAML build config files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML build config file into a BuildConfig entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.BuildConfig, error) {
	//nolint:gosec // G304: filePath is a config path from the repository
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	cfg, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	cfg.SourcePath = filePath
	return cfg, nil
}

// Parse parses YAML bytes into a BuildConfig entity. Unknown keys are rejected.
func (p *ConfigParser) Parse(data []byte) (*entities.BuildConfig, error) {
	var raw yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("build config is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(raw.Plugins) == 0 {
		return nil, fmt.Errorf("build config must apply at least one plugin")
	}

	module := raw.Module
	if module == "" {
		module = entities.DefaultModuleName
	}

	// Convert to domain entity
	cfg := &entities.BuildConfig{
		Module:     module,
		Plugins:    raw.Plugins,
		Namespace:  raw.Android.Namespace,
		CompileSdk: raw.Android.CompileSdk.IntProperty,
		NdkVersion: raw.Android.NdkVersion.StringProperty,
		CompileOptions: entities.CompileOptions{
			SourceCompatibility:   raw.Android.CompileOptions.SourceCompatibility,
			TargetCompatibility:   raw.Android.CompileOptions.TargetCompatibility,
			CoreLibraryDesugaring: raw.Android.CompileOptions.CoreLibraryDesugaring,
		},
		KotlinOptions: entities.KotlinOptions{JvmTarget: raw.Android.KotlinOptions.JvmTarget},
		Splits:        convertSplits(raw.Android.Splits.Abi),
		DefaultConfig: entities.DefaultConfig{
			ApplicationID: raw.Android.DefaultConfig.ApplicationID,
			MinSdk:        raw.Android.DefaultConfig.MinSdk.IntProperty,
			TargetSdk:     raw.Android.DefaultConfig.TargetSdk.IntProperty,
			VersionCode:   raw.Android.DefaultConfig.VersionCode.IntProperty,
			VersionName:   raw.Android.DefaultConfig.VersionName.StringProperty,
		},
		BuildTypes:   convertBuildTypes(raw.Android.BuildTypes),
		Flutter:      entities.FlutterConfig{Source: raw.Flutter.Source},
		Dependencies: convertDependencies(raw.Dependencies),
	}

	return cfg, nil
}

func convertSplits(ys yamlAbiSplit) entities.AbiSplitPolicy {
	return entities.AbiSplitPolicy{
		Enable:       ys.Enable,
		Reset:        ys.Reset,
		Include:      ys.Include,
		Exclude:      ys.Exclude,
		UniversalApk: ys.UniversalApk,
	}
}

func convertBuildTypes(ybt map[string]yamlBuildType) map[string]entities.BuildType {
	buildTypes := make(map[string]entities.BuildType, len(ybt))
	for name, bt := range ybt {
		buildTypes[name] = entities.BuildType{
			Name:            name,
			SigningConfig:   bt.SigningConfig,
			MinifyEnabled:   bt.MinifyEnabled,
			ShrinkResources: bt.ShrinkResources,
			Debuggable:      bt.Debuggable,
		}
	}
	return buildTypes
}

// convertDependencies keeps invalid notations so that validation reports them
// together with every other violation
func convertDependencies(yd []yamlDependency) []entities.Dependency {
	deps := make([]entities.Dependency, 0, len(yd))
	for _, d := range yd {
		deps = append(deps, entities.DeclareDependency(d.Configuration, d.Notation))
	}
	return deps
}
