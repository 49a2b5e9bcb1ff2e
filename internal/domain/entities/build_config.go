package entities

import (
	"strconv"
	"strings"
)

// Plugin identifiers with ordering or feature semantics
const (
	PluginAndroidApplication = "com.android.application"
	PluginKotlinAndroid      = "kotlin-android"
	PluginKotlinAndroidFull  = "org.jetbrains.kotlin.android"
	PluginFlutter            = "dev.flutter.flutter-gradle-plugin"
)

// Implicit build types and signing configs
const (
	BuildTypeDebug      = "debug"
	BuildTypeRelease    = "release"
	SigningConfigDebug  = "debug"
	DesugaringConfigKey = "coreLibraryDesugaring"
	DefaultModuleName   = "app"
)

// BuildConfig represents the declared build configuration of one application module
type BuildConfig struct {
	Module         string
	Plugins        []string
	Namespace      string
	CompileSdk     IntProperty
	NdkVersion     StringProperty
	CompileOptions CompileOptions
	KotlinOptions  KotlinOptions
	Splits         AbiSplitPolicy
	DefaultConfig  DefaultConfig
	BuildTypes     map[string]BuildType
	Flutter        FlutterConfig
	Dependencies   []Dependency

	// SourcePath is the file the config was loaded from, empty for in-memory configs
	SourcePath string
}

// HasPlugin reports whether the plugin id is applied
func (c *BuildConfig) HasPlugin(id string) bool {
	for _, p := range c.Plugins {
		if p == id {
			return true
		}
	}
	return false
}

// AppliesKotlin reports whether either Kotlin Android plugin id is applied
func (c *BuildConfig) AppliesKotlin() bool {
	return c.HasPlugin(PluginKotlinAndroid) || c.HasPlugin(PluginKotlinAndroidFull)
}

// DesugaringDependency returns the first coreLibraryDesugaring dependency, if any
func (c *BuildConfig) DesugaringDependency() (Dependency, bool) {
	for _, d := range c.Dependencies {
		if d.Configuration == DesugaringConfigKey {
			return d, true
		}
	}
	return Dependency{}, false
}

// IntProperty is an integer setting given either literally or as a plugin property
// reference such as "flutter.minSdkVersion"
type IntProperty struct {
	Value int
	Ref   string
}

// IsRef reports whether the property must be resolved from a plugin
func (p IntProperty) IsRef() bool { return p.Ref != "" }

func (p IntProperty) String() string {
	if p.IsRef() {
		return p.Ref
	}
	return strconv.Itoa(p.Value)
}

// StringProperty is the string counterpart of IntProperty
type StringProperty struct {
	Value string
	Ref   string
}

// IsRef reports whether the property must be resolved from a plugin
func (p StringProperty) IsRef() bool { return p.Ref != "" }

// IsPropertyRef reports whether a raw scalar names a plugin-provided property
func IsPropertyRef(raw string) bool {
	name, ok := strings.CutPrefix(raw, "flutter.")
	return ok && name != "" && !strings.ContainsAny(name, " .")
}

// DefaultConfig holds the defaultConfig block
type DefaultConfig struct {
	ApplicationID string
	MinSdk        IntProperty
	TargetSdk     IntProperty
	VersionCode   IntProperty
	VersionName   StringProperty
}

// CompileOptions holds Java language level settings
type CompileOptions struct {
	SourceCompatibility   string
	TargetCompatibility   string
	CoreLibraryDesugaring bool
}

// KotlinOptions holds Kotlin compiler settings
type KotlinOptions struct {
	JvmTarget string
}

// AbiSplitPolicy represents splits.abi
type AbiSplitPolicy struct {
	Enable       bool
	Reset        bool // drop the default (all supported) set before Include
	Include      []string
	Exclude      []string
	UniversalApk bool
}

// BuildType represents one entry of buildTypes
type BuildType struct {
	Name            string
	SigningConfig   string
	MinifyEnabled   bool
	ShrinkResources bool
	Debuggable      bool
}

// FlutterConfig represents the flutter block
type FlutterConfig struct {
	Source string
}
