// Package entities defines core domain models and data structures.
package entities

import "strings"

// Descriptor is the fully resolved build description handed to the packaging tool
type Descriptor struct {
	Module        string            `json:"module"`
	Namespace     string            `json:"namespace"`
	ApplicationID string            `json:"application_id"`
	Sdk           SdkLevels         `json:"sdk"`
	NdkVersion    string            `json:"ndk_version,omitempty"`
	VersionCode   int               `json:"version_code"`
	VersionName   string            `json:"version_name"`
	Java          JavaToolchain     `json:"java"`
	Plugins       []string          `json:"plugins"`
	BuildType     ResolvedBuildType `json:"build_type"`
	Splits        ResolvedSplits    `json:"splits"`
	Units         []PackagingUnit   `json:"packaging_units"`
	Dependencies  []Dependency      `json:"dependencies"`
}

// SdkLevels holds resolved SDK levels; Min <= Target <= Compile
type SdkLevels struct {
	Min     int `json:"min"`
	Target  int `json:"target"`
	Compile int `json:"compile"`
}

// JavaToolchain holds normalized Java/Kotlin language levels
type JavaToolchain struct {
	SourceCompatibility   string `json:"source_compatibility,omitempty"`
	TargetCompatibility   string `json:"target_compatibility,omitempty"`
	JvmTarget             string `json:"jvm_target,omitempty"`
	CoreLibraryDesugaring bool   `json:"core_library_desugaring"`
}

// ResolvedBuildType is a build type with its signing config looked up
type ResolvedBuildType struct {
	Name            string         `json:"name"`
	Signing         *SigningConfig `json:"signing,omitempty"`
	MinifyEnabled   bool           `json:"minify_enabled"`
	ShrinkResources bool           `json:"shrink_resources"`
	Debuggable      bool           `json:"debuggable"`
}

// ResolvedSplits records the effective ABI set after reset/include/exclude
type ResolvedSplits struct {
	Enabled      bool     `json:"enabled"`
	ABIs         []string `json:"abis,omitempty"`
	UniversalApk bool     `json:"universal_apk"`
}

// PackagingUnit is one APK the packaging tool is expected to produce
type PackagingUnit struct {
	ABI         string `json:"abi,omitempty"`
	Universal   bool   `json:"universal"`
	FileName    string `json:"file_name"`
	VersionCode int    `json:"version_code"`
}

// UniversalUnits returns the number of architecture-independent units
func (d *Descriptor) UniversalUnits() int {
	n := 0
	for _, u := range d.Units {
		if u.Universal {
			n++
		}
	}
	return n
}

// OwnsFileName reports whether an APK file name belongs to this descriptor: either one
// of its units, or <module>[-<abi>|-universal]-<buildType>[-unsigned].apk for its
// module and build type. Names from sibling modules such as app-wear-release.apk do not.
func (d *Descriptor) OwnsFileName(name string) bool {
	for _, u := range d.Units {
		if u.FileName == name {
			return true
		}
	}

	rest, ok := strings.CutPrefix(name, d.Module+"-")
	if !ok {
		return false
	}
	if rest, ok = strings.CutSuffix(rest, ".apk"); !ok {
		return false
	}
	rest = strings.TrimSuffix(rest, "-unsigned")

	if rest == d.BuildType.Name {
		return true
	}
	variant, ok := strings.CutSuffix(rest, "-"+d.BuildType.Name)
	if !ok {
		return false
	}
	return variant == "universal" || IsSupportedABI(variant)
}
