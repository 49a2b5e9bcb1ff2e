package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
)

// maxVersionCode is the largest versionCode Google Play accepts
const maxVersionCode = 2100000000

var (
	packageNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)
	ndkVersionPattern  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

func validatePlugins(plugins []string) []error {
	var errs []error

	seen := make(map[string]int, len(plugins))
	for i, p := range plugins {
		if _, dup := seen[p]; dup {
			errs = append(errs, &entities.ValidationError{Field: "plugins", Reason: fmt.Sprintf("plugin %q applied twice", p)})
			continue
		}
		seen[p] = i
	}

	androidIdx, ok := seen[entities.PluginAndroidApplication]
	if !ok {
		errs = append(errs, &entities.ValidationError{
			Field:  "plugins",
			Reason: entities.PluginAndroidApplication + " must be applied",
		})
	}

	flutterIdx, hasFlutter := seen[entities.PluginFlutter]
	if !hasFlutter {
		return errs
	}
	after := []string{}
	if ok && flutterIdx < androidIdx {
		after = append(after, entities.PluginAndroidApplication)
	}
	for _, kotlin := range []string{entities.PluginKotlinAndroid, entities.PluginKotlinAndroidFull} {
		if idx, applied := seen[kotlin]; applied && flutterIdx < idx {
			after = append(after, kotlin)
		}
	}
	if len(after) > 0 {
		errs = append(errs, &entities.ValidationError{
			Field:  "plugins",
			Reason: fmt.Sprintf("%s must be applied after %s", entities.PluginFlutter, strings.Join(after, ", ")),
		})
	}

	return errs
}

func validatePackageName(field, name string) []error {
	if name == "" {
		return []error{&entities.ValidationError{Field: field, Reason: "must not be empty"}}
	}
	if !packageNamePattern.MatchString(name) {
		return []error{&entities.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%q is not a dotted package name with at least two segments", name),
		}}
	}
	return nil
}

type sdkLevel struct {
	field    string
	value    int
	resolved bool
}

// validateSdkLevels checks positivity and min <= target <= compile.
// Levels that failed to resolve are skipped; their error is already recorded.
func validateSdkLevels(minSdk, targetSdk, compileSdk sdkLevel) []error {
	var errs []error
	positive := true
	for _, l := range []sdkLevel{minSdk, targetSdk, compileSdk} {
		if !l.resolved {
			positive = false
			continue
		}
		if l.value <= 0 {
			errs = append(errs, &entities.ValidationError{
				Field:  l.field,
				Reason: fmt.Sprintf("must be a positive integer, got %d", l.value),
			})
			positive = false
		}
	}
	if !positive {
		return errs
	}

	if minSdk.value > targetSdk.value {
		errs = append(errs, &entities.ValidationError{
			Field:  minSdk.field,
			Reason: fmt.Sprintf("%d exceeds target_sdk %d", minSdk.value, targetSdk.value),
		})
	}
	if targetSdk.value > compileSdk.value {
		errs = append(errs, &entities.ValidationError{
			Field:  targetSdk.field,
			Reason: fmt.Sprintf("%d exceeds compile_sdk %d", targetSdk.value, compileSdk.value),
		})
	}
	return errs
}

func validateVersionCode(code int) []error {
	if code < 1 || code > maxVersionCode {
		return []error{&entities.ValidationError{
			Field:  "default_config.version_code",
			Reason: fmt.Sprintf("%d is outside 1..%d", code, maxVersionCode),
		}}
	}
	return nil
}

func validateNdkVersion(v string) []error {
	if v == "" || ndkVersionPattern.MatchString(v) {
		return nil
	}
	return []error{&entities.ValidationError{
		Field:  "android.ndk_version",
		Reason: fmt.Sprintf("%q is not major.minor.build", v),
	}}
}

// NormalizeJavaVersion maps Gradle spellings (17, VERSION_17, JavaVersion.VERSION_1_8, 8)
// to the canonical form ("17", "1.8"). ok is false for unknown versions.
func NormalizeJavaVersion(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", true
	}
	v = strings.TrimPrefix(v, "JavaVersion.")
	v = strings.TrimPrefix(v, "VERSION_")
	v = strings.ReplaceAll(v, "_", ".")

	switch v {
	case "1.6", "1.7", "1.8":
		return v, true
	case "6", "7", "8":
		return "1." + v, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 9 || n > 25 {
		return "", false
	}
	return v, true
}

func resolveJava(cfg *entities.BuildConfig) (entities.JavaToolchain, []error) {
	var errs []error
	normalize := func(field, raw string) string {
		v, ok := NormalizeJavaVersion(raw)
		if !ok {
			errs = append(errs, &entities.ValidationError{Field: field, Reason: fmt.Sprintf("unknown Java version %q", raw)})
		}
		return v
	}

	java := entities.JavaToolchain{
		SourceCompatibility:   normalize("compile_options.source_compatibility", cfg.CompileOptions.SourceCompatibility),
		TargetCompatibility:   normalize("compile_options.target_compatibility", cfg.CompileOptions.TargetCompatibility),
		JvmTarget:             normalize("kotlin_options.jvm_target", cfg.KotlinOptions.JvmTarget),
		CoreLibraryDesugaring: cfg.CompileOptions.CoreLibraryDesugaring,
	}

	if cfg.AppliesKotlin() && java.JvmTarget != "" && java.TargetCompatibility != "" &&
		java.JvmTarget != java.TargetCompatibility {
		errs = append(errs, &entities.ValidationError{
			Field: "kotlin_options.jvm_target",
			Reason: fmt.Sprintf("%s does not match compile_options.target_compatibility %s",
				java.JvmTarget, java.TargetCompatibility),
		})
	}

	return java, errs
}

// validateDesugaring requires the desugaring flag and the coreLibraryDesugaring
// dependency to be declared together
func validateDesugaring(cfg *entities.BuildConfig) []error {
	_, hasDep := cfg.DesugaringDependency()
	switch {
	case cfg.CompileOptions.CoreLibraryDesugaring && !hasDep:
		return []error{&entities.ValidationError{
			Field:  "compile_options.core_library_desugaring",
			Reason: "enabled without a " + entities.DesugaringConfigKey + " dependency",
		}}
	case !cfg.CompileOptions.CoreLibraryDesugaring && hasDep:
		return []error{&entities.ValidationError{
			Field:  "dependencies",
			Reason: entities.DesugaringConfigKey + " dependency declared but core_library_desugaring is disabled",
		}}
	}
	return nil
}

func validateDependencies(deps []entities.Dependency) []error {
	var errs []error
	for _, d := range deps {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
