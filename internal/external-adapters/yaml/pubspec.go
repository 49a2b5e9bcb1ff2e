package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// DefaultFlutterSource is the Flutter project root relative to android/app
const DefaultFlutterSource = "../.."

// FlutterDefaults are the SDK values the Flutter Gradle plugin exposes as flutter.* properties
type FlutterDefaults struct {
	CompileSdkVersion int
	TargetSdkVersion  int
	MinSdkVersion     int
	NdkVersion        string
}

// DefaultFlutterDefaults matches the values shipped with Flutter 3.27
var DefaultFlutterDefaults = FlutterDefaults{
	CompileSdkVersion: 35,
	TargetSdkVersion:  35,
	MinSdkVersion:     21,
	NdkVersion:        "26.3.11579264",
}

type yamlPubspec struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// PubspecPropertySource implements gateways.PropertySource from Flutter defaults
// and the project's pubspec.yaml
type PubspecPropertySource struct {
	defaults FlutterDefaults
}

// NewPubspecPropertySource creates a property source with the given defaults
func NewPubspecPropertySource(defaults FlutterDefaults) *PubspecPropertySource {
	return &PubspecPropertySource{defaults: defaults}
}

// Properties returns the flutter.* properties for cfg. A missing pubspec.yaml leaves
// versionCode "1" and versionName "1.0", as the Flutter tool does.
func (s *PubspecPropertySource) Properties(_ context.Context, cfg *entities.BuildConfig) (map[string]string, error) {
	props := map[string]string{
		"flutter.compileSdkVersion": strconv.Itoa(s.defaults.CompileSdkVersion),
		"flutter.targetSdkVersion":  strconv.Itoa(s.defaults.TargetSdkVersion),
		"flutter.minSdkVersion":     strconv.Itoa(s.defaults.MinSdkVersion),
		"flutter.ndkVersion":        s.defaults.NdkVersion,
		"flutter.versionCode":       "1",
		"flutter.versionName":       "1.0",
	}

	pubspecPath := filepath.Join(flutterRoot(cfg), "pubspec.yaml")
	//nolint:gosec // G304: pubspec path is derived from the build config location
	data, err := os.ReadFile(pubspecPath)
	if os.IsNotExist(err) {
		return props, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pubspecPath, err)
	}

	name, code, err := ParsePubspecVersion(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pubspecPath, err)
	}
	if name != "" {
		props["flutter.versionName"] = name
	}
	if code != "" {
		props["flutter.versionCode"] = code
	}
	return props, nil
}

// ParsePubspecVersion splits pubspec "version: 1.2.3+45" into name "1.2.3" and code "45".
// Either part is empty when absent.
func ParsePubspecVersion(data []byte) (name, code string, err error) {
	var pubspec yamlPubspec
	if err := yaml.Unmarshal(data, &pubspec); err != nil {
		return "", "", fmt.Errorf("failed to parse pubspec: %w", err)
	}

	name, code, _ = strings.Cut(strings.TrimSpace(pubspec.Version), "+")
	if code != "" {
		if _, err := strconv.Atoi(code); err != nil {
			return "", "", fmt.Errorf("build number %q in version %q is not an integer", code, pubspec.Version)
		}
	}
	return name, code, nil
}

func flutterRoot(cfg *entities.BuildConfig) string {
	source := cfg.Flutter.Source
	if source == "" {
		source = DefaultFlutterSource
	}
	if filepath.IsAbs(source) || cfg.SourcePath == "" {
		return source
	}
	return filepath.Join(filepath.Dir(cfg.SourcePath), source)
}
