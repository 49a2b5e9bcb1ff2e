package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/variants/internal/domain/entities"
)

func TestParsePubspecVersion(t *testing.T) {
	tests := []struct {
		yaml     string
		wantName string
		wantCode string
		wantErr  bool
	}{
		{"version: 1.2.3+45\n", "1.2.3", "45", false},
		{"version: 1.0.0\n", "1.0.0", "", false},
		{"name: mainzoom\n", "", "", false},
		{"version: 1.0.0+beta\n", "", "", true},
		{"version: [1\n", "", "", true},
	}

	for _, tt := range tests {
		name, code, err := ParsePubspecVersion([]byte(tt.yaml))
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePubspecVersion(%q) error = %v, wantErr %v", tt.yaml, err, tt.wantErr)
			continue
		}
		if name != tt.wantName || code != tt.wantCode {
			t.Errorf("ParsePubspecVersion(%q) = %q, %q; want %q, %q", tt.yaml, name, code, tt.wantName, tt.wantCode)
		}
	}
}

func TestPubspecPropertySource_Properties(t *testing.T) {
	root := t.TempDir()
	appDir := filepath.Join(root, "android", "app")
	if err := os.MkdirAll(appDir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte("name: mainzoom\nversion: 2.4.1+31\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := &entities.BuildConfig{SourcePath: filepath.Join(appDir, "variant.yml")}
	props, err := NewPubspecPropertySource(DefaultFlutterDefaults).Properties(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Properties() error = %v", err)
	}

	if props["flutter.versionName"] != "2.4.1" || props["flutter.versionCode"] != "31" {
		t.Errorf("version props = %v / %v", props["flutter.versionName"], props["flutter.versionCode"])
	}
	if props["flutter.compileSdkVersion"] != "35" || props["flutter.minSdkVersion"] != "21" {
		t.Errorf("sdk props = %v", props)
	}
}

func TestPubspecPropertySource_MissingPubspec(t *testing.T) {
	cfg := &entities.BuildConfig{
		SourcePath: filepath.Join(t.TempDir(), "variant.yml"),
		Flutter:    entities.FlutterConfig{Source: "."},
	}

	props, err := NewPubspecPropertySource(DefaultFlutterDefaults).Properties(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Properties() error = %v", err)
	}
	if props["flutter.versionCode"] != "1" || props["flutter.versionName"] != "1.0" {
		t.Errorf("fallback version props = %v", props)
	}
}

func TestPubspecPropertySource_InvalidPubspec(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pubspec.yaml"), []byte("version: 1.0.0+x\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := &entities.BuildConfig{Flutter: entities.FlutterConfig{Source: dir}}
	if _, err := NewPubspecPropertySource(DefaultFlutterDefaults).Properties(context.Background(), cfg); err == nil {
		t.Error("Properties() should fail for a non-integer build number")
	}
}
