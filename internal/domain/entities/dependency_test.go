package entities

import (
	"errors"
	"testing"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		wantErr  bool
	}{
		{"pinned", "com.android.tools:desugar_jdk_libs:2.0.4", false},
		{"dynamic plus", "com.android.tools:desugar_jdk_libs:2.+", true},
		{"latest release", "com.android.tools:desugar_jdk_libs:latest.release", true},
		{"range", "com.android.tools:desugar_jdk_libs:[2.0,3.0)", true},
		{"missing version", "com.android.tools:desugar_jdk_libs", true},
		{"empty segment", "com.android.tools::2.0.4", true},
		{"padded segment", "com.android.tools: desugar_jdk_libs:2.0.4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep, err := ParseDependency(DesugaringConfigKey, tt.notation)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDependency(%q) error = %v, wantErr %v", tt.notation, err, tt.wantErr)
			}
			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("error type = %T, want *ValidationError", err)
				}
				return
			}
			if dep.Notation() != tt.notation {
				t.Errorf("Notation() = %v, want %v", dep.Notation(), tt.notation)
			}
		})
	}
}

func TestParseDependency_MissingConfiguration(t *testing.T) {
	if _, err := ParseDependency("", "a:b:1"); err == nil {
		t.Error("ParseDependency should reject an empty configuration")
	}
}

func TestIsPropertyRef(t *testing.T) {
	for raw, want := range map[string]bool{
		"flutter.versionCode":       true,
		"flutter.compileSdkVersion": true,
		"flutter.":                  false,
		"flutter.a.b":               false,
		"com.example.app":           false,
		"34":                        false,
	} {
		if got := IsPropertyRef(raw); got != want {
			t.Errorf("IsPropertyRef(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	ref := &UnknownReferenceError{Kind: RefSigningConfig, Name: "release", Field: "build_types.release.signing_config", Known: []string{"debug"}}
	if got := ref.Error(); got != `unknown signing config "release" referenced by build_types.release.signing_config (known: debug)` {
		t.Errorf("UnknownReferenceError.Error() = %q", got)
	}

	arch := &UnsupportedArchitectureError{ABI: "mips", Field: "splits.abi.include"}
	if got := arch.Error(); got != `unsupported architecture "mips" in splits.abi.include (supported: armeabi-v7a, arm64-v8a, x86, x86_64)` {
		t.Errorf("UnsupportedArchitectureError.Error() = %q", got)
	}

	val := &ValidationError{Field: "default_config.min_sdk", Reason: "35 exceeds target_sdk 34"}
	if got := val.Error(); got != "invalid default_config.min_sdk: 35 exceeds target_sdk 34" {
		t.Errorf("ValidationError.Error() = %q", got)
	}
}

func TestDeclareDependency_KeepsInvalidNotation(t *testing.T) {
	dep := DeclareDependency("implementation", "a:b:1.+")
	if dep.Declared != "a:b:1.+" || dep.Version != "" {
		t.Errorf("DeclareDependency() = %+v", dep)
	}

	var valErr *ValidationError
	if err := dep.Validate(); !errors.As(err, &valErr) {
		t.Errorf("Validate() error = %v, want ValidationError", err)
	}

	if err := DeclareDependency(DesugaringConfigKey, "com.android.tools:desugar_jdk_libs:2.0.4").Validate(); err != nil {
		t.Errorf("Validate() of a pinned dependency error = %v", err)
	}
	if err := (Dependency{Configuration: "implementation", Group: "a", Artifact: "b", Version: "1"}).Validate(); err != nil {
		t.Errorf("Validate() without Declared error = %v", err)
	}
}
