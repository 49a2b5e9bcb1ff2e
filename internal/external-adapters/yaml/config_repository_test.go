package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigRepository_GetConfig_Success(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "mainzoom.yml"), []byte(mainzoomYAML), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	repo := NewConfigRepository(tmpDir)
	cfg, err := repo.GetConfig(context.Background(), "mainzoom")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}

	if cfg.Namespace != "com.example.mainzoom" {
		t.Errorf("GetConfig() namespace = %v, want com.example.mainzoom", cfg.Namespace)
	}
	if cfg.SourcePath != filepath.Join(tmpDir, "mainzoom.yml") {
		t.Errorf("SourcePath = %v", cfg.SourcePath)
	}
}

func TestConfigRepository_GetConfig_YAMLExtension(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "wear.yaml"), []byte("plugins: [com.android.application]\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewConfigRepository(tmpDir).GetConfig(context.Background(), "wear"); err != nil {
		t.Errorf("GetConfig() error = %v", err)
	}
}

func TestConfigRepository_GetConfig_NotFound(t *testing.T) {
	repo := NewConfigRepository(t.TempDir())

	_, err := repo.GetConfig(context.Background(), "nonexistent")
	if err == nil {
		t.Error("GetConfig() should return error for nonexistent config")
	}
}

func TestConfigRepository_ListConfigs(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"b.yml", "a.yaml", "a.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("plugins: [x]\n"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "nested.yml"), 0750); err != nil {
		t.Fatal(err)
	}

	names, err := NewConfigRepository(tmpDir).ListConfigs(context.Background())
	if err != nil {
		t.Fatalf("ListConfigs() error = %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("ListConfigs() = %v, want [a b]", names)
	}
}

func TestConfigRepository_ListConfigs_MissingDir(t *testing.T) {
	if _, err := NewConfigRepository("/nonexistent/configs").ListConfigs(context.Background()); err == nil {
		t.Error("ListConfigs() should fail for a missing directory")
	}
}
