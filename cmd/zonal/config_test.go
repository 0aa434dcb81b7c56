package main

import (
	"os"
	"path/filepath"
	"testing"
)

// ============================================================================
// Site configuration
// ============================================================================

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "zonal.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSiteConfig_ResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, "geometry: geometry.yaml\nstyle: style.yaml\nobjects: content\npage: home\n")

	cfg, err := loadSiteConfig(path)
	if err != nil {
		t.Fatalf("loadSiteConfig: %v", err)
	}

	base := filepath.Dir(path)
	if cfg.Geometry != filepath.Join(base, "geometry.yaml") {
		t.Errorf("geometry not resolved against config dir: %q", cfg.Geometry)
	}
	if cfg.Style != filepath.Join(base, "style.yaml") {
		t.Errorf("style not resolved against config dir: %q", cfg.Style)
	}
	if cfg.Objects != filepath.Join(base, "content") {
		t.Errorf("objects not resolved against config dir: %q", cfg.Objects)
	}
	if cfg.Page != "home" {
		t.Errorf("page = %q, want home", cfg.Page)
	}
	if cfg.ZonePattern == "" {
		t.Error("zone pattern should default when the file omits it")
	}
}

func TestLoadSiteConfig_KeepsAbsolutePaths(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "srv", "site", "geometry.yaml")
	path := writeConfig(t, "geometry: "+abs+"\n")

	cfg, err := loadSiteConfig(path)
	if err != nil {
		t.Fatalf("loadSiteConfig: %v", err)
	}
	if cfg.Geometry != abs {
		t.Errorf("absolute path should be untouched, got %q", cfg.Geometry)
	}
}

func TestLoadSiteConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "geometry: [unclosed\n")
	if _, err := loadSiteConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSiteConfig_MergeFlagsWin(t *testing.T) {
	cfg := siteConfig{Geometry: "a.yaml", Style: "s.yaml", Page: "home"}

	merged := cfg.merge("b.yaml", "", "content", "about")
	if merged.Geometry != "b.yaml" {
		t.Errorf("geometry flag should win, got %q", merged.Geometry)
	}
	if merged.Style != "s.yaml" {
		t.Errorf("empty style flag should keep the file value, got %q", merged.Style)
	}
	if merged.Objects != "content" {
		t.Errorf("objects = %q, want content", merged.Objects)
	}
	if merged.Page != "about" {
		t.Errorf("page flag should win, got %q", merged.Page)
	}
}

func TestSiteSettings_RequiresGeometry(t *testing.T) {
	if _, err := siteSettings("", "", "", "", ""); err == nil {
		t.Fatal("expected an error when no geometry is given")
	}
}

func TestSiteSettings_FlagOnly(t *testing.T) {
	cfg, err := siteSettings("", "geometry.yaml", "", "", "home")
	if err != nil {
		t.Fatalf("siteSettings: %v", err)
	}
	if cfg.Geometry != "geometry.yaml" || cfg.Page != "home" {
		t.Errorf("unexpected settings: %+v", cfg)
	}
}
