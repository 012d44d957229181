package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.ZoomStep != 0.1 || c.HistoryLimit != 100 || c.PortHitRadius != 12 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.GridStep != 0 {
		t.Error("grid snapping should default to off")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.yaml")
	data := []byte("grid_step: 25\nhistory_limit: 10\nzoom_step: 0.2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.GridStep != 25 || c.HistoryLimit != 10 || c.ZoomStep != 0.2 {
		t.Errorf("loaded config: %+v", c)
	}
	// Unset fields fall back to defaults.
	if c.PortHitRadius != 12 || c.ViewportWidth != 800 {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestLoadFromPathMissing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromPathMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.yaml")
	if err := os.WriteFile(path, []byte("grid_step: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	c := Default()
	c.GridStep = 5
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *c {
		t.Errorf("round trip: got %+v, want %+v", loaded, c)
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	t.Setenv("VELLUM_CONFIG", "/tmp/somewhere.yaml")
	if got := FindConfigPath(); got != "/tmp/somewhere.yaml" {
		t.Errorf("FindConfigPath() = %q", got)
	}
}

func TestEditorOptions(t *testing.T) {
	c := Default()
	c.GridStep = 10
	opts := c.EditorOptions()
	if opts.GridStep != 10 || opts.Viewport.W != 800 || opts.Viewport.H != 600 {
		t.Errorf("options: %+v", opts)
	}
}
