package termview

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termview.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := DefaultConfig()
	if cfg.Rows != want.Rows || cfg.Cols != want.Cols {
		t.Errorf("expected default geometry, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Scrollback != want.Scrollback || cfg.ScrollRatio != want.ScrollRatio {
		t.Errorf("expected default scrolling, got %+v", cfg)
	}
	if cfg.ShowColors != want.ShowColors {
		t.Errorf("expected colors enabled by default, got %+v", cfg)
	}
	if cfg.Shell != "" || len(cfg.ShellArgs) != 0 {
		t.Errorf("expected empty shell override, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file created: %v", err)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termview.yaml")

	want := Config{
		Rows:        40,
		Cols:        120,
		Scrollback:  5000,
		ScrollRatio: 0.25,
		ShowColors:  true,
		Shell:       "/bin/bash",
		ShellArgs:   []string{"-l"},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Rows != want.Rows || got.Cols != want.Cols || got.Scrollback != want.Scrollback {
		t.Errorf("geometry mismatch: %+v", got)
	}
	if got.ScrollRatio != want.ScrollRatio {
		t.Errorf("expected ratio %v, got %v", want.ScrollRatio, got.ScrollRatio)
	}
	if got.Shell != want.Shell || len(got.ShellArgs) != 1 || got.ShellArgs[0] != "-l" {
		t.Errorf("shell mismatch: %+v", got)
	}
}

func TestLoadConfigNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termview.yaml")
	bad := "rows: -5\ncols: 0\nscrollback: -1\nscroll_ratio: 7\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Rows != DefaultRows || cfg.Cols != DefaultCols {
		t.Errorf("expected default geometry, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Scrollback != DefaultScrollback {
		t.Errorf("expected default scrollback, got %d", cfg.Scrollback)
	}
	if cfg.ScrollRatio != DefaultScrollRatio {
		t.Errorf("expected default ratio, got %v", cfg.ScrollRatio)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termview.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{Rows: 6, Cols: 30, Scrollback: 50, ScrollRatio: 0.5, ShowColors: false}

	s := NewSession(&recordView{}, cfg.Options()...)

	if s.Screen().Rows() != 6 || s.Screen().Cols() != 30 {
		t.Errorf("expected 6x30, got %dx%d", s.Screen().Rows(), s.Screen().Cols())
	}
	if s.Screen().History().Capacity() != 50 {
		t.Errorf("expected scrollback 50, got %d", s.Screen().History().Capacity())
	}
}
