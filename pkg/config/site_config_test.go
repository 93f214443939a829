package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultSiteConfig 测试默认配置
func TestDefaultSiteConfig(t *testing.T) {
	cfg := DefaultSiteConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Intro.Storage != "session" {
		t.Errorf("Intro.Storage = %q, want session", cfg.Intro.Storage)
	}
	if !cfg.Widget.AllowReplay {
		t.Error("Widget.AllowReplay should default to true")
	}
}

// TestParseSiteConfigKeepsDefaults 测试未写出的字段保留默认值
func TestParseSiteConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseSiteConfig([]byte("language: en\nintro:\n  storage: durable\n"))
	if err != nil {
		t.Fatalf("ParseSiteConfig failed: %v", err)
	}

	if cfg.Language != "en" {
		t.Errorf("Language = %q, want en", cfg.Language)
	}
	if cfg.Intro.Storage != "durable" {
		t.Errorf("Intro.Storage = %q, want durable", cfg.Intro.Storage)
	}
	if !cfg.Intro.Enabled {
		t.Error("Intro.Enabled should keep its default")
	}
	if !cfg.Widget.AllowReplay || cfg.Widget.Width != 320 {
		t.Errorf("widget defaults lost: %+v", cfg.Widget)
	}
}

// TestParseSiteConfigInvalid 测试非法配置
func TestParseSiteConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"未知作用域", "intro:\n  storage: cookie\n"},
		{"未知语言", "language: sv\n"},
		{"尺寸非法", "widget:\n  width: 0\n"},
		{"没有区块", "sections: []\n"},
		{"YAML 语法错误", "intro: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSiteConfig([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestLoadSiteConfig 测试从文件加载
func TestLoadSiteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallgate.yaml")
	if err := os.WriteFile(path, []byte("widget:\n  allowReplay: false\n  buttonLabel: Try\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("LoadSiteConfig failed: %v", err)
	}
	if cfg.Widget.AllowReplay {
		t.Error("AllowReplay should be false")
	}
	if cfg.Widget.ButtonLabel != "Try" {
		t.Errorf("ButtonLabel = %q, want Try", cfg.Widget.ButtonLabel)
	}
	if !cfg.HasSection("pricing") || cfg.HasSection("blog") {
		t.Error("HasSection returned unexpected results")
	}

	if _, err := LoadSiteConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
