package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteConfig 站点配置
//
// 配置文件位置: data/config/fallgate.yaml（嵌入），可通过 -config 覆盖
type SiteConfig struct {
	// Title 窗口标题
	Title string `yaml:"title"`

	// Language 文案语言（fi / en）
	Language string `yaml:"language"`

	// Intro 一次性开场遮罩配置
	Intro IntroConfig `yaml:"intro"`

	// Widget 嵌入式小游戏配置
	Widget WidgetConfig `yaml:"widget"`

	// Sections 页面区块顺序（对应文案文件中的 SECTION_<ID>_TITLE / _BODY）
	Sections []string `yaml:"sections"`
}

// IntroConfig 开场遮罩配置
type IntroConfig struct {
	// Enabled 是否挂载开场遮罩
	Enabled bool `yaml:"enabled"`

	// Storage "已看过"标记的作用域：session（默认）或 durable
	Storage string `yaml:"storage"`
}

// WidgetConfig 嵌入式小游戏配置
type WidgetConfig struct {
	// AllowReplay GameOver 后 2.5 秒自动回到可玩状态（默认 true）
	AllowReplay bool `yaml:"allowReplay"`

	// ButtonLabel 按钮文字，为空时使用文案文件中的 WIDGET_BUTTON
	ButtonLabel string `yaml:"buttonLabel"`

	// Section 小游戏嵌入在哪个区块
	Section string `yaml:"section"`

	// Width/Height 小游戏区域尺寸
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultSiteConfig 返回默认配置
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Title:    "Fallgate",
		Language: "fi",
		Intro: IntroConfig{
			Enabled: true,
			Storage: "session",
		},
		Widget: WidgetConfig{
			AllowReplay: true,
			Section:     "story",
			Width:       320,
			Height:      240,
		},
		Sections: []string{"hero", "story", "pricing", "contact", "invoicing", "privacy"},
	}
}

// ParseSiteConfig 解析 YAML 配置
// 未出现的字段保留默认值
func ParseSiteConfig(data []byte) (*SiteConfig, error) {
	cfg := DefaultSiteConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse site config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site config: %w", err)
	}
	return cfg, nil
}

// LoadSiteConfig 从文件加载配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *SiteConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadSiteConfig(path string) (*SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}
	return ParseSiteConfig(data)
}

// Validate 验证配置有效性
func (c *SiteConfig) Validate() error {
	switch c.Intro.Storage {
	case "", "session", "durable":
	default:
		return fmt.Errorf("intro.storage must be session or durable, got %q", c.Intro.Storage)
	}

	switch c.Language {
	case "fi", "en":
	default:
		return fmt.Errorf("unsupported language %q", c.Language)
	}

	if c.Widget.Width <= 0 || c.Widget.Height <= 0 {
		return fmt.Errorf("widget size must be positive, got %.0fx%.0f", c.Widget.Width, c.Widget.Height)
	}

	if len(c.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}
	return nil
}

// HasSection 页面是否包含指定区块
func (c *SiteConfig) HasSection(id string) bool {
	for _, s := range c.Sections {
		if s == id {
			return true
		}
	}
	return false
}
