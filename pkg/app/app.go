// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/fallgate/pkg/config"
	"github.com/decker502/fallgate/pkg/embedded"
	"github.com/decker502/fallgate/pkg/game"
	"github.com/decker502/fallgate/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultConfigPath 嵌入的默认站点配置
const DefaultConfigPath = "data/config/fallgate.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// Storage 覆盖配置中的 intro.storage（session / durable），为空不覆盖
	Storage string
	// Language 覆盖配置中的 language（fi / en），为空不覆盖
	Language string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	siteConfig               *config.SiteConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	siteConfig, err := LoadSiteConfig(cfg)
	if err != nil {
		return nil, err
	}

	scope, err := game.ParseStorageScope(siteConfig.Intro.Storage)
	if err != nil {
		return nil, fmt.Errorf("站点配置无效: %w", err)
	}

	siteStrings, err := game.LoadSiteStrings(game.StringsPath(siteConfig.Language))
	if err != nil {
		return nil, fmt.Errorf("文案加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d strings for language %s", siteStrings.Len(), siteConfig.Language)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(BuildRootScene(sceneManager, siteConfig, siteStrings, scope))

	return &App{
		sceneManager: sceneManager,
		siteConfig:   siteConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadSiteConfig 加载站点配置并应用命令行覆盖
//
// 参数:
//   - cfg: 应用启动配置
//
// 返回:
//   - *config.SiteConfig: 最终生效的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadSiteConfig(cfg Config) (*config.SiteConfig, error) {
	var (
		siteConfig *config.SiteConfig
		err        error
	)
	if cfg.ConfigPath != "" {
		siteConfig, err = config.LoadSiteConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded site config from %s", cfg.ConfigPath)
	} else {
		data, readErr := embedded.ReadFile(DefaultConfigPath)
		if readErr != nil {
			return nil, fmt.Errorf("嵌入配置读取失败: %w", readErr)
		}
		siteConfig, err = config.ParseSiteConfig(data)
		if err != nil {
			return nil, fmt.Errorf("嵌入配置解析失败: %w", err)
		}
	}

	if cfg.Storage != "" {
		siteConfig.Intro.Storage = cfg.Storage
	}
	if cfg.Language != "" {
		siteConfig.Language = cfg.Language
	}
	if err := siteConfig.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}
	return siteConfig, nil
}

// BuildRootScene 构建根场景：落地页，启用开场时外面包一层一次性遮罩
func BuildRootScene(sm *game.SceneManager, siteConfig *config.SiteConfig, siteStrings *game.SiteStrings, scope game.StorageScope) game.Scene {
	landing := scenes.NewLandingScene(scenes.LandingOptions{
		Config:  siteConfig,
		Strings: siteStrings,
	})
	if !siteConfig.Intro.Enabled {
		log.Printf("[App] Intro disabled, starting on landing page")
		return landing
	}

	gate := scenes.NewIntroGateScene(landing, scenes.IntroGateOptions{
		Scope:        scope,
		SceneManager: sm,
		Strings:      siteStrings,
	})
	if gate.Skipped() {
		return landing
	}
	return gate
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// SiteConfig 返回生效的站点配置
func (a *App) SiteConfig() *config.SiteConfig {
	return a.siteConfig
}

// Close 卸载当前场景（释放页面锁、取消计时器）
func (a *App) Close() {
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
