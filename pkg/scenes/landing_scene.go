package scenes

import (
	"image/color"
	"log"
	"strings"

	"github.com/decker502/fallgate/pkg/config"
	"github.com/decker502/fallgate/pkg/ecs"
	"github.com/decker502/fallgate/pkg/game"
	"github.com/decker502/fallgate/pkg/modules"
	"github.com/decker502/fallgate/pkg/systems"
	"github.com/decker502/fallgate/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	landingBackgroundColor = color.RGBA{R: 250, G: 248, B: 242, A: 255}
	landingSectionColors   = []color.RGBA{
		{R: 236, G: 232, B: 220, A: 255},
		{R: 224, G: 230, B: 236, A: 255},
	}
	landingScrollbarColor = color.RGBA{R: 90, G: 90, B: 100, A: 160}
	landingTitleColor     = color.RGBA{R: 30, G: 30, B: 40, A: 255}
	landingBodyColor      = color.RGBA{R: 60, G: 60, B: 70, A: 255}
)

// LandingOptions 落地页配置
type LandingOptions struct {
	Config  *config.SiteConfig
	Strings *game.SiteStrings

	// PageLock 为空时使用 game.GetGameState() 的页面锁
	PageLock *game.PageLock
}

// LandingScene 可滚动的落地页
//
// 页面由若干区块组成，配置中指定的区块里嵌入一个 FallGameWidget。
// 页面锁被持有时（开场遮罩显示中）不响应滚动和点击。
type LandingScene struct {
	cfg      *config.SiteConfig
	strings  *game.SiteStrings
	pageLock *game.PageLock

	entityManager  *ecs.EntityManager
	timerSystem    *systems.TimerSystem
	sequenceSystem *systems.FallSequenceSystem

	widget        *modules.FallGameWidget
	widgetSection int // 小游戏所在区块索引，-1 表示未嵌入
	completions   int

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace

	scrollY   float64
	unmounted bool
}

// NewLandingScene 创建落地页
//
// 参数:
//   - options: 页面配置（Config 为空时使用默认配置）
//
// 返回:
//   - *LandingScene: 落地页场景
func NewLandingScene(options LandingOptions) *LandingScene {
	cfg := options.Config
	if cfg == nil {
		cfg = config.DefaultSiteConfig()
	}
	lock := options.PageLock
	if lock == nil {
		lock = game.GetGameState().GetPageLock()
	}

	em := ecs.NewEntityManager()
	s := &LandingScene{
		cfg:            cfg,
		strings:        options.Strings,
		pageLock:       lock,
		entityManager:  em,
		timerSystem:    systems.NewTimerSystem(em),
		sequenceSystem: systems.NewFallSequenceSystem(em),
		widgetSection:  -1,
		titleFace:      utils.DefaultFace(config.TitleFontSize),
		bodyFace:       utils.DefaultFace(config.BodyFontSize),
	}

	for i, id := range cfg.Sections {
		if id == cfg.Widget.Section {
			s.widgetSection = i
			break
		}
	}

	if s.widgetSection >= 0 {
		label := cfg.Widget.ButtonLabel
		if label == "" {
			label = s.strings.GetStringOr("WIDGET_BUTTON", modules.DefaultWidgetButtonLabel)
		}
		s.widget = modules.NewFallGameWidget(em, s.timerSystem, modules.FallGameWidgetOptions{
			AllowReplay: cfg.Widget.AllowReplay,
			ButtonLabel: label,
			OnComplete:  func() { s.completions++ },
			Width:       cfg.Widget.Width,
			Height:      cfg.Widget.Height,
		}, s.strings)
		s.layoutWidget()
	} else {
		log.Printf("[LandingScene] Warning: widget section %q not found, widget disabled", cfg.Widget.Section)
	}

	log.Printf("[LandingScene] Created with %d sections", len(cfg.Sections))
	return s
}

// Widget 返回嵌入的小游戏（未嵌入时为 nil）
func (s *LandingScene) Widget() *modules.FallGameWidget { return s.widget }

// Completions 小游戏完成的轮数
func (s *LandingScene) Completions() int { return s.completions }

// ScrollY 当前滚动位置
func (s *LandingScene) ScrollY() float64 { return s.scrollY }

// MaxScroll 最大滚动位置
func (s *LandingScene) MaxScroll() float64 {
	total := float64(len(s.cfg.Sections)) * config.SectionHeight
	return utils.Clamp(total-config.GameWindowHeight, 0, total)
}

// Scroll 滚动页面；页面锁被持有时忽略
//
// 返回:
//   - bool: 是否接受了本次滚动
func (s *LandingScene) Scroll(delta float64) bool {
	if delta == 0 || s.pageLock.Locked() {
		return false
	}
	s.scrollY = utils.Clamp(s.scrollY+delta, 0, s.MaxScroll())
	s.layoutWidget()
	return true
}

// HandleInput 处理一帧输入
func (s *LandingScene) HandleInput(input utils.InputState) {
	if s.unmounted || s.pageLock.Locked() {
		return
	}
	if input.ScrollDelta != 0 {
		s.Scroll(input.ScrollDelta)
	}
	if s.widget != nil {
		s.widget.Update(input)
	}
}

// Advance 推进小游戏的计时器
func (s *LandingScene) Advance(deltaTime float64) {
	if s.unmounted {
		return
	}
	s.timerSystem.Update(deltaTime)
	s.sequenceSystem.Update(deltaTime)
}

// Update 更新页面
func (s *LandingScene) Update(deltaTime float64) {
	s.HandleInput(utils.GetInputState())
	s.Advance(deltaTime)
}

// Unmount 卸载页面和小游戏（可重复调用）
func (s *LandingScene) Unmount() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	if s.widget != nil {
		s.widget.Unmount()
	}
	s.entityManager.RemoveMarkedEntities()
	log.Printf("[LandingScene] Unmounted")
}

// sectionTop 区块在屏幕上的 Y 坐标
func (s *LandingScene) sectionTop(index int) float64 {
	return float64(index)*config.SectionHeight - s.scrollY
}

// layoutWidget 让小游戏跟随所在区块滚动（放在区块右侧）
func (s *LandingScene) layoutWidget() {
	if s.widget == nil {
		return
	}
	o := s.widget.Options()
	x := config.GameWindowWidth - config.SectionPadding - o.Width
	y := s.sectionTop(s.widgetSection) + (config.SectionHeight-o.Height)/2
	s.widget.SetPosition(x, y)
}

// Draw 绘制页面
func (s *LandingScene) Draw(screen *ebiten.Image) {
	screen.Fill(landingBackgroundColor)

	for i, id := range s.cfg.Sections {
		top := s.sectionTop(i)
		if top+config.SectionHeight < 0 || top > config.GameWindowHeight {
			continue
		}
		bg := landingSectionColors[i%len(landingSectionColors)]
		vector.DrawFilledRect(screen, 0, float32(top), config.GameWindowWidth, config.SectionHeight, bg, false)

		key := "SECTION_" + strings.ToUpper(id)
		title := s.strings.GetStringOr(key+"_TITLE", id)
		utils.DrawText(screen, title, s.titleFace, config.SectionPadding, top+config.SectionPadding, landingTitleColor)

		body := s.strings.GetStringOr(key+"_BODY", "")
		y := top + config.SectionPadding + utils.TextLineHeight(s.titleFace) + 16
		for _, line := range utils.WrapText(body, s.bodyFace, s.bodyWidth(i)) {
			utils.DrawText(screen, line, s.bodyFace, config.SectionPadding, y, landingBodyColor)
			y += config.LineHeight
		}
	}

	if s.widget != nil {
		s.widget.Draw(screen)
	}

	s.drawScrollbar(screen)
}

// bodyWidth 区块正文可用宽度（嵌入小游戏的区块要让出右侧）
func (s *LandingScene) bodyWidth(index int) float64 {
	width := config.GameWindowWidth - config.SectionPadding*2
	if s.widget != nil && index == s.widgetSection {
		width -= s.widget.Options().Width + config.SectionPadding
	}
	return width
}

// drawScrollbar 右侧滚动条
func (s *LandingScene) drawScrollbar(screen *ebiten.Image) {
	maxScroll := s.MaxScroll()
	if maxScroll <= 0 {
		return
	}
	total := maxScroll + config.GameWindowHeight
	barHeight := config.GameWindowHeight * config.GameWindowHeight / total
	barY := (config.GameWindowHeight - barHeight) * s.scrollY / maxScroll
	vector.DrawFilledRect(screen, config.GameWindowWidth-6, float32(barY), 4, float32(barHeight), landingScrollbarColor, false)
}
