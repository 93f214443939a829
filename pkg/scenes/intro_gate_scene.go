package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/fallgate/pkg/config"
	"github.com/decker502/fallgate/pkg/ecs"
	"github.com/decker502/fallgate/pkg/game"
	"github.com/decker502/fallgate/pkg/systems"
	"github.com/decker502/fallgate/pkg/types"
	"github.com/decker502/fallgate/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// introGateLockOwner 页面锁所有者名
const introGateLockOwner = "intro-gate"

// IntroGateOptions 开场遮罩配置
type IntroGateOptions struct {
	// Scope "已看过"标记的作用域（默认 session）
	Scope game.StorageScope

	// 以下依赖为空时从 game.GetGameState() 获取
	Store    game.KVStore
	PageLock *game.PageLock

	// SceneManager 非空时，卸载后把控制权交给子场景
	SceneManager *game.SceneManager

	// Strings 页面文案（可为 nil）
	Strings *game.SiteStrings
}

// IntroGateScene 一次性开场遮罩
//
// 职责：
//   - 挂载时读取"已看过"标记，决定是否显示遮罩
//   - 显示期间持有页面锁（背景页面不能滚动）
//   - 玩家唯一一次点击触发强制失败动画，开始瞬间写入标记
//   - Done 淡出后卸载自身，释放页面锁
//
// 子场景始终在遮罩下方更新和绘制；遮罩卸载后本场景变为透明包装。
type IntroGateScene struct {
	child        game.Scene
	sceneManager *game.SceneManager
	strings      *game.SiteStrings

	entityManager  *ecs.EntityManager
	timerSystem    *systems.TimerSystem
	sequenceSystem *systems.FallSequenceSystem

	flag       *game.IntroFlag
	lockHandle *game.LockHandle
	session    *systems.FallSession
	renderer   *utils.CabinetRenderer

	// 背景页面模糊用的离屏图像（首次绘制时创建）
	siteImage *ebiten.Image
	blurImage *ebiten.Image

	titleFace    *text.GoTextFace
	bodyFace     *text.GoTextFace
	gameOverFace *text.GoTextFace

	visible       bool // 遮罩是否显示
	unmounted     bool // 遮罩是否已卸载
	skipped       bool // 挂载时发现已玩过，从未显示
	childReleased bool // 子场景已随本场景卸载
}

// NewIntroGateScene 创建开场遮罩并立即做出显示决定
//
// 参数:
//   - child: 遮罩下方的页面
//   - options: 遮罩配置
//
// 返回:
//   - *IntroGateScene: 已挂载的遮罩场景
func NewIntroGateScene(child game.Scene, options IntroGateOptions) *IntroGateScene {
	if options.Store == nil || options.PageLock == nil {
		gs := game.GetGameState()
		if options.Store == nil {
			options.Store = gs.StoreFor(options.Scope)
		}
		if options.PageLock == nil {
			options.PageLock = gs.GetPageLock()
		}
	}

	em := ecs.NewEntityManager()
	s := &IntroGateScene{
		child:          child,
		sceneManager:   options.SceneManager,
		strings:        options.Strings,
		entityManager:  em,
		timerSystem:    systems.NewTimerSystem(em),
		sequenceSystem: systems.NewFallSequenceSystem(em),
		flag:           game.NewIntroFlag(options.Store),
		renderer:       utils.NewCabinetRenderer(config.CabinetWidth, config.CabinetHeight),
		titleFace:      utils.DefaultFace(config.TitleFontSize),
		bodyFace:       utils.DefaultFace(config.BodyFontSize),
		gameOverFace:   utils.DefaultFace(config.GameOverFontSize),
	}

	s.session = systems.NewFallSession(em, s.timerSystem, types.GateVariant(), systems.FallHooks{
		OnStart:   s.flag.MarkPlayed,
		OnUnmount: s.dismiss,
	})

	if s.flag.Played() {
		// 已玩过：不显示遮罩，不碰页面锁，概念上直接进入 Done
		log.Printf("[IntroGate] Intro already played, skipping overlay")
		s.session.Close()
		s.unmounted = true
		s.skipped = true
		return s
	}

	handle, err := options.PageLock.Acquire(introGateLockOwner)
	if err != nil {
		log.Printf("[IntroGate] Warning: %v (showing overlay without scroll lock)", err)
	}
	s.lockHandle = handle
	s.visible = true
	log.Printf("[IntroGate] Overlay shown (scope=%s)", options.Scope)
	return s
}

// Visible 遮罩是否显示
func (s *IntroGateScene) Visible() bool { return s.visible }

// Unmounted 遮罩是否已卸载
func (s *IntroGateScene) Unmounted() bool { return s.unmounted }

// Phase 当前阶段；因已玩过而跳过时为 Done
func (s *IntroGateScene) Phase() types.FallPhase {
	if s.skipped {
		return types.PhaseDone
	}
	return s.session.Phase()
}

// Skipped 挂载时是否因已玩过而跳过
func (s *IntroGateScene) Skipped() bool { return s.skipped }

// Session 返回底层会话
func (s *IntroGateScene) Session() *systems.FallSession { return s.session }

// Child 返回被包装的子场景
func (s *IntroGateScene) Child() game.Scene { return s.child }

// Start 玩家交互：开始强制失败动画（只有第一次有效）
func (s *IntroGateScene) Start() bool {
	if !s.visible {
		return false
	}
	return s.session.Start()
}

// Advance 以固定时长推进遮罩的计时器（测试和无窗口验证使用）
func (s *IntroGateScene) Advance(deltaTime float64) {
	if s.unmounted {
		return
	}
	s.timerSystem.Update(deltaTime)
	s.sequenceSystem.Update(deltaTime)
}

// Update 更新遮罩和子场景
func (s *IntroGateScene) Update(deltaTime float64) {
	if !s.unmounted {
		input := utils.GetInputState()
		if input.JustPressed || input.ConfirmPressed {
			s.Start()
		}
		s.Advance(deltaTime)
	}

	if s.child != nil {
		s.child.Update(deltaTime)
	}
}

// Unmount 从场景树移除遮罩场景（SceneManager 切换场景、应用退出或宿主直接调用），可重复调用
//
// 遮罩仍在显示时先卸载遮罩。子场景仍是 SceneManager 的当前场景时继续运行，
// 否则随本场景一起卸载。
func (s *IntroGateScene) Unmount() {
	s.dismiss()

	if s.child == nil || s.childReleased {
		return
	}
	if s.sceneManager != nil && s.sceneManager.GetCurrentScene() == s.child {
		return
	}
	s.childReleased = true
	if u, ok := s.child.(game.Unmountable); ok {
		u.Unmount()
	}
}

// dismiss 卸载遮罩：取消计时器并释放页面锁（可重复调用）
// 由 unmount 计时器或会话 Reset 触发；遮罩仍是当前场景时把控制权交给子场景
func (s *IntroGateScene) dismiss() {
	if s.unmounted {
		return
	}
	s.unmounted = true
	s.visible = false
	s.session.Close()
	s.entityManager.RemoveMarkedEntities()
	s.lockHandle.Release()
	s.deallocateImages()
	log.Printf("[IntroGate] Overlay unmounted")

	if s.sceneManager != nil && s.child != nil && s.sceneManager.GetCurrentScene() == game.Scene(s) {
		s.sceneManager.Handover(s.child)
	}
}

// ButtonLabel 遮罩按钮文字：还有机会时为 "Kokeile"，用掉后为 "Käytetty"
func (s *IntroGateScene) ButtonLabel() string {
	if s.visible && s.session.CanPlay() {
		return s.strings.GetStringOr("INTRO_BUTTON", "Kokeile")
	}
	return s.strings.GetStringOr("INTRO_BUTTON_USED", "Käytetty")
}

// LockReleased 页面锁是否已释放（或从未获取）
func (s *IntroGateScene) LockReleased() bool {
	return s.lockHandle.Released()
}

var (
	gateVeilColor     = color.RGBA{R: 10, G: 10, B: 20, A: config.VeilAlpha}
	gateCardColor     = color.RGBA{R: 255, G: 255, B: 255, A: 235}
	gateFloorColor    = color.RGBA{R: 163, G: 163, B: 163, A: 255}
	gateTextColor     = color.RGBA{R: 30, G: 30, B: 40, A: 255}
	gateMutedColor    = color.RGBA{R: 100, G: 100, B: 110, A: 255}
	gateButtonColor   = color.RGBA{R: 40, G: 90, B: 160, A: 255}
	gateButtonUsed    = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	gateButtonText    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gateGameOverColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

// 遮罩卡片布局
const (
	gateCardMargin    = 60.0
	gateTitleY        = 80.0
	gateButtonWidth   = 160.0
	gateButtonHeight  = 36.0
	gateBlurDownscale = 4 // 背景缩小倍数，放大回来即近似模糊
	gatePotOffset     = 0.85
)

// ButtonBounds 遮罩按钮区域（GameOver 前显示）
func (s *IntroGateScene) ButtonBounds() (x, y, width, height float64) {
	x = float64(config.GameWindowWidth)/2 - gateButtonWidth/2
	return x, config.GameOverTextY - 20, gateButtonWidth, gateButtonHeight
}

// Draw 绘制子场景（遮罩显示时模糊），然后绘制遮罩
func (s *IntroGateScene) Draw(screen *ebiten.Image) {
	if !s.visible {
		if s.child != nil {
			s.child.Draw(screen)
		}
		return
	}

	state := s.session.State()
	alpha := systems.FadeAlpha(state)
	s.drawBlurredChild(screen, alpha)

	width := float32(config.GameWindowWidth)
	height := float32(config.GameWindowHeight)

	veil := gateVeilColor
	veil.A = uint8(float64(veil.A) * alpha)
	vector.DrawFilledRect(screen, 0, 0, width, height, veil, false)

	card := gateCardColor
	card.A = uint8(float64(card.A) * alpha)
	vector.DrawFilledRect(screen, gateCardMargin, gateCardMargin/2,
		width-gateCardMargin*2, height-gateCardMargin, card, false)

	centerX := float64(config.GameWindowWidth) / 2
	title := s.strings.GetStringOr("INTRO_TITLE", `Pikatesti: "Kestääkö asennus?"`)
	subtitle := s.strings.GetStringOr("INTRO_SUBTITLE", "Saat yhden yrityksen.")
	s.drawCentered(screen, title, s.titleFace, centerX, gateTitleY, alpha, gateTextColor)
	s.drawCentered(screen, subtitle, s.bodyFace, centerX, gateTitleY+config.TitleFontSize+12, alpha, gateMutedColor)

	shake := systems.ShakeOffset(state)
	floorY := config.CabinetFloorY + shake
	vector.StrokeLine(screen, gateCardMargin, float32(floorY), width-gateCardMargin, float32(floorY), 4, gateFloorColor, false)

	pivotX := centerX + config.CabinetWidth/2 + shake
	potX := pivotX + config.CabinetHeight*gatePotOffset
	utils.DrawFlowerPot(screen, potX, floorY, 1, alpha)
	s.renderer.Draw(screen, pivotX, floorY, systems.TiltAngle(state), alpha)

	switch state.Phase {
	case types.PhaseIdle, types.PhaseFalling:
		s.drawButton(screen, alpha)
		_, by, _, bh := s.ButtonBounds()
		lineY := by + bh + 8
		s.drawCentered(screen, s.strings.GetStringOr("INTRO_HINT", ""), s.bodyFace, centerX, lineY, alpha, gateMutedColor)
		if state.Phase == types.PhaseIdle {
			promptKey := "INTRO_PROMPT"
			if utils.IsMobile() {
				promptKey = "INTRO_PROMPT_TOUCH"
			}
			prompt := s.strings.GetStringOr(promptKey, "Click to start")
			s.drawCentered(screen, prompt, s.bodyFace, centerX, lineY+utils.TextLineHeight(s.bodyFace), alpha, gateMutedColor)
		}
	case types.PhaseGameOver, types.PhaseDone:
		if state.Phase == types.PhaseGameOver {
			utils.DrawDebris(screen, potX, floorY-utils.PotHeight, state.PhaseElapsed, 1)
		}
		s.drawGameOver(screen, centerX, alpha)
	}
}

// drawBlurredChild 绘制子场景；遮罩显示时叠加一层缩小再放大的模糊副本
func (s *IntroGateScene) drawBlurredChild(screen *ebiten.Image, alpha float64) {
	if s.child == nil {
		return
	}
	if s.siteImage == nil {
		s.siteImage = ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
		s.blurImage = ebiten.NewImage(config.GameWindowWidth/gateBlurDownscale, config.GameWindowHeight/gateBlurDownscale)
	}

	s.siteImage.Clear()
	s.child.Draw(s.siteImage)
	screen.DrawImage(s.siteImage, nil)

	s.blurImage.Clear()
	down := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	down.GeoM.Scale(1.0/gateBlurDownscale, 1.0/gateBlurDownscale)
	s.blurImage.DrawImage(s.siteImage, down)

	up := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	up.GeoM.Scale(gateBlurDownscale, gateBlurDownscale)
	up.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(s.blurImage, up)
}

// deallocateImages 释放离屏图像
func (s *IntroGateScene) deallocateImages() {
	if s.siteImage != nil {
		s.siteImage.Deallocate()
		s.blurImage.Deallocate()
		s.siteImage, s.blurImage = nil, nil
	}
}

// drawButton 绘制 "Kokeile" / "Käytetty" 按钮
func (s *IntroGateScene) drawButton(screen *ebiten.Image, alpha float64) {
	x, y, w, h := s.ButtonBounds()
	fill := gateButtonColor
	if !s.session.CanPlay() {
		fill = gateButtonUsed
	}
	fill.A = uint8(float64(fill.A) * alpha)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), fill, false)

	textY := y + (h-utils.TextLineHeight(s.bodyFace))/2
	s.drawCentered(screen, s.ButtonLabel(), s.bodyFace, x+w/2, textY, alpha, gateButtonText)
}

// drawGameOver 绘制 "GAME OVER" 和说明文字
func (s *IntroGateScene) drawGameOver(screen *ebiten.Image, centerX, alpha float64) {
	label := s.strings.GetStringOr("GAME_OVER", "GAME OVER")
	labelWidth := utils.MeasureText(label, s.gameOverFace)
	labelHeight := utils.TextLineHeight(s.gameOverFace)
	top := config.CabinetFloorY + 16.0

	box := gateGameOverColor
	box.A = uint8(160 * alpha)
	vector.DrawFilledRect(screen, float32(centerX-labelWidth/2-12), float32(top),
		float32(labelWidth+24), float32(labelHeight), box, false)
	utils.DrawTextScaled(screen, label, s.gameOverFace, centerX-labelWidth/2, top, 1, alpha, gateButtonText)

	lineY := top + labelHeight + 6
	body := s.strings.GetStringOr("INTRO_GAMEOVER_BODY", "Kaappi kaatui kukan päälle.")
	redirect := s.strings.GetStringOr("INTRO_REDIRECT", "Siirrytään sivulle…")
	s.drawCentered(screen, body, s.bodyFace, centerX, lineY, alpha, gateTextColor)
	s.drawCentered(screen, redirect, s.bodyFace, centerX, lineY+utils.TextLineHeight(s.bodyFace), alpha, gateMutedColor)
}

// drawCentered 以 centerX 为中心绘制一行文字
func (s *IntroGateScene) drawCentered(screen *ebiten.Image, line string, face *text.GoTextFace, centerX, y, alpha float64, clr color.Color) {
	utils.DrawTextScaled(screen, line, face, centerX-utils.MeasureText(line, face)/2, y, 1, alpha, clr)
}
