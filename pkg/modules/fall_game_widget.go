package modules

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

// DefaultWidgetButtonLabel 默认按钮文字
const DefaultWidgetButtonLabel = "Kokeile"

// 小游戏内部布局
const (
	widgetButtonWidth      = 96.0
	widgetResetButtonWidth = 124.0
	widgetButtonHeight     = 28.0
	widgetButtonGap        = 8.0
	widgetPadding          = 12.0
	widgetCabinetScale     = 0.6  // 相对于开场遮罩柜子的缩放
	widgetPotOffset        = 0.85 // 花盆距支点的距离（柜高的倍数）

	widgetGameOverPopIn = 0.2 // GAME OVER 弹入时长（秒）
)

var (
	widgetBackgroundColor = color.RGBA{R: 245, G: 240, B: 230, A: 255}
	widgetFloorColor      = color.RGBA{R: 120, G: 110, B: 100, A: 255}
	widgetButtonColor     = color.RGBA{R: 40, G: 90, B: 160, A: 255}
	widgetButtonDisabled  = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	widgetResetColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	widgetGameOverColor   = color.RGBA{R: 190, G: 30, B: 30, A: 255}
	widgetOverlayColor    = color.RGBA{R: 255, G: 255, B: 255, A: 150}
	widgetTextColor       = color.RGBA{R: 40, G: 40, B: 50, A: 255}
	widgetButtonTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// FallGameWidgetOptions 嵌入式小游戏配置
type FallGameWidgetOptions struct {
	// AllowReplay 为 true 时 GameOver 停留 2.5 秒后自动回到 Idle，并显示"再试一次"按钮。
	// 零值为 false；需要默认行为时从 DefaultFallGameWidgetOptions() 开始修改。
	AllowReplay bool
	ButtonLabel string // Idle 时的按钮文字（为空时使用 "Kokeile"）
	OnComplete  func() // 每轮进入 GameOver 时调用一次

	// 小游戏区域
	X, Y, Width, Height float64
}

// DefaultFallGameWidgetOptions 返回默认配置
func DefaultFallGameWidgetOptions() FallGameWidgetOptions {
	return FallGameWidgetOptions{
		AllowReplay: true,
		ButtonLabel: DefaultWidgetButtonLabel,
		Width:       320,
		Height:      240,
	}
}

// FallGameWidget 嵌入式可重玩坠落小游戏
//
// 与开场遮罩共用同一套阶段状态机和计时器，但：
//   - 不读写"已看过"标记
//   - 不碰页面锁
//   - 允许重玩时 GameOver 2.5 秒后自动回到 Idle，否则停在 GameOver 直到 Reset
//
// 主按钮文字随阶段变化（Kokeile / Kaatuu... / Kaatui!）；
// 允许重玩时 GameOver 期间额外显示"Yritä uudelleen"按钮，点击立即 Reset。
type FallGameWidget struct {
	session  *systems.FallSession
	options  FallGameWidgetOptions
	renderer *utils.CabinetRenderer
	strings  *game.SiteStrings

	bodyFace   *text.GoTextFace
	buttonFace *text.GoTextFace
	titleFace  *text.GoTextFace
}

// NewFallGameWidget 创建嵌入式小游戏
//
// 参数:
//   - em: EntityManager 实例（会话实体所在）
//   - scheduler: 计时器调度器（通常是 TimerSystem）
//   - options: 小游戏配置
//   - strings: 页面文案（可为 nil）
func NewFallGameWidget(
	em *ecs.EntityManager,
	scheduler systems.Scheduler,
	options FallGameWidgetOptions,
	strings *game.SiteStrings,
) *FallGameWidget {
	if options.ButtonLabel == "" {
		options.ButtonLabel = DefaultWidgetButtonLabel
	}
	if options.Width <= 0 || options.Height <= 0 {
		defaults := DefaultFallGameWidgetOptions()
		options.Width, options.Height = defaults.Width, defaults.Height
	}

	w := &FallGameWidget{
		options: options,
		strings: strings,
		renderer: utils.NewCabinetRenderer(
			config.CabinetWidth*widgetCabinetScale, config.CabinetHeight*widgetCabinetScale,
		),
		bodyFace:   utils.DefaultFace(config.BodyFontSize - 2),
		buttonFace: utils.DefaultFace(config.ButtonFontSize),
		titleFace:  utils.DefaultFace(config.WidgetGameOverFontSize),
	}
	w.session = systems.NewFallSession(em, scheduler, types.WidgetVariant(options.AllowReplay), systems.FallHooks{
		OnGameOver: func() {
			log.Printf("[FallGameWidget] Playthrough complete")
			if w.options.OnComplete != nil {
				w.options.OnComplete()
			}
		},
	})
	return w
}

// Session 返回底层会话
func (w *FallGameWidget) Session() *systems.FallSession { return w.session }

// Phase 当前阶段
func (w *FallGameWidget) Phase() types.FallPhase { return w.session.Phase() }

// Options 返回当前配置
func (w *FallGameWidget) Options() FallGameWidgetOptions { return w.options }

// SetPosition 设置小游戏左上角位置（页面滚动时由宿主调用）
func (w *FallGameWidget) SetPosition(x, y float64) {
	w.options.X, w.options.Y = x, y
}

// Start 开始一轮（仅 Idle 时有效）
func (w *FallGameWidget) Start() bool {
	return w.session.Start()
}

// Reset 回到 Idle 并取消全部计时器
func (w *FallGameWidget) Reset() {
	w.session.Reset()
}

// Unmount 销毁小游戏（取消全部计时器）
func (w *FallGameWidget) Unmount() {
	w.session.Close()
}

// ButtonLabel 主按钮当前文字
//
// 返回:
//   - string: Idle 时为配置的文字，Falling 时为 "Kaatuu..."，GameOver 时为 "Kaatui!"
func (w *FallGameWidget) ButtonLabel() string {
	switch w.session.Phase() {
	case types.PhaseFalling:
		return w.strings.GetStringOr("WIDGET_BUTTON_FALLING", "Kaatuu...")
	case types.PhaseGameOver, types.PhaseDone:
		return w.strings.GetStringOr("WIDGET_BUTTON_FALLEN", "Kaatui!")
	default:
		return w.options.ButtonLabel
	}
}

// ResetButtonVisible "再试一次"按钮是否显示（允许重玩且处于 GameOver）
func (w *FallGameWidget) ResetButtonVisible() bool {
	return w.options.AllowReplay && w.session.Phase() == types.PhaseGameOver
}

// ButtonBounds 主按钮区域（右下角）
func (w *FallGameWidget) ButtonBounds() (x, y, width, height float64) {
	x = w.options.X + w.options.Width - widgetButtonWidth - widgetPadding
	y = w.options.Y + w.options.Height - widgetButtonHeight - widgetPadding
	return x, y, widgetButtonWidth, widgetButtonHeight
}

// ResetButtonBounds "再试一次"按钮区域（主按钮左侧）
func (w *FallGameWidget) ResetButtonBounds() (x, y, width, height float64) {
	bx, by, _, _ := w.ButtonBounds()
	return bx - widgetButtonGap - widgetResetButtonWidth, by, widgetResetButtonWidth, widgetButtonHeight
}

// HandleClick 处理点击
//
// 返回:
//   - bool: 点击是否生效（开始了一轮，或通过"再试一次"按钮重置）
func (w *FallGameWidget) HandleClick(px, py int) bool {
	if w.ResetButtonVisible() {
		rx, ry, rw, rh := w.ResetButtonBounds()
		if utils.PointInRect(px, py, rx, ry, rw, rh) {
			w.Reset()
			return true
		}
	}

	bx, by, bw, bh := w.ButtonBounds()
	if !utils.PointInRect(px, py, bx, by, bw, bh) {
		return false
	}
	return w.Start()
}

// Update 处理本帧输入
func (w *FallGameWidget) Update(input utils.InputState) {
	if input.JustPressed {
		w.HandleClick(input.X, input.Y)
	}
}

// Draw 绘制小游戏
func (w *FallGameWidget) Draw(screen *ebiten.Image) {
	o := w.options
	state := w.session.State()

	vector.DrawFilledRect(screen, float32(o.X), float32(o.Y), float32(o.Width), float32(o.Height), widgetBackgroundColor, false)

	floorY := o.Y + o.Height - widgetButtonHeight - widgetPadding*2
	vector.StrokeLine(screen, float32(o.X), float32(floorY), float32(o.X+o.Width), float32(floorY), 2, widgetFloorColor, false)

	// 柜子（Widget 不调度落地标记，角度按已用时间推算）
	angle := systems.TiltAngle(state)
	pivotX := o.X + o.Width*0.35
	potX := pivotX + config.CabinetHeight*widgetCabinetScale*widgetPotOffset
	utils.DrawFlowerPot(screen, potX, floorY, widgetCabinetScale, 1)
	w.renderer.Draw(screen, pivotX, floorY, angle, 1)

	if state.Phase == types.PhaseGameOver {
		utils.DrawDebris(screen, potX, floorY-utils.PotHeight*widgetCabinetScale, state.PhaseElapsed, widgetCabinetScale)

		vector.DrawFilledRect(screen, float32(o.X), float32(o.Y), float32(o.Width), float32(floorY-o.Y), widgetOverlayColor, false)
		label := w.strings.GetStringOr("GAME_OVER", "GAME OVER")
		// 标题从 1.5 倍缩小到原大弹入
		popIn := utils.EaseOutCubic(utils.Clamp(state.PhaseElapsed/widgetGameOverPopIn, 0, 1))
		utils.DrawTextScaled(screen, label, w.titleFace, o.X+widgetPadding, o.Y+widgetPadding, utils.Lerp(1.5, 1, popIn), 1, widgetGameOverColor)
		vector.StrokeRect(screen, float32(o.X), float32(o.Y), float32(o.Width), float32(o.Height), 3, widgetGameOverColor, false)

		body := w.strings.GetStringOr("WIDGET_GAMEOVER_BODY", "Kaappi kaatui kukan päälle")
		hintKey, fallback := "WIDGET_DONE_HINT", "Game over."
		if o.AllowReplay {
			hintKey, fallback = "WIDGET_REPLAY_HINT", "..."
		}
		lineY := o.Y + widgetPadding + config.WidgetGameOverFontSize*1.5 + 4
		for _, line := range utils.WrapText(body, w.bodyFace, o.Width-widgetPadding*2) {
			utils.DrawText(screen, line, w.bodyFace, o.X+widgetPadding, lineY, widgetTextColor)
			lineY += utils.TextLineHeight(w.bodyFace)
		}
		utils.DrawText(screen, w.strings.GetStringOr(hintKey, fallback), w.bodyFace, o.X+widgetPadding, lineY, widgetTextColor)
	}

	// 主按钮
	bx, by, bw, bh := w.ButtonBounds()
	buttonColor := widgetButtonColor
	if !w.session.CanPlay() {
		buttonColor = widgetButtonDisabled
	}
	w.drawButton(screen, w.ButtonLabel(), bx, by, bw, bh, buttonColor, widgetButtonTextColor)

	if w.ResetButtonVisible() {
		rx, ry, rw, rh := w.ResetButtonBounds()
		w.drawButton(screen, w.strings.GetStringOr("WIDGET_RESET", "Yritä uudelleen"), rx, ry, rw, rh, widgetResetColor, widgetButtonColor)
		vector.StrokeRect(screen, float32(rx), float32(ry), float32(rw), float32(rh), 1, widgetButtonColor, false)
	}
}

// drawButton 绘制带居中文字的矩形按钮
func (w *FallGameWidget) drawButton(screen *ebiten.Image, label string, x, y, width, height float64, fill, textColor color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), fill, false)
	textY := y + (height-utils.TextLineHeight(w.buttonFace))/2
	utils.DrawCenteredText(screen, label, w.buttonFace, x+width/2, textY, textColor)
}
