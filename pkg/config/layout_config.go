package config

// 布局配置常量
// 所有坐标都是逻辑屏幕坐标，Ebitengine 负责缩放到实际窗口

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 640
)

// Intro Gate 遮罩布局
const (
	// CabinetWidth 柜子宽度（像素）
	CabinetWidth = 120.0

	// CabinetHeight 柜子高度（像素）
	CabinetHeight = 220.0

	// CabinetFloorY 地板 Y 坐标（柜子底边）
	CabinetFloorY = 470.0

	// VeilAlpha 遮罩最大不透明度（0-255）
	VeilAlpha = 200

	// GameOverTextY "GAME OVER" 文字 Y 坐标
	GameOverTextY = 540
)

// Landing 页面布局
const (
	// SectionHeight 每个页面区块的高度
	SectionHeight = 360.0

	// SectionPadding 区块内边距
	SectionPadding = 40.0

	// LineHeight 正文行高
	LineHeight = 20
)

// 字号（goregular 字体）
const (
	// BodyFontSize 正文和提示字号
	BodyFontSize = 14.0

	// ButtonFontSize 按钮文字字号
	ButtonFontSize = 14.0

	// TitleFontSize 区块标题和遮罩标题字号
	TitleFontSize = 26.0

	// GameOverFontSize 开场遮罩 "GAME OVER" 字号
	GameOverFontSize = 56.0

	// WidgetGameOverFontSize 小游戏 "GAME OVER" 字号（弹入时再放大）
	WidgetGameOverFontSize = 24.0
)
