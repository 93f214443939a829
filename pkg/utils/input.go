// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 用于统一处理鼠标、触摸和键盘输入
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 点击/触摸位置
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
	// 确认键（空格/回车）是否刚刚按下
	ConfirmPressed bool
	// 本帧滚动量（像素，向下为正）
	ScrollDelta float64
}

// 键盘滚动步长（像素）
const keyScrollStep = 40.0

// 鼠标滚轮每格对应的像素
const wheelScrollStep = 48.0

// GetInputState 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetInputState() InputState {
	state := InputState{
		ConfirmPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		ScrollDelta:    scrollDelta(),
	}

	// 首先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}

	// 检查是否有活动的触摸（用于悬停检测）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.JustPressed = true
	}
	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// scrollDelta 汇总滚轮和方向键的滚动量
func scrollDelta() float64 {
	_, wheelY := ebiten.Wheel()
	delta := -wheelY * wheelScrollStep

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		delta += keyScrollStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		delta -= keyScrollStep
	}
	return delta
}

// PointInRect 检查点是否位于矩形内
func PointInRect(px, py int, x, y, width, height float64) bool {
	fx, fy := float64(px), float64(py)
	return fx >= x && fx <= x+width && fy >= y && fy <= y+height
}
