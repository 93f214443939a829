package utils

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// 默认字体源（goregular，随二进制一起编译，不依赖资源文件）
var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource

	faceMu    sync.Mutex
	faceCache = make(map[float64]*text.GoTextFace)
)

// DefaultFace 返回指定字号的默认字体
// 同一字号只创建一次，绘制时不再分配
//
// 参数:
//   - size: 字号（像素）
//
// 返回:
//   - *text.GoTextFace: 字体；字体源解析失败时为 nil
func DefaultFace(size float64) *text.GoTextFace {
	faceSourceOnce.Do(func() {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[Fonts] Warning: failed to load goregular: %v", err)
			return
		}
		faceSource = source
	})
	if faceSource == nil {
		return nil
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: faceSource, Size: size}
	faceCache[size] = face
	return face
}

// MeasureText 测量单行文字宽度
func MeasureText(textStr string, face *text.GoTextFace) float64 {
	if face == nil || textStr == "" {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}

// TextLineHeight 字体行高
func TextLineHeight(face *text.GoTextFace) float64 {
	if face == nil {
		return 0
	}
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// DrawText 在 (x, y) 处绘制文字（y 为行顶）
func DrawText(screen *ebiten.Image, textStr string, face *text.GoTextFace, x, y float64, clr color.Color) {
	DrawTextScaled(screen, textStr, face, x, y, 1, 1, clr)
}

// DrawCenteredText 以 centerX 为中心绘制文字
func DrawCenteredText(screen *ebiten.Image, textStr string, face *text.GoTextFace, centerX, y float64, clr color.Color) {
	DrawText(screen, textStr, face, centerX-MeasureText(textStr, face)/2, y, clr)
}

// DrawTextScaled 缩放并淡入淡出地绘制文字
//
// 参数:
//   - screen: 目标图像
//   - textStr: 文字
//   - face: 字体（nil 时不绘制）
//   - x, y: 左上角坐标
//   - scale: 缩放倍数（以左上角为原点）
//   - alpha: 不透明度 0-1
//   - clr: 文字颜色
func DrawTextScaled(screen *ebiten.Image, textStr string, face *text.GoTextFace, x, y, scale, alpha float64, clr color.Color) {
	if face == nil || textStr == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = TextLineHeight(face)
	text.Draw(screen, textStr, face, op)
}
