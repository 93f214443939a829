package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 柜子配色
var (
	cabinetBodyColor   = color.RGBA{R: 139, G: 94, B: 60, A: 255}
	cabinetDoorColor   = color.RGBA{R: 166, G: 118, B: 79, A: 255}
	cabinetHandleColor = color.RGBA{R: 230, G: 200, B: 120, A: 255}
	cabinetEdgeColor   = color.RGBA{R: 70, G: 45, B: 28, A: 255}
)

// CabinetRenderer 柜子渲染器
// 柜子贴图只生成一次，倾倒时以右下角为支点旋转
type CabinetRenderer struct {
	width, height float64
	image         *ebiten.Image
}

// NewCabinetRenderer 创建指定尺寸的柜子渲染器
// 贴图延迟到第一次 Draw 时生成
func NewCabinetRenderer(width, height float64) *CabinetRenderer {
	return &CabinetRenderer{width: width, height: height}
}

// ensureImage 生成柜子贴图（两扇门 + 把手）
func (r *CabinetRenderer) ensureImage() *ebiten.Image {
	if r.image != nil {
		return r.image
	}

	w, h := float32(r.width), float32(r.height)
	img := ebiten.NewImage(int(r.width), int(r.height))
	vector.DrawFilledRect(img, 0, 0, w, h, cabinetBodyColor, false)

	inset := float32(6)
	doorW := (w - inset*3) / 2
	doorH := h - inset*2
	vector.DrawFilledRect(img, inset, inset, doorW, doorH, cabinetDoorColor, false)
	vector.DrawFilledRect(img, inset*2+doorW, inset, doorW, doorH, cabinetDoorColor, false)

	handleY := h / 2
	vector.DrawFilledRect(img, inset+doorW-8, handleY-10, 4, 20, cabinetHandleColor, false)
	vector.DrawFilledRect(img, inset*2+doorW+4, handleY-10, 4, 20, cabinetHandleColor, false)
	vector.StrokeRect(img, 0, 0, w, h, 2, cabinetEdgeColor, false)

	r.image = img
	return img
}

// Draw 绘制柜子
//
// 参数：
//   - screen: 目标图像
//   - pivotX, floorY: 支点（柜子右下角）的屏幕坐标
//   - angle: 倾倒角度（弧度，0 竖直，π/2 平躺）
//   - alpha: 不透明度 0-1
func (r *CabinetRenderer) Draw(screen *ebiten.Image, pivotX, floorY, angle, alpha float64) {
	img := r.ensureImage()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-r.width, -r.height)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(pivotX, floorY)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// 花盆和碎片配色
var (
	potColor        = color.RGBA{R: 194, G: 65, B: 12, A: 255}
	potRimColor     = color.RGBA{R: 154, G: 52, B: 18, A: 255}
	leafColor       = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	impactColor     = color.RGBA{R: 255, G: 230, B: 160, A: 255}
	debrisDirtColor = color.RGBA{R: 133, G: 77, B: 14, A: 255}
)

// 花盆尺寸（缩放前）
const (
	PotWidth  = 50.0
	PotHeight = 45.0

	leafWidth = 10.0
)

// DrawFlowerPot 绘制柜子倒向的花盆（三片叶子）
//
// 参数：
//   - screen: 目标图像
//   - centerX, floorY: 花盆底边中心
//   - scale: 缩放（小游戏里比遮罩小）
//   - alpha: 不透明度 0-1
func DrawFlowerPot(screen *ebiten.Image, centerX, floorY, scale, alpha float64) {
	w, h := PotWidth*scale, PotHeight*scale
	top := floorY - h

	// 叶子：左右两片斜出，中间一片最高
	leaves := []struct{ dx, height, lean float64 }{
		{-12, 32, -10},
		{0, 40, 0},
		{12, 32, 10},
	}
	for _, leaf := range leaves {
		baseX := centerX + leaf.dx*scale
		tipX := baseX + leaf.lean*scale
		tipY := top - leaf.height*scale
		vector.StrokeLine(screen, float32(baseX), float32(top), float32(tipX), float32(tipY),
			float32(leafWidth*scale), withAlpha(leafColor, alpha), true)
	}

	// 盆身为上宽下窄的梯形，用两层矩形近似
	vector.DrawFilledRect(screen, float32(centerX-w/2), float32(top), float32(w), float32(h*0.25), withAlpha(potRimColor, alpha), false)
	vector.DrawFilledRect(screen, float32(centerX-w*0.4), float32(top+h*0.25), float32(w*0.8), float32(h*0.75), withAlpha(potColor, alpha), false)
}

// DebrisDuration 碎片飞散时长（秒）
const DebrisDuration = 0.8

// debrisParticle 一粒碎片：延迟、终点偏移、大小和颜色
type debrisParticle struct {
	delay float64
	flyX  float64
	flyY  float64
	size  float64
	color color.RGBA
}

var debrisParticles = []debrisParticle{
	{delay: 0, flyX: -30, flyY: -60, size: 8, color: leafColor},
	{delay: 0.05, flyX: 20, flyY: -80, size: 8, color: potColor},
	{delay: 0.1, flyX: 40, flyY: -50, size: 8, color: leafColor},
	{delay: 0.075, flyX: -10, flyY: -70, size: 6, color: debrisDirtColor},
}

// DebrisCount 碎片数量
func DebrisCount() int { return len(debrisParticles) }

// DebrisOffset 第 i 粒碎片在撞击后 elapsed 秒时的偏移和不透明度
//
// 返回:
//   - dx, dy: 相对撞击点的偏移（未缩放）
//   - alpha: 不透明度，飞完后为 0
func DebrisOffset(i int, elapsed float64) (dx, dy, alpha float64) {
	p := debrisParticles[i]
	t := Clamp((elapsed-p.delay)/DebrisDuration, 0, 1)
	eased := EaseOutCubic(t)
	return p.flyX * eased, p.flyY * eased, 1 - t
}

// DrawDebris 绘制撞击闪光和飞散的碎片
//
// 参数：
//   - screen: 目标图像
//   - x, y: 撞击点
//   - elapsed: 撞击后经过的时间（秒）
//   - scale: 缩放
func DrawDebris(screen *ebiten.Image, x, y, elapsed, scale float64) {
	flash := 1 - Clamp(elapsed/0.3, 0, 1)
	if flash > 0 {
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(28*scale*(1.5-flash/2)), withAlpha(impactColor, flash*0.8), true)
	}

	for i, p := range debrisParticles {
		dx, dy, alpha := DebrisOffset(i, elapsed)
		if alpha <= 0 {
			continue
		}
		size := p.size * scale
		vector.DrawFilledRect(screen, float32(x+dx*scale-size/2), float32(y+dy*scale-size/2),
			float32(size), float32(size), withAlpha(p.color, alpha), false)
	}
}

// withAlpha 按不透明度缩放颜色（预乘 alpha）
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
