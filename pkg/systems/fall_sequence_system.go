package systems

import (
	"math"

	"github.com/decker502/fallgate/pkg/components"
	"github.com/decker502/fallgate/pkg/ecs"
	"github.com/decker502/fallgate/pkg/types"
	"github.com/decker502/fallgate/pkg/utils"
)

// 坠落动画视觉参数
const (
	// 柜子从竖直倒到水平（90度）所用时间等于落地标记时间
	FallTiltDuration = 0.85

	// 落地后的屏幕抖动
	ScreenShakeAmplitude = 5.0  // 振幅（像素）
	ScreenShakeFrequency = 30.0 // 频率（Hz）
	ScreenShakeDuration  = 0.25 // 持续时间（秒）
)

// FallSequenceSystem 坠落动画系统
//
// 只负责推进渲染用的时间字段，不改变阶段（阶段由 FallSession 的计时器驱动）。
// 通过查询 FallSequenceComponent 驱动，遵循 ECS 零耦合原则。
type FallSequenceSystem struct {
	entityManager *ecs.EntityManager
}

// NewFallSequenceSystem 创建坠落动画系统
func NewFallSequenceSystem(em *ecs.EntityManager) *FallSequenceSystem {
	return &FallSequenceSystem{entityManager: em}
}

// Update 累积各会话的阶段时间
func (s *FallSequenceSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FallSequenceComponent](s.entityManager) {
		state, ok := ecs.GetComponent[*components.FallSequenceComponent](s.entityManager, id)
		if !ok || state.Phase == types.PhaseIdle {
			continue
		}
		state.PhaseElapsed += deltaTime
		state.SinceStart += deltaTime
	}
}

// TiltAngle 根据会话状态计算柜子倾倒角度（弧度，0 为竖直，π/2 为倒地）
func TiltAngle(state *components.FallSequenceComponent) float64 {
	switch state.Phase {
	case types.PhaseIdle:
		return 0
	case types.PhaseFalling:
		if state.Impacted {
			return math.Pi / 2
		}
		progress := utils.Clamp(state.SinceStart/FallTiltDuration, 0, 1)
		return utils.EaseInQuad(progress) * math.Pi / 2
	default:
		return math.Pi / 2
	}
}

// ShakeOffset 落地后的屏幕抖动偏移（像素）
func ShakeOffset(state *components.FallSequenceComponent) float64 {
	if !state.Impacted {
		return 0
	}
	t := state.SinceStart - FallTiltDuration
	if t < 0 || t > ScreenShakeDuration {
		return 0
	}
	decay := 1 - t/ScreenShakeDuration
	return ScreenShakeAmplitude * decay * math.Sin(2*math.Pi*ScreenShakeFrequency*t)
}

// FadeAlpha Gate 遮罩的不透明度（Done 阶段线性淡出）
func FadeAlpha(state *components.FallSequenceComponent) float64 {
	if state.Phase != types.PhaseDone {
		return 1
	}
	fade := types.GateFadeOut.Seconds()
	return utils.Clamp(1-state.PhaseElapsed/fade, 0, 1)
}
