package components

import "github.com/decker502/fallgate/pkg/types"

// FallSequenceComponent 坠落动画会话组件（每次挂载一个）
//
// 阶段状态机：
//
// Gate:   Idle → Falling → GameOver → Done →（卸载）
// Widget: Idle → Falling → GameOver → Idle（允许重玩时）
//
// 阶段推进只由 FallSession 通过 types.TransitionFall 完成，
// 系统和渲染代码只读取这里的字段。
type FallSequenceComponent struct {
	Variant types.FallVariant
	Phase   types.FallPhase

	// CanPlay Gate：创建时为 true，Start 被接受后永久为 false
	CanPlay bool

	// Impacted 柜子是否已落地（850ms 视觉标记）
	Impacted bool

	// PhaseElapsed 进入当前阶段后的累计时间（秒），供渲染插值使用
	PhaseElapsed float64

	// SinceStart 本轮 Start 之后的累计时间（秒）
	SinceStart float64

	// Playthroughs 已完成的游玩次数（到达 GameOver 的次数）
	Playthroughs int
}
