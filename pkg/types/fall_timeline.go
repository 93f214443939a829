package types

import "time"

// FallStage 计时器阶段标签
type FallStage string

const (
	StageImpact   FallStage = "impact"   // 柜子落地（仅视觉标记，不改变阶段）
	StageGameOver FallStage = "gameover" // Falling → GameOver
	StageDone     FallStage = "done"     // GameOver → Done（仅 Gate）
	StageUnmount  FallStage = "unmount"  // Done 后卸载遮罩（仅 Gate，不改变阶段）
	StageReplay   FallStage = "replay"   // GameOver → Idle（仅允许重玩的 Widget）
)

// 时间线常量，全部相对于 Start 调用时刻
const (
	ImpactDelay   = 850 * time.Millisecond
	GameOverDelay = 1100 * time.Millisecond

	// Gate：GameOver 持续 900ms，Done 淡出 650ms
	GateGameOverHold = 900 * time.Millisecond
	GateFadeOut      = 650 * time.Millisecond
	GateDoneDelay    = GameOverDelay + GateGameOverHold // 2000ms
	GateUnmountDelay = GateDoneDelay + GateFadeOut      // 2650ms

	// Widget：GameOver 画面停留 2500ms 后回到 Idle
	WidgetReplayHold  = 2500 * time.Millisecond
	WidgetReplayDelay = GameOverDelay + WidgetReplayHold // 3600ms
)

// Advances 该阶段到期时是否推进状态机
func (s FallStage) Advances() bool {
	switch s {
	case StageGameOver, StageDone, StageReplay:
		return true
	}
	return false
}

// Target 该阶段推进到的目标阶段（不推进的阶段返回 PhaseIdle 且 Advances 为 false）
func (s FallStage) Target() FallPhase {
	switch s {
	case StageGameOver:
		return PhaseGameOver
	case StageDone:
		return PhaseDone
	}
	return PhaseIdle
}

// ScheduledStage 时间线中的一项
type ScheduledStage struct {
	Stage FallStage
	Delay time.Duration // 相对于 Start 的延迟
}

// FallTimeline 返回某个变体在 Start 时需要调度的全部阶段
// 延迟严格递增，各项独立计时（不链式调度）
func FallTimeline(variant FallVariant) []ScheduledStage {
	if variant.IsGate() {
		return []ScheduledStage{
			{Stage: StageImpact, Delay: ImpactDelay},
			{Stage: StageGameOver, Delay: GameOverDelay},
			{Stage: StageDone, Delay: GateDoneDelay},
			{Stage: StageUnmount, Delay: GateUnmountDelay},
		}
	}

	// Widget 的落地效果由绘制时的已用时间推算，不单独调度
	timeline := []ScheduledStage{
		{Stage: StageGameOver, Delay: GameOverDelay},
	}
	if variant.AllowReplay {
		timeline = append(timeline, ScheduledStage{Stage: StageReplay, Delay: WidgetReplayDelay})
	}
	return timeline
}
