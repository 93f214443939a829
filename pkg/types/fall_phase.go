// Package types 定义共享的基础类型
package types

// FallPhase 坠落动画的阶段
//
// 一次性开场（Gate）：Idle → Falling → GameOver → Done →（卸载）
// 可重玩小游戏（Widget）：Idle → Falling → GameOver → Idle
type FallPhase int

const (
	PhaseIdle     FallPhase = iota // 等待玩家操作
	PhaseFalling                   // 柜子正在倒下
	PhaseGameOver                  // 强制失败画面
	PhaseDone                      // 淡出中（仅 Gate）
)

// String 返回阶段名称
func (p FallPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFalling:
		return "falling"
	case PhaseGameOver:
		return "gameover"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// FallVariant 控制同一套状态机挂载哪些可选行为
type FallVariant struct {
	HasPersistence bool // 开始时写入"已玩过"标记
	HasPageLock    bool // 显示期间锁定页面滚动
	AllowReplay    bool // GameOver 后自动回到 Idle
}

// GateVariant 一次性开场遮罩的配置
func GateVariant() FallVariant {
	return FallVariant{HasPersistence: true, HasPageLock: true}
}

// WidgetVariant 嵌入式小游戏的配置
func WidgetVariant(allowReplay bool) FallVariant {
	return FallVariant{AllowReplay: allowReplay}
}

// IsGate 是否为一次性开场（拥有终态 Done）
func (v FallVariant) IsGate() bool {
	return v.HasPersistence || v.HasPageLock
}

// FallEventKind 驱动状态机的事件类型
type FallEventKind int

const (
	EventStart        FallEventKind = iota // 玩家触发开始
	EventTimerElapsed                      // 计时器到期
	EventReset                             // 外部重置
)

// FallEvent 状态机事件
// TimerElapsed 事件携带调度它的阶段标签
type FallEvent struct {
	Kind  FallEventKind
	Stage FallStage
}

// StartEvent 构造开始事件
func StartEvent() FallEvent { return FallEvent{Kind: EventStart} }

// ResetEvent 构造重置事件
func ResetEvent() FallEvent { return FallEvent{Kind: EventReset} }

// ElapsedEvent 构造计时器到期事件
func ElapsedEvent(stage FallStage) FallEvent {
	return FallEvent{Kind: EventTimerElapsed, Stage: stage}
}

// TransitionFall 纯函数：根据当前阶段和事件计算下一阶段
//
// 返回：
//   - FallPhase: 下一阶段（未变化时等于 current）
//   - bool: 阶段是否发生变化
//
// 规则：
//   - Start 仅在 Idle 时有效，其余阶段为空操作
//   - TimerElapsed 只沿固定顺序前进一步，且阶段标签必须与当前阶段的出边匹配
//   - Reset 无条件回到 Idle
func TransitionFall(variant FallVariant, current FallPhase, event FallEvent) (FallPhase, bool) {
	switch event.Kind {
	case EventStart:
		if current == PhaseIdle {
			return PhaseFalling, true
		}
		return current, false

	case EventReset:
		return PhaseIdle, current != PhaseIdle

	case EventTimerElapsed:
		next, ok := nextPhase(variant, current)
		if !ok || event.Stage.Target() != next || !event.Stage.Advances() {
			return current, false
		}
		return next, true
	}
	return current, false
}

// nextPhase 返回固定顺序中的下一阶段
func nextPhase(variant FallVariant, current FallPhase) (FallPhase, bool) {
	switch current {
	case PhaseFalling:
		return PhaseGameOver, true
	case PhaseGameOver:
		if variant.IsGate() {
			return PhaseDone, true
		}
		if variant.AllowReplay {
			return PhaseIdle, true
		}
	}
	// Idle 只能由 Start 离开；Done 是终态
	return current, false
}
