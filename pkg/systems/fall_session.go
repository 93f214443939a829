package systems

import (
	"log"

	"github.com/decker502/fallgate/pkg/components"
	"github.com/decker502/fallgate/pkg/ecs"
	"github.com/decker502/fallgate/pkg/types"
)

// FallHooks 会话生命周期回调，均为可选
type FallHooks struct {
	// OnStart 在 Start 被接受时同步调用，早于阶段切换和计时器调度
	OnStart func()
	// OnPhaseChange 每次阶段变化后调用
	OnPhaseChange func(from, to types.FallPhase)
	// OnImpact 柜子落地（仅 Gate 调度）
	OnImpact func()
	// OnGameOver 进入 GameOver 的瞬间调用，每轮恰好一次
	OnGameOver func()
	// OnUnmount Gate 淡出结束，需要卸载遮罩
	OnUnmount func()
}

// FallSession 一次挂载对应的游玩会话
//
// 职责：
//   - 把 Start/Reset 和计时器到期转换为 types.TransitionFall 事件
//   - 独占该会话的全部计时器，Reset/Close 时一次性取消
//
// 会话本身是一个带 FallSequenceComponent 的实体，计时器以它为 Owner。
type FallSession struct {
	entityManager *ecs.EntityManager
	scheduler     Scheduler
	entityID      ecs.EntityID
	state         *components.FallSequenceComponent
	hooks         FallHooks
	closed        bool
}

// NewFallSession 创建会话（对应一次挂载），初始阶段为 Idle
func NewFallSession(em *ecs.EntityManager, scheduler Scheduler, variant types.FallVariant, hooks FallHooks) *FallSession {
	id := em.CreateEntity()
	state := &components.FallSequenceComponent{
		Variant: variant,
		Phase:   types.PhaseIdle,
		CanPlay: true,
	}
	ecs.AddComponent(em, id, state)

	return &FallSession{
		entityManager: em,
		scheduler:     scheduler,
		entityID:      id,
		state:         state,
		hooks:         hooks,
	}
}

// EntityID 返回会话实体ID
func (s *FallSession) EntityID() ecs.EntityID { return s.entityID }

// Phase 返回当前阶段
func (s *FallSession) Phase() types.FallPhase { return s.state.Phase }

// CanPlay 是否还能开始
func (s *FallSession) CanPlay() bool { return !s.closed && s.state.CanPlay }

// Impacted 柜子是否已落地
func (s *FallSession) Impacted() bool { return s.state.Impacted }

// State 返回只读用途的组件指针（渲染使用）
func (s *FallSession) State() *components.FallSequenceComponent { return s.state }

// Closed 会话是否已销毁
func (s *FallSession) Closed() bool { return s.closed }

// PendingTimers 返回会话持有的待触发计时器数量
func (s *FallSession) PendingTimers() int {
	return s.scheduler.Pending(s.entityID)
}

// Start 开始一轮动画
//
// 返回：
//   - bool: 是否被接受；非 Idle 阶段、Gate 已用掉唯一机会或会话已关闭时返回 false，
//     且不会调度任何计时器
func (s *FallSession) Start() bool {
	if s.closed || !s.state.CanPlay {
		return false
	}
	next, ok := types.TransitionFall(s.state.Variant, s.state.Phase, types.StartEvent())
	if !ok {
		return false
	}

	// 上一轮残留的计时器（理论上为零）在新一轮前清空
	s.scheduler.CancelOwner(s.entityID)

	if s.state.Variant.IsGate() {
		s.state.CanPlay = false
	}
	if s.hooks.OnStart != nil {
		s.hooks.OnStart()
	}

	s.state.Impacted = false
	s.state.SinceStart = 0
	s.setPhase(next)

	for _, scheduled := range types.FallTimeline(s.state.Variant) {
		stage := scheduled.Stage
		s.scheduler.Schedule(s.entityID, string(stage), scheduled.Delay, func() {
			s.onStageElapsed(stage)
		})
	}

	log.Printf("[FallSession] Session %d started", s.entityID)
	return true
}

// Reset 强制回到 Idle 并取消全部计时器，不影响持久化标记
//
// Widget 恢复可玩。Gate 的机会已用掉时不会再有 unmount 计时器，
// 因此直接调用 OnUnmount，由宿主卸载遮罩并释放页面锁。
func (s *FallSession) Reset() {
	if s.closed {
		return
	}
	s.scheduler.CancelOwner(s.entityID)
	s.state.Impacted = false
	s.state.SinceStart = 0

	if next, changed := types.TransitionFall(s.state.Variant, s.state.Phase, types.ResetEvent()); changed {
		s.setPhase(next)
	}
	if !s.state.Variant.IsGate() {
		s.state.CanPlay = true
		return
	}
	if !s.state.CanPlay && s.hooks.OnUnmount != nil {
		log.Printf("[FallSession] Gate session %d reset after start, unmounting", s.entityID)
		s.hooks.OnUnmount()
	}
}

// Close 销毁会话（卸载），可重复调用
func (s *FallSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.scheduler.CancelOwner(s.entityID)
	s.entityManager.DestroyEntity(s.entityID)
	log.Printf("[FallSession] Session %d closed in phase %s", s.entityID, s.state.Phase)
}

// onStageElapsed 计时器回调
func (s *FallSession) onStageElapsed(stage types.FallStage) {
	if s.closed {
		return
	}

	switch stage {
	case types.StageImpact:
		s.state.Impacted = true
		if s.hooks.OnImpact != nil {
			s.hooks.OnImpact()
		}
		return
	case types.StageUnmount:
		if s.hooks.OnUnmount != nil {
			s.hooks.OnUnmount()
		}
		return
	}

	next, changed := types.TransitionFall(s.state.Variant, s.state.Phase, types.ElapsedEvent(stage))
	if !changed {
		log.Printf("[FallSession] Session %d ignored stage %s in phase %s", s.entityID, stage, s.state.Phase)
		return
	}
	s.setPhase(next)

	if next == types.PhaseGameOver {
		s.state.Playthroughs++
		if s.hooks.OnGameOver != nil {
			s.hooks.OnGameOver()
		}
	}
}

// setPhase 切换阶段并重置阶段计时
func (s *FallSession) setPhase(next types.FallPhase) {
	from := s.state.Phase
	s.state.Phase = next
	s.state.PhaseElapsed = 0
	if !s.state.Variant.IsGate() {
		s.state.CanPlay = next == types.PhaseIdle
	}

	log.Printf("[FallSession] Session %d: %s -> %s", s.entityID, from, next)
	if s.hooks.OnPhaseChange != nil {
		s.hooks.OnPhaseChange(from, next)
	}
}
