package systems

import (
	"log"
	"sort"
	"time"

	"github.com/decker502/fallgate/pkg/components"
	"github.com/decker502/fallgate/pkg/ecs"
)

// Scheduler 延迟回调调度接口
// FallSession 只依赖此接口，测试中可替换为任意实现
type Scheduler interface {
	// Schedule 在 delay 后调用 callback，返回计时器实体ID
	Schedule(owner ecs.EntityID, name string, delay time.Duration, callback func()) ecs.EntityID
	// CancelOwner 一次性取消 owner 的全部待触发计时器，返回取消数量
	CancelOwner(owner ecs.EntityID) int
	// Pending 返回 owner 当前待触发的计时器数量
	Pending(owner ecs.EntityID) int
}

// TimerSystem 基于 deltaTime 的计时器系统
//
// 每个待触发回调是一个带 TimerComponent 的实体。
// 架构说明：
//   - 只在 Ebitengine 的 Update 线程中运行，不创建 goroutine
//   - 同一帧内到期的回调按延迟升序触发，延迟相同时按调度顺序
//   - 取消立即移除组件，同一帧内后续回调在触发前会重新检查
type TimerSystem struct {
	entityManager *ecs.EntityManager
	nextSequence  uint64
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Schedule 调度一个延迟回调
func (s *TimerSystem) Schedule(owner ecs.EntityID, name string, delay time.Duration, callback func()) ecs.EntityID {
	s.nextSequence++
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Owner:    owner,
		Name:     name,
		Delay:    delay,
		Sequence: s.nextSequence,
		Callback: callback,
	})
	return id
}

// Cancel 取消单个计时器，已触发或不存在时返回 false
func (s *TimerSystem) Cancel(timerID ecs.EntityID) bool {
	if !ecs.HasComponent[*components.TimerComponent](s.entityManager, timerID) {
		return false
	}
	ecs.RemoveComponent[*components.TimerComponent](s.entityManager, timerID)
	s.entityManager.DestroyEntity(timerID)
	return true
}

// CancelOwner 取消 owner 的全部计时器
func (s *TimerSystem) CancelOwner(owner ecs.EntityID) int {
	cancelled := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok || timer.Owner != owner {
			continue
		}
		if s.Cancel(id) {
			cancelled++
		}
	}
	if cancelled > 0 {
		log.Printf("[TimerSystem] Cancelled %d timers of owner %d", cancelled, owner)
	}
	return cancelled
}

// Pending 返回 owner 待触发的计时器数量
func (s *TimerSystem) Pending(owner ecs.EntityID) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		if timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id); ok && timer.Owner == owner {
			count++
		}
	}
	return count
}

// Update 按帧推进所有计时器
// deltaTime 单位为秒（与场景 Update 一致）
func (s *TimerSystem) Update(deltaTime float64) {
	s.Advance(time.Duration(deltaTime * float64(time.Second)))
}

// Advance 推进所有计时器 d，并触发到期回调
// 测试中直接调用此方法作为可控时钟
func (s *TimerSystem) Advance(d time.Duration) {
	type dueTimer struct {
		id    ecs.EntityID
		timer *components.TimerComponent
	}

	due := make([]dueTimer, 0)
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok {
			continue
		}
		timer.Elapsed += d
		if timer.Elapsed >= timer.Delay {
			due = append(due, dueTimer{id: id, timer: timer})
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].timer.Delay != due[j].timer.Delay {
			return due[i].timer.Delay < due[j].timer.Delay
		}
		return due[i].timer.Sequence < due[j].timer.Sequence
	})

	for _, entry := range due {
		// 前面的回调可能已经取消了它
		if !s.Cancel(entry.id) {
			continue
		}
		if entry.timer.Callback != nil {
			entry.timer.Callback()
		}
	}

	s.entityManager.RemoveMarkedEntities()
}
