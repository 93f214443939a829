package components

import (
	"time"

	"github.com/decker502/fallgate/pkg/ecs"
)

// TimerComponent 一个待触发的延迟回调
// 由 TimerSystem 统一推进和触发，注意：组件仅存储数据
//
// 所有计时都从调度时刻独立累积（Elapsed），不会在前一个回调里链式调度下一个，
// 因此帧时间抖动不会改变同一会话内回调的先后顺序。
type TimerComponent struct {
	Owner    ecs.EntityID  // 拥有该计时器的会话实体
	Name     string        // 计时器名称，如 "gameover"
	Delay    time.Duration // 目标延迟
	Elapsed  time.Duration // 已累积时间
	Sequence uint64        // 调度序号，同一帧到期时按延迟、再按序号排序
	Callback func()        // 到期回调
}
