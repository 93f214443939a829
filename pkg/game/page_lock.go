package game

import (
	"errors"
	"fmt"
	"log"
)

// ErrPageLockHeld 页面锁已被其他所有者持有
var ErrPageLockHeld = errors.New("page lock held by another owner")

// PageLock 进程级的页面滚动锁
//
// 单一所有者：同一时间只有一个 LockHandle 有效。
// 页面（LandingScene）每帧查询 Locked()，锁定期间忽略滚动输入。
type PageLock struct {
	owner    string
	handle   *LockHandle
	acquired int // 累计获取次数
	released int // 累计释放次数
}

// NewPageLock 创建页面锁
func NewPageLock() *PageLock {
	return &PageLock{}
}

// LockHandle 页面锁的持有凭证
// Release 可重复调用，只有第一次生效
type LockHandle struct {
	lock     *PageLock
	owner    string
	released bool
}

// Acquire 获取页面锁
//
// 同一所有者重复获取返回同一个 handle（幂等）。
//
// 返回：
//   - *LockHandle: 持有凭证
//   - error: 被其他所有者持有时返回 ErrPageLockHeld
func (l *PageLock) Acquire(owner string) (*LockHandle, error) {
	if l.handle != nil {
		if l.owner == owner {
			return l.handle, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrPageLockHeld, l.owner)
	}

	l.owner = owner
	l.handle = &LockHandle{lock: l, owner: owner}
	l.acquired++
	log.Printf("[PageLock] Scroll locked by %s", owner)
	return l.handle, nil
}

// Locked 当前是否锁定
func (l *PageLock) Locked() bool {
	return l.handle != nil
}

// Owner 当前所有者，未锁定时为空
func (l *PageLock) Owner() string {
	return l.owner
}

// AcquireCount 累计获取次数
func (l *PageLock) AcquireCount() int {
	return l.acquired
}

// ReleaseCount 累计释放次数
func (l *PageLock) ReleaseCount() int {
	return l.released
}

// Release 释放页面锁（幂等）
func (h *LockHandle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true

	l := h.lock
	if l.handle != h {
		return
	}
	l.handle = nil
	l.owner = ""
	l.released++
	log.Printf("[PageLock] Scroll restored by %s", h.owner)
}

// Released 是否已释放
func (h *LockHandle) Released() bool {
	return h == nil || h.released
}
