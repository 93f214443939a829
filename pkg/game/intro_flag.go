package game

import (
	"fmt"
	"log"
	"strings"
)

// StorageScope "已看过开场"标记的存储作用域
type StorageScope string

const (
	// ScopeSession 会话级：进程结束即清空（默认）
	ScopeSession StorageScope = "session"
	// ScopeDurable 持久：跨重启保留
	ScopeDurable StorageScope = "durable"
)

// ParseStorageScope 解析作用域字符串，空字符串返回默认值 ScopeSession
func ParseStorageScope(value string) (StorageScope, error) {
	switch StorageScope(strings.ToLower(strings.TrimSpace(value))) {
	case "", ScopeSession:
		return ScopeSession, nil
	case ScopeDurable:
		return ScopeDurable, nil
	}
	return ScopeSession, fmt.Errorf("unknown storage scope %q (want session or durable)", value)
}

// IntroPlayedKey 标记使用的固定键名
const IntroPlayedKey = "fallgate.intro.played"

// introPlayedValue 已玩过时写入的值
const introPlayedValue = "1"

// IntroFlag "已看过开场"标记
//
// 存储出错一律视为"尚未玩过"，错误只写日志，绝不阻塞渲染。
// 标记只写入、从不删除。
type IntroFlag struct {
	store KVStore
}

// NewIntroFlag 创建标记访问器
func NewIntroFlag(store KVStore) *IntroFlag {
	return &IntroFlag{store: store}
}

// Played 标记是否已写入
func (f *IntroFlag) Played() bool {
	if f.store == nil {
		return false
	}
	value, ok, err := f.store.Get(IntroPlayedKey)
	if err != nil {
		log.Printf("[IntroFlag] Warning: failed to read flag: %v (treating as not played)", err)
		return false
	}
	return ok && value == introPlayedValue
}

// MarkPlayed 写入标记
func (f *IntroFlag) MarkPlayed() {
	if f.store == nil {
		return
	}
	if err := f.store.Set(IntroPlayedKey, introPlayedValue); err != nil {
		log.Printf("[IntroFlag] Warning: failed to write flag: %v", err)
		return
	}
	log.Printf("[IntroFlag] Intro marked as played")
}
