package game

import (
	"errors"
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// ErrStorageUnavailable 存储后端不可用（如 gdata 初始化失败）
var ErrStorageUnavailable = errors.New("storage backend unavailable")

// KVStore 字符串键值存储
// 不存在的键返回 ("", false, nil)
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryStore 进程内键值存储
// 对应会话级作用域：进程退出即清空
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore 创建进程内存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get 读取键值
func (s *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

// Set 写入键值
func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

// gdata 存储对象名
const flagsObject = "flags"

// GdataStore 基于 gdata 的持久化键值存储
// 对应持久作用域：跨进程、跨重启保留
type GdataStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，所有操作返回 ErrStorageUnavailable）
}

// NewGdataStore 创建持久化存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
func NewGdataStore(gdataManager *gdata.Manager) *GdataStore {
	return &GdataStore{gdataManager: gdataManager}
}

// Get 读取键值
func (s *GdataStore) Get(key string) (string, bool, error) {
	if s.gdataManager == nil {
		return "", false, ErrStorageUnavailable
	}
	if !s.gdataManager.ObjectPropExists(flagsObject, key) {
		return "", false, nil
	}
	data, err := s.gdataManager.LoadObjectProp(flagsObject, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set 写入键值
func (s *GdataStore) Set(key, value string) error {
	if s.gdataManager == nil {
		return ErrStorageUnavailable
	}
	if err := s.gdataManager.SaveObjectProp(flagsObject, key, []byte(value)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
