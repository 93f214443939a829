package game

import (
	"log"

	"github.com/decker502/fallgate/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// gdata 应用名（决定存储目录）
const gdataAppName = "fallgate"

// GameState 存储进程级共享状态
// 这是一个单例：页面锁和两种作用域的存储在整个进程内只有一份
type GameState struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，持久作用域退化为不可用）
	sessionStore *MemoryStore
	pageLock     *PageLock
}

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个进程生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = &GameState{
			gdataManager: openGdataManager(),
			sessionStore: NewMemoryStore(),
			pageLock:     NewPageLock(),
		}
	}
	return globalGameState
}

// openGdataManager 初始化 gdata，失败时返回 nil
func openGdataManager() *gdata.Manager {
	if dir, err := utils.PrepareStorage(gdataAppName); err != nil {
		log.Printf("[GameState] Warning: storage dir unavailable: %v", err)
	} else if dir != "" {
		log.Printf("[GameState] Storage dir: %s", dir)
	}
	manager, err := gdata.Open(gdata.Config{
		AppName: gdataAppName,
	})
	if err != nil {
		log.Printf("[GameState] Warning: gdata init failed: %v (durable scope disabled)", err)
		return nil
	}
	return manager
}

// GetGdataManager 返回 gdata 管理器（可能为 nil）
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetPageLock 返回进程级页面锁
func (gs *GameState) GetPageLock() *PageLock {
	return gs.pageLock
}

// StoreFor 返回指定作用域的键值存储
func (gs *GameState) StoreFor(scope StorageScope) KVStore {
	if scope == ScopeDurable {
		return NewGdataStore(gs.gdataManager)
	}
	return gs.sessionStore
}
