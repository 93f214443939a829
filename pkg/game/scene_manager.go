package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is unmounted unless it wraps the new one and hands over
// control to it (see Handover).
func (sm *SceneManager) SwitchTo(scene Scene) {
	previous := sm.currentScene
	sm.currentScene = scene
	if previous == nil || previous == scene {
		return
	}
	if u, ok := previous.(Unmountable); ok {
		u.Unmount()
	}
}

// Handover 替换当前场景但不卸载旧场景
// 用于包装型场景（如开场遮罩）已自行完成清理、把控制权交给子场景的情况
func (sm *SceneManager) Handover(scene Scene) {
	log.Printf("[SceneManager] Handover to %T", scene)
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close 卸载当前场景（应用退出时调用）
// 先清空当前场景再卸载，包装型场景因此不会 Handover，而是连同子场景一起卸载
func (sm *SceneManager) Close() {
	scene := sm.currentScene
	sm.currentScene = nil
	if u, ok := scene.(Unmountable); ok {
		u.Unmount()
	}
	log.Printf("[SceneManager] Closed")
}
