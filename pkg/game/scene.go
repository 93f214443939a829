package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application (the landing page, the intro gate).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Unmountable 是一个可选接口，用于场景被移出场景树时释放资源
//
// 实现此接口的场景会在以下时机被调用 Unmount()：
//   - SceneManager 切换到其他场景
//   - 应用关闭（SceneManager.Close）
//
// Unmount 必须可重复调用。
type Unmountable interface {
	Unmount()
}
