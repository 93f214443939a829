package scenes

import (
	"errors"
	"testing"

	"github.com/decker502/fallgate/pkg/game"
	"github.com/decker502/fallgate/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// stubScene 记录调用次数的子场景
type stubScene struct {
	updates  int
	unmounts int
}

func (s *stubScene) Update(float64)     { s.updates++ }
func (s *stubScene) Draw(*ebiten.Image) {}
func (s *stubScene) Unmount()           { s.unmounts++ }

// brokenStore 总是失败的存储
type brokenStore struct{ sets int }

func (b *brokenStore) Get(string) (string, bool, error) {
	return "", false, errors.New("storage disabled")
}

func (b *brokenStore) Set(string, string) error {
	b.sets++
	return errors.New("storage disabled")
}

// newTestGate 使用注入的存储和页面锁创建遮罩
func newTestGate(store game.KVStore, lock *game.PageLock, sm *game.SceneManager) (*IntroGateScene, *stubScene) {
	child := &stubScene{}
	gate := NewIntroGateScene(child, IntroGateOptions{
		Store:        store,
		PageLock:     lock,
		SceneManager: sm,
	})
	return gate, child
}

// advanceSeconds 以 60 FPS 推进遮罩
func advanceSeconds(gate *IntroGateScene, seconds float64) {
	const dt = 1.0 / 60.0
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		gate.Advance(dt)
	}
}

// TestIntroGate_FirstMountShowsAndLocks 首次挂载显示遮罩并锁定页面
func TestIntroGate_FirstMountShowsAndLocks(t *testing.T) {
	lock := game.NewPageLock()
	gate, _ := newTestGate(game.NewMemoryStore(), lock, nil)

	if !gate.Visible() || gate.Unmounted() || gate.Skipped() {
		t.Fatalf("visible=%v unmounted=%v skipped=%v", gate.Visible(), gate.Unmounted(), gate.Skipped())
	}
	if gate.Phase() != types.PhaseIdle {
		t.Errorf("phase = %s, want idle", gate.Phase())
	}
	if !lock.Locked() || lock.Owner() != introGateLockOwner {
		t.Errorf("lock = (%v, %q), want held by gate", lock.Locked(), lock.Owner())
	}
}

// TestIntroGate_FlagWrittenAtStart 开始瞬间写入标记，早于任何计时器
func TestIntroGate_FlagWrittenAtStart(t *testing.T) {
	store := game.NewMemoryStore()
	gate, _ := newTestGate(store, game.NewPageLock(), nil)

	if game.NewIntroFlag(store).Played() {
		t.Fatal("flag set before Start")
	}
	if !gate.Start() {
		t.Fatal("Start rejected")
	}
	if !game.NewIntroFlag(store).Played() {
		t.Error("flag should be set immediately after Start")
	}
	if gate.Start() {
		t.Error("second Start should be rejected")
	}
}

// TestIntroGate_FullRun 完整流程：卸载恰好一次释放页面锁，并把控制权交给子场景
func TestIntroGate_FullRun(t *testing.T) {
	lock := game.NewPageLock()
	sm := game.NewSceneManager()
	gate, child := newTestGate(game.NewMemoryStore(), lock, sm)
	sm.SwitchTo(gate)

	gate.Start()
	advanceSeconds(gate, 1.2)
	if gate.Phase() != types.PhaseGameOver {
		t.Errorf("phase at 1.2s = %s, want gameover", gate.Phase())
	}
	advanceSeconds(gate, 1.0)
	if gate.Phase() != types.PhaseDone || !gate.Visible() {
		t.Errorf("at 2.2s: phase=%s visible=%v, want done/visible (fading)", gate.Phase(), gate.Visible())
	}
	if !lock.Locked() {
		t.Error("lock released before unmount")
	}

	advanceSeconds(gate, 0.5)
	if !gate.Unmounted() || gate.Visible() {
		t.Fatalf("at 2.7s: unmounted=%v visible=%v", gate.Unmounted(), gate.Visible())
	}
	if lock.Locked() || !gate.LockReleased() {
		t.Error("lock should be released after unmount")
	}
	if sm.GetCurrentScene() != child {
		t.Errorf("current scene = %T, want child", sm.GetCurrentScene())
	}
	if child.unmounts != 0 {
		t.Error("handover must not unmount the child")
	}

	gate.Unmount()
	sm.Close()
	if lock.AcquireCount() != 1 || lock.ReleaseCount() != 1 {
		t.Errorf("acquire/release = %d/%d, want 1/1", lock.AcquireCount(), lock.ReleaseCount())
	}
}

// TestIntroGate_EarlyUnmount 在时间线各个节点前后卸载：释放锁，之后不再有阶段变化
func TestIntroGate_EarlyUnmount(t *testing.T) {
	tests := []struct {
		name string
		at   float64 // 开始后多少秒卸载
	}{
		{"刚开始", 0},
		{"撞击时", 0.85},
		{"GameOver 时", 1.1},
		{"淡出开始时", 2.0},
		{"即将自行卸载", 2.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := game.NewPageLock()
			gate, child := newTestGate(game.NewMemoryStore(), lock, nil)

			gate.Start()
			advanceSeconds(gate, tt.at)
			if gate.Unmounted() {
				t.Fatalf("gate unmounted on its own before %.2fs", tt.at)
			}
			gate.Unmount()

			if lock.Locked() {
				t.Error("lock should be released on early unmount")
			}
			if gate.Session().PendingTimers() != 0 {
				t.Errorf("PendingTimers = %d, want 0", gate.Session().PendingTimers())
			}
			if child.unmounts != 1 {
				t.Errorf("child unmounts = %d, want 1 (no scene manager to hand over to)", child.unmounts)
			}

			phase := gate.Phase()
			gate.Advance(5)
			gate.Unmount()
			if gate.Phase() != phase {
				t.Errorf("phase changed after unmount: %s -> %s", phase, gate.Phase())
			}
			if lock.ReleaseCount() != 1 || child.unmounts != 1 {
				t.Errorf("releases=%d child unmounts=%d, want 1/1", lock.ReleaseCount(), child.unmounts)
			}
		})
	}
}

// TestIntroGate_SecondMountSkips 标记已存在时不显示、不加锁
func TestIntroGate_SecondMountSkips(t *testing.T) {
	store := game.NewMemoryStore()
	first, _ := newTestGate(store, game.NewPageLock(), nil)
	first.Start()
	first.Unmount()

	lock := game.NewPageLock()
	second, _ := newTestGate(store, lock, nil)

	if second.Visible() || !second.Unmounted() || !second.Skipped() {
		t.Errorf("visible=%v unmounted=%v skipped=%v", second.Visible(), second.Unmounted(), second.Skipped())
	}
	if second.Phase() != types.PhaseDone {
		t.Errorf("phase = %s, want done", second.Phase())
	}
	if lock.AcquireCount() != 0 || lock.Locked() {
		t.Errorf("lock touched: acquires=%d locked=%v", lock.AcquireCount(), lock.Locked())
	}
	if second.Start() {
		t.Error("skipped gate should not start")
	}
}

// TestIntroGate_BrokenStorage 存储不可用时按"未看过"处理
func TestIntroGate_BrokenStorage(t *testing.T) {
	store := &brokenStore{}
	gate, _ := newTestGate(store, game.NewPageLock(), nil)

	if !gate.Visible() {
		t.Fatal("overlay should show when storage is unavailable")
	}
	if !gate.Start() {
		t.Fatal("Start rejected")
	}
	if store.sets != 1 {
		t.Errorf("Set attempts = %d, want 1", store.sets)
	}
	advanceSeconds(gate, 3)
	if !gate.Unmounted() {
		t.Error("gate should still unmount when the flag cannot be written")
	}
}

// TestIntroGate_LockHeldElsewhere 页面锁被其他所有者持有时仍显示遮罩
func TestIntroGate_LockHeldElsewhere(t *testing.T) {
	lock := game.NewPageLock()
	other, _ := lock.Acquire("modal")

	gate, _ := newTestGate(game.NewMemoryStore(), lock, nil)
	if !gate.Visible() {
		t.Fatal("overlay should show without the lock")
	}

	gate.Unmount()
	if !lock.Locked() || lock.Owner() != "modal" {
		t.Error("gate must not release a lock it never held")
	}
	other.Release()
}

// TestIntroGate_SwitchAwayUnmounts 切换到其他场景时卸载遮罩和子场景
func TestIntroGate_SwitchAwayUnmounts(t *testing.T) {
	lock := game.NewPageLock()
	sm := game.NewSceneManager()
	gate, child := newTestGate(game.NewMemoryStore(), lock, sm)
	sm.SwitchTo(gate)

	gate.Start()
	sm.SwitchTo(&stubScene{})

	if !gate.Unmounted() || lock.Locked() {
		t.Errorf("unmounted=%v locked=%v after switch", gate.Unmounted(), lock.Locked())
	}
	if child.unmounts != 1 {
		t.Errorf("child unmounts = %d, want 1", child.unmounts)
	}
}

// TestIntroGate_CloseUnmountsPage 应用退出时遮罩和下方页面都被卸载
func TestIntroGate_CloseUnmountsPage(t *testing.T) {
	lock := game.NewPageLock()
	landing := newTestLanding(lock)
	sm := game.NewSceneManager()
	gate := NewIntroGateScene(landing, IntroGateOptions{
		Store:        game.NewMemoryStore(),
		PageLock:     lock,
		SceneManager: sm,
	})
	sm.SwitchTo(gate)

	widget := landing.Widget()
	if widget == nil {
		t.Fatal("default config should embed the widget")
	}
	widget.Start()
	if widget.Session().PendingTimers() == 0 {
		t.Fatal("widget round should have pending timers")
	}

	sm.Close()

	if !gate.Unmounted() || lock.Locked() {
		t.Errorf("unmounted=%v locked=%v after close", gate.Unmounted(), lock.Locked())
	}
	if sm.GetCurrentScene() != nil {
		t.Errorf("current scene = %T after close, want nil", sm.GetCurrentScene())
	}
	if widget.Session().PendingTimers() != 0 {
		t.Errorf("widget PendingTimers = %d after close, want 0", widget.Session().PendingTimers())
	}
	if widget.Start() {
		t.Error("widget should not start after the page is closed")
	}
}

// TestIntroGate_DirectUnmountWhileCurrentKeepsPage 遮罩是当前场景时直接卸载，页面接管
func TestIntroGate_DirectUnmountWhileCurrentKeepsPage(t *testing.T) {
	sm := game.NewSceneManager()
	gate, child := newTestGate(game.NewMemoryStore(), game.NewPageLock(), sm)
	sm.SwitchTo(gate)

	gate.Unmount()

	if sm.GetCurrentScene() != child || child.unmounts != 0 {
		t.Errorf("current=%T child unmounts=%d, want child still running", sm.GetCurrentScene(), child.unmounts)
	}
}

// TestIntroGate_SessionResetUnmounts 开始后重置会话：遮罩立即卸载并释放页面锁
func TestIntroGate_SessionResetUnmounts(t *testing.T) {
	lock := game.NewPageLock()
	sm := game.NewSceneManager()
	gate, child := newTestGate(game.NewMemoryStore(), lock, sm)
	sm.SwitchTo(gate)

	gate.Start()
	advanceSeconds(gate, 1.5)
	gate.Session().Reset()

	if !gate.Unmounted() || gate.Visible() {
		t.Fatalf("unmounted=%v visible=%v after reset", gate.Unmounted(), gate.Visible())
	}
	if lock.Locked() || lock.ReleaseCount() != 1 {
		t.Errorf("locked=%v releases=%d, want released once", lock.Locked(), lock.ReleaseCount())
	}
	if sm.GetCurrentScene() != child || child.unmounts != 0 {
		t.Errorf("current=%T child unmounts=%d, want handover to child", sm.GetCurrentScene(), child.unmounts)
	}
}

// TestIntroGate_ButtonLabel 按钮在开始前为 "Kokeile"，开始后为 "Käytetty"
func TestIntroGate_ButtonLabel(t *testing.T) {
	gate, _ := newTestGate(game.NewMemoryStore(), game.NewPageLock(), nil)

	if got := gate.ButtonLabel(); got != "Kokeile" {
		t.Errorf("ButtonLabel before start = %q, want Kokeile", got)
	}
	gate.Start()
	if got := gate.ButtonLabel(); got != "Käytetty" {
		t.Errorf("ButtonLabel after start = %q, want Käytetty", got)
	}
}
