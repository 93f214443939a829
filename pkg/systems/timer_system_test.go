package systems

import (
	"testing"
	"time"

	"github.com/decker502/fallgate/pkg/components"
	"github.com/decker502/fallgate/pkg/ecs"
)

// TestTimerSystem_FiresInDelayOrder 同一帧内到期的回调按延迟升序触发
func TestTimerSystem_FiresInDelayOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)
	owner := em.CreateEntity()

	var fired []string
	ts.Schedule(owner, "late", 2000*time.Millisecond, func() { fired = append(fired, "late") })
	ts.Schedule(owner, "early", 850*time.Millisecond, func() { fired = append(fired, "early") })
	ts.Schedule(owner, "same-a", 1100*time.Millisecond, func() { fired = append(fired, "same-a") })
	ts.Schedule(owner, "same-b", 1100*time.Millisecond, func() { fired = append(fired, "same-b") })

	ts.Advance(5 * time.Second)

	want := []string{"early", "same-a", "same-b", "late"}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %s, want %s", i, fired[i], want[i])
		}
	}
	if ts.Pending(owner) != 0 {
		t.Errorf("Pending = %d after all fired, want 0", ts.Pending(owner))
	}
}

// TestTimerSystem_NotDueYet 未到期的回调不触发
func TestTimerSystem_NotDueYet(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)
	owner := em.CreateEntity()

	count := 0
	ts.Schedule(owner, "t", time.Second, func() { count++ })

	ts.Advance(999 * time.Millisecond)
	if count != 0 {
		t.Fatalf("callback fired early")
	}
	ts.Advance(time.Millisecond)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	ts.Advance(time.Second)
	if count != 1 {
		t.Errorf("callback fired twice")
	}
}

// TestTimerSystem_CancelOwner 取消后回调不再触发，计时器实体被清理
func TestTimerSystem_CancelOwner(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)
	a := em.CreateEntity()
	b := em.CreateEntity()

	firedA, firedB := 0, 0
	ts.Schedule(a, "a1", 100*time.Millisecond, func() { firedA++ })
	ts.Schedule(a, "a2", 200*time.Millisecond, func() { firedA++ })
	ts.Schedule(b, "b1", 100*time.Millisecond, func() { firedB++ })

	if got := ts.CancelOwner(a); got != 2 {
		t.Errorf("CancelOwner = %d, want 2", got)
	}
	if ts.Pending(a) != 0 {
		t.Errorf("Pending(a) = %d, want 0", ts.Pending(a))
	}

	ts.Advance(time.Second)

	if firedA != 0 {
		t.Errorf("cancelled callbacks fired %d times", firedA)
	}
	if firedB != 1 {
		t.Errorf("other owner's callback fired %d times, want 1", firedB)
	}
	if n := len(ecs.GetEntitiesWith1[*components.TimerComponent](em)); n != 0 {
		t.Errorf("%d timer components left, want 0", n)
	}
}

// TestTimerSystem_CancelFromCallback 同一帧内先触发的回调取消后续回调
func TestTimerSystem_CancelFromCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)
	owner := em.CreateEntity()

	second := false
	ts.Schedule(owner, "first", 100*time.Millisecond, func() { ts.CancelOwner(owner) })
	ts.Schedule(owner, "second", 200*time.Millisecond, func() { second = true })

	ts.Advance(time.Second)

	if second {
		t.Error("callback cancelled in the same frame should not fire")
	}
}

// TestTimerSystem_UpdateSeconds Update 以秒为单位推进
func TestTimerSystem_UpdateSeconds(t *testing.T) {
	em := ecs.NewEntityManager()
	ts := NewTimerSystem(em)
	owner := em.CreateEntity()

	fired := false
	ts.Schedule(owner, "t", 850*time.Millisecond, func() { fired = true })

	// 60 FPS 下约 51 帧到期（帧时长截断到纳秒，留一帧余量）
	for i := 0; i < 50; i++ {
		ts.Update(1.0 / 60.0)
	}
	if fired {
		t.Fatal("fired before 0.85s")
	}
	ts.Update(1.0 / 60.0)
	ts.Update(1.0 / 60.0)
	if !fired {
		t.Error("not fired after 0.85s")
	}
}
