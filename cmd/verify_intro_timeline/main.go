// verify_intro_timeline 无窗口验证开场遮罩和小游戏的时间线
//
// 以固定帧长推进计时器，打印每次阶段变化的时间点，
// 并检查开场遮罩的标记、页面锁和卸载时机。
//
// 用法：
//
//	go run ./cmd/verify_intro_timeline -fps 60
//	go run ./cmd/verify_intro_timeline -early 1.5   # 1.5 秒时提前卸载
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/fallgate/pkg/ecs"
	"github.com/decker502/fallgate/pkg/game"
	"github.com/decker502/fallgate/pkg/scenes"
	"github.com/decker502/fallgate/pkg/systems"
	"github.com/decker502/fallgate/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	fps      = flag.Int("fps", 60, "模拟帧率")
	duration = flag.Float64("duration", 8, "模拟总时长（秒）")
	early    = flag.Float64("early", 0, "在该时间点提前卸载遮罩（秒，0 表示不提前）")
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
)

// blankScene 遮罩下方的空页面
type blankScene struct{ updates int }

func (s *blankScene) Update(float64)     { s.updates++ }
func (s *blankScene) Draw(*ebiten.Image) {}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if *fps <= 0 {
		fmt.Fprintln(os.Stderr, "fps 必须为正数")
		os.Exit(2)
	}

	failures := verifyGate()
	failures += verifyWidget(true)
	failures += verifyWidget(false)

	if failures > 0 {
		fmt.Printf("\n%d 项检查失败\n", failures)
		os.Exit(1)
	}
	fmt.Println("\n全部检查通过")
}

// verifyGate 推进一次开场遮罩并检查标记、锁和卸载
func verifyGate() int {
	fmt.Println("== Intro gate ==")
	failures := 0
	check := func(ok bool, format string, args ...any) {
		status := "OK  "
		if !ok {
			status = "FAIL"
			failures++
		}
		fmt.Printf("  [%s] %s\n", status, fmt.Sprintf(format, args...))
	}

	store := game.NewMemoryStore()
	lock := game.NewPageLock()
	sm := game.NewSceneManager()
	child := &blankScene{}
	gate := scenes.NewIntroGateScene(child, scenes.IntroGateOptions{
		Store:        store,
		PageLock:     lock,
		SceneManager: sm,
	})
	sm.SwitchTo(gate)

	check(gate.Visible() && lock.Locked(), "first mount shows overlay and locks page")

	dt := 1.0 / float64(*fps)
	now := 0.0
	last := gate.Phase()
	gate.Start()
	check(game.NewIntroFlag(store).Played(), "flag written at start")

	for now < *duration && !gate.Unmounted() {
		if *early > 0 && now >= *early {
			gate.Unmount()
			fmt.Printf("  %7.3fs  unmounted early in %s\n", now, gate.Phase())
			break
		}
		gate.Advance(dt)
		now += dt
		if phase := gate.Phase(); phase != last {
			fmt.Printf("  %7.3fs  %s -> %s\n", now, last, phase)
			last = phase
		}
		if gate.Unmounted() {
			fmt.Printf("  %7.3fs  overlay unmounted\n", now)
		}
	}

	check(gate.Unmounted(), "overlay unmounted")
	check(!lock.Locked() && lock.ReleaseCount() == 1, "page lock released exactly once (releases=%d)", lock.ReleaseCount())
	check(gate.Session().PendingTimers() == 0, "no pending timers after unmount")
	if *early == 0 {
		check(sm.GetCurrentScene() == game.Scene(child), "control handed over to the page")
	}

	again := scenes.NewIntroGateScene(child, scenes.IntroGateOptions{
		Store:    store,
		PageLock: game.NewPageLock(),
	})
	check(again.Skipped() && !again.Visible(), "second mount is skipped")
	return failures
}

// verifyWidget 推进两轮小游戏
func verifyWidget(allowReplay bool) int {
	fmt.Printf("\n== Widget (allowReplay=%v) ==\n", allowReplay)
	failures := 0

	em := ecs.NewEntityManager()
	ts := systems.NewTimerSystem(em)
	now := 0.0
	completions := 0
	session := systems.NewFallSession(em, ts, types.WidgetVariant(allowReplay), systems.FallHooks{
		OnPhaseChange: func(from, to types.FallPhase) {
			fmt.Printf("  %7.3fs  %s -> %s\n", now, from, to)
		},
		OnGameOver: func() { completions++ },
	})
	defer session.Close()

	dt := 1.0 / float64(*fps)
	for round := 0; round < 2; round++ {
		if !session.Start() {
			fmt.Printf("  %7.3fs  start rejected in %s\n", now, session.Phase())
			if allowReplay {
				failures++
			}
			break
		}
		for elapsed := 0.0; elapsed < 4; elapsed += dt {
			ts.Update(dt)
			now += dt
		}
	}

	want := 2
	if !allowReplay {
		want = 1
	}
	if completions != want {
		fmt.Printf("  [FAIL] completions = %d, want %d\n", completions, want)
		failures++
	} else {
		fmt.Printf("  [OK  ] completions = %d\n", completions)
	}
	return failures
}
