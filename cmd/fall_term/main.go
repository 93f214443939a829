// fall_term 在终端里运行可重玩的坠落小游戏
//
// 空格/回车开始，r 重置，q 或 Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/decker502/fallgate/pkg/ecs"
	"github.com/decker502/fallgate/pkg/systems"
	"github.com/decker502/fallgate/pkg/types"
	"github.com/gdamore/tcell/v2"
)

var (
	// 命令行参数
	noReplay = flag.Bool("no-replay", false, "GameOver 后不自动回到可玩状态（按 r 重置）")
	label    = flag.String("label", "Kokeile", "Idle 时的按钮文字")
	logPath  = flag.String("log", "", "日志文件（终端被占用，默认丢弃日志）")
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// cabinet 三种姿态的字符画
var (
	cabinetUpright = []string{
		"+------+",
		"|  ||  |",
		"| o||o |",
		"|  ||  |",
		"+------+",
	}
	cabinetTilted = []string{
		"   /--/",
		"  /o//",
		" /o//",
		"/--/",
	}
	cabinetFallen = []string{
		"+------------+",
		"|  o      o  |",
		"+------------+",
	}
)

// termWidget 终端版小游戏
type termWidget struct {
	screen         tcell.Screen
	entityManager  *ecs.EntityManager
	timerSystem    *systems.TimerSystem
	sequenceSystem *systems.FallSequenceSystem
	session        *systems.FallSession
	completions    int
}

func newTermWidget(screen tcell.Screen, allowReplay bool) *termWidget {
	em := ecs.NewEntityManager()
	w := &termWidget{
		screen:         screen,
		entityManager:  em,
		timerSystem:    systems.NewTimerSystem(em),
		sequenceSystem: systems.NewFallSequenceSystem(em),
	}
	w.session = systems.NewFallSession(em, w.timerSystem, types.WidgetVariant(allowReplay), systems.FallHooks{
		OnGameOver: func() { w.completions++ },
	})
	return w
}

// handleEvent 处理终端事件，返回 false 表示退出
func (w *termWidget) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyEnter:
			w.session.Start()
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				w.session.Start()
			case 'r':
				w.session.Reset()
			case 'q':
				return false
			}
		}
	case *tcell.EventResize:
		w.screen.Sync()
	}
	return true
}

func (w *termWidget) update(dt float64) {
	w.timerSystem.Update(dt)
	w.sequenceSystem.Update(dt)
}

func (w *termWidget) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		w.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (w *termWidget) draw() {
	w.screen.Clear()
	width, height := w.screen.Size()
	state := w.session.State()

	floorY := height/2 + 3
	floorStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for x := 0; x < width; x++ {
		w.screen.SetContent(x, floorY, '_', nil, floorStyle)
	}

	art := cabinetUpright
	angle := systems.TiltAngle(state)
	switch {
	case angle >= math.Pi/2:
		art = cabinetFallen
	case angle > math.Pi/8:
		art = cabinetTilted
	}
	shake := int(math.Round(systems.ShakeOffset(state) / 2))
	cabinetStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(166, 118, 79))
	left := width/2 - 4 + shake
	for i, line := range art {
		w.drawText(left, floorY-len(art)+i, line, cabinetStyle)
	}

	if state.Phase == types.PhaseGameOver {
		over := "G A M E   O V E R"
		w.drawText((width-len(over))/2, floorY-9, over, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}

	buttonStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	if !w.session.CanPlay() {
		buttonStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGray)
	}
	button := fmt.Sprintf("[ %s ]", buttonLabel(state.Phase))
	w.drawText((width-len([]rune(button)))/2, floorY+2, button, buttonStyle)
	if state.Phase == types.PhaseGameOver && !*noReplay {
		w.drawText((width+len([]rune(button)))/2+2, floorY+2, "[ r: Yritä uudelleen ]", tcell.StyleDefault.Foreground(tcell.ColorNavy))
	}

	status := fmt.Sprintf("phase=%s  rounds=%d  (space: start, r: reset, q: quit)", state.Phase, w.completions)
	w.drawText(1, height-1, status, tcell.StyleDefault.Dim(true))

	w.screen.Show()
}

// buttonLabel 按钮文字随阶段变化
func buttonLabel(phase types.FallPhase) string {
	switch phase {
	case types.PhaseFalling:
		return "Kaatuu..."
	case types.PhaseGameOver:
		return "Kaatui!"
	default:
		return *label
	}
}

func (w *termWidget) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := w.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !w.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			w.update(now.Sub(last).Seconds())
			last = now
			w.draw()
		}
	}
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}

	w := newTermWidget(screen, !*noReplay)
	w.run()

	w.session.Close()
	screen.Fini()
	fmt.Printf("完成 %d 轮\n", w.completions)
}
