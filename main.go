package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/fallgate/pkg/app"
	"github.com/decker502/fallgate/pkg/config"
	"github.com/decker502/fallgate/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	storage    = flag.String("storage", "", "开场标记作用域：session 或 durable（覆盖配置文件）")
	configPath = flag.String("config", "", "站点配置文件路径（默认使用嵌入配置）")
	language   = flag.String("lang", "", "文案语言：fi 或 en（覆盖配置文件）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Storage:    *storage,
		Language:   *language,
	})
	if err != nil {
		// NewApp 可能已经关闭日志输出
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(gameApp.SiteConfig().Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Close()
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
