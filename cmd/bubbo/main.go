// Command bubbo runs the game in a window.
package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bubbo"
)

//go:embed assets
var embedded embed.FS

func main() {
	cfg, err := bubbo.ParseConfig()
	if err != nil {
		log.Fatal(err)
	}
	fsys, err := assetFS(cfg)
	if err != nil {
		log.Fatal(err)
	}

	app, err := bubbo.InitializeApp(cfg, fsys)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// assetFS serves BUBBO_ASSET_DIR when set, otherwise the embedded assets.
func assetFS(cfg bubbo.Config) (fs.FS, error) {
	if cfg.AssetDir != "" {
		return os.DirFS(cfg.AssetDir), nil
	}
	return fs.Sub(embedded, "assets")
}
