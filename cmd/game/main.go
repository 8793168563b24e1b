package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"breach-lab/internal/commons/logger_config"
	"breach-lab/internal/game"
	"breach-lab/internal/meta"
)

func main() {
	ebiten.SetWindowSize(960, 540)
	ebiten.SetWindowTitle("Breach Lab v0.1")

	dataDir := dataDir()
	kv := meta.NewFileKV(dataDir)

	g := game.New(meta.NewProgress(kv), filepath.Join(dataDir, "snapshot.json"))
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil {
		log.Printf("run game: %v", err)
	}
}

func dataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		logger_config.Logger.Warn("no user config dir, using cwd", "err", err)
		return "breach-lab-data"
	}
	return filepath.Join(base, "breach-lab")
}
