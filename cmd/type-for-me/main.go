package main

import (
	"embed"
	"io/fs"
	"os"

	"github.com/zunkelty/type-for-me/internal/config"
	"github.com/zunkelty/type-for-me/internal/desktop"
	"github.com/zunkelty/type-for-me/internal/shortcut"
	"github.com/zunkelty/type-for-me/internal/shortcut/hotkeybackend"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)

	content, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}

	if err := desktop.Run(desktop.Options{
		Assets:    content,
		Config:    cfg,
		Shortcuts: shortcut.New(shortcut.WithBackend(hotkeybackend.New)),
	}); err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
}
