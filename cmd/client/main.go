package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/storykeeper/internal/buildinfo"
	"github.com/dmitrijs2005/storykeeper/internal/client/cli"
	"github.com/dmitrijs2005/storykeeper/internal/client/config"
	"github.com/dmitrijs2005/storykeeper/internal/filex"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

// newLogger writes structured logs to a file inside the data dir so they do
// not interleave with the interactive prompt. Falls back to stderr.
func newLogger(dataDir string) logging.Logger {
	w := io.Writer(os.Stderr)
	if err := filex.EnsureDir(dataDir); err == nil {
		f, err := os.OpenFile(filepath.Join(dataDir, "client.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err == nil {
			w = f
		}
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return logging.NewSlogLogger(slog.New(h))
}

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, newLogger(cfg.DataDir))

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
