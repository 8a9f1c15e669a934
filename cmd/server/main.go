package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/storykeeper/internal/buildinfo"
	"github.com/dmitrijs2005/storykeeper/internal/server"
	"github.com/dmitrijs2005/storykeeper/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	app, err := server.NewApp(config.LoadConfig())
	if err != nil {
		log.Fatalf("server init: %v", err)
	}

	app.Run(context.Background())
}
