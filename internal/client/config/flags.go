package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/flagx"
)

// clientFlags lists the flags this component owns; flagx.FilterArgs strips
// everything else so other packages can parse their own.
var clientFlags = []string{"-a", "-d", "-i"}

// parseFlags overlays Config fields with command-line flags. The online
// check interval is given as whole seconds (-i). Absent flags keep the
// value from the earlier layers.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], clientFlags)

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend server")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	intervalSeconds := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval, seconds")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*intervalSeconds) * time.Second
}
