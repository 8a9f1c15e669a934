package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storykeeper/internal/flagx"
	"github.com/dmitrijs2005/storykeeper/internal/timex"
)

// jsonConfig mirrors Config for file decoding. The interval comes in
// through timex.Duration so the file can say "3s" instead of nanoseconds.
type jsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	DataDir             string         `json:"data_dir"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Without the flag nothing is loaded. An unreadable or malformed file
// panics.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(raw, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.DataDir = jc.DataDir
	cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
}
