package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storykeeper/internal/flagx"
	"github.com/dmitrijs2005/storykeeper/internal/timex"
)

// jsonConfig mirrors Config for file decoding. Durations come in through
// timex.Duration so the file can say "15m" instead of nanoseconds.
type jsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Without the flag nothing is loaded. An unreadable or malformed file
// panics.
func parseJson(config *Config) {
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

	config.EndpointAddr = jc.EndpointAddr
	config.DatabaseDSN = jc.DatabaseDSN
	config.SecretKey = jc.SecretKey
	config.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	config.RefreshTokenValidityDuration = jc.RefreshTokenValidityDuration.Duration
	config.S3RootUser = jc.S3RootUser
	config.S3RootPassword = jc.S3RootPassword
	config.S3Bucket = jc.S3Bucket
	config.S3Region = jc.S3Region
	config.S3BaseEndpoint = jc.S3BaseEndpoint
}
