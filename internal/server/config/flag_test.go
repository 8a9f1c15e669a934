package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_OverridesEveryField(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"server",
		"-a", "127.0.0.1:9090",
		"-d", "postgres://writer@db/storykeeper",
		"-s", "secret",
		"-t", "20",
		"-r", "10080",
		"-u", "user",
		"-p", "password",
		"-b", "bucket",
		"-g", "us-west-1",
		"-e", "http://endpoint",
	}

	var cfg Config
	parseFlags(&cfg)

	assert.Equal(t, "127.0.0.1:9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://writer@db/storykeeper", cfg.DatabaseDSN)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.Equal(t, 20*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 10080*time.Minute, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, "user", cfg.S3RootUser)
	assert.Equal(t, "password", cfg.S3RootPassword)
	assert.Equal(t, "bucket", cfg.S3Bucket)
	assert.Equal(t, "us-west-1", cfg.S3Region)
	assert.Equal(t, "http://endpoint", cfg.S3BaseEndpoint)
}

func TestParseFlags_AbsentFlagsKeepLayeredValues(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"server", "-a", ":9999"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "secretKey", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, "storykeeper", cfg.S3Bucket)
}

func TestParseFlags_BadMinutesPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"server", "-t", "soon"}

	var cfg Config
	cfg.LoadDefaults()
	require.Panics(t, func() { parseFlags(&cfg) })
}
