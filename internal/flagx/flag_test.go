package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs_SeparateValues(t *testing.T) {
	allowed := []string{"-a", "-d", "-c"}

	got := FilterArgs([]string{"-c", "conf.json", "-x", "nope"}, allowed)
	assert.Equal(t, []string{"-c", "conf.json"}, got)

	// A value with URL separators is still one token.
	got = FilterArgs([]string{"-d", "postgres://postgres@localhost/storykeeper", "-q", "x"}, allowed)
	assert.Equal(t, []string{"-d", "postgres://postgres@localhost/storykeeper"}, got)

	// Several allowed flags keep their order.
	got = FilterArgs([]string{"-a", "localhost:8080", "-c", "conf.json", "--other", "x"}, allowed)
	assert.Equal(t, []string{"-a", "localhost:8080", "-c", "conf.json"}, got)

	// Repeats survive so flag.Parse applies its own last-wins rule.
	got = FilterArgs([]string{"-c", "one.json", "-c", "two.json"}, allowed)
	assert.Equal(t, []string{"-c", "one.json", "-c", "two.json"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	allowed := []string{"-c", "--config"}

	got := FilterArgs([]string{"--config=alt.json", "-a", "localhost"}, allowed)
	assert.Equal(t, []string{"--config=alt.json"}, got)

	// The value may itself start with dashes; only the part before '=' is
	// matched against the allow list.
	got = FilterArgs([]string{"--config=--weird.json"}, allowed)
	assert.Equal(t, []string{"--config=--weird.json"}, got)

	got = FilterArgs([]string{"--config=first.json", "-c", "second.json", "-x", "1"}, allowed)
	assert.Equal(t, []string{"--config=first.json", "-c", "second.json"}, got)
}

func TestFilterArgs_DropsEverythingElse(t *testing.T) {
	allowed := []string{"-c", "--config"}

	assert.Empty(t, FilterArgs([]string{"-x", "1", "--y=2", "positional"}, allowed))
	assert.Empty(t, FilterArgs(nil, allowed))

	// A trailing flag without a value passes through bare.
	assert.Equal(t, []string{"-c"}, FilterArgs([]string{"-c"}, allowed))

	// A dash-starting token after a flag is the next flag, not a value.
	assert.Equal(t, []string{"-c", "--config=alt.json"},
		FilterArgs([]string{"-c", "--config=alt.json"}, allowed))
	assert.Equal(t, []string{"-c"}, FilterArgs([]string{"-c", "-notvalue"}, allowed))
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}
