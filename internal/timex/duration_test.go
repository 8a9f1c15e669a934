package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON_String(t *testing.T) {
	var d Duration
	err := json.Unmarshal([]byte(`"3s"`), &d)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d.Duration)
}

func TestDuration_UnmarshalJSON_Nanoseconds(t *testing.T) {
	var d Duration
	err := json.Unmarshal([]byte(`1500000000`), &d)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d.Duration)
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{90 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))
}

func TestDuration_RoundTripInStruct(t *testing.T) {
	type cfg struct {
		Interval Duration `json:"interval"`
	}
	var c cfg
	require.NoError(t, json.Unmarshal([]byte(`{"interval":"250ms"}`), &c))
	assert.Equal(t, 250*time.Millisecond, c.Interval.Duration)
}
