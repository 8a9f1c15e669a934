package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storykeeper/internal/common"
)

func TestParseEntityType(t *testing.T) {
	for _, et := range AllEntityTypes() {
		got, err := ParseEntityType(string(et))
		require.NoError(t, err)
		assert.Equal(t, et, got)
	}

	_, err := ParseEntityType("spaceship")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownEntityType)
}

func TestMeta_Touch_StoresUTC(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Riga")
	require.NoError(t, err)

	ch := &Chapter{}
	local := time.Date(2025, 6, 1, 15, 4, 5, 0, loc)
	ch.Touch(local)

	assert.Equal(t, time.UTC, ch.GetUpdatedAt().Location())
	assert.True(t, ch.GetUpdatedAt().Equal(local))
}

func TestProject_IsItsOwnScope(t *testing.T) {
	p := &Project{Meta: Meta{ID: "p1"}, Title: "Ashes of Dawn"}
	assert.Equal(t, "p1", p.GetProjectID())
}

func TestDoc_ProjectScope(t *testing.T) {
	n := &Note{Doc: Doc{Meta: Meta{ID: "n1"}, ProjectID: "p1"}, Title: "ideas"}
	assert.Equal(t, "p1", n.GetProjectID())
	assert.Equal(t, "n1", n.GetID())
}

func TestEntityJSONRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	img := &Image{
		Doc:    Doc{Meta: Meta{ID: "i1", UpdatedAt: now}, ProjectID: "p1"},
		Prompt: "a lighthouse at dusk",
		URL:    "media/2025/6/1/i1",
	}

	b, err := json.Marshal(img)
	require.NoError(t, err)

	var got Image
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, *img, got)
}

func TestTombstone_OlderThan(t *testing.T) {
	now := time.Now().UTC()
	ts := Tombstone{EntityType: EntityTypeNote, EntityID: "n1", ProjectID: "p1", Timestamp: now.AddDate(0, 0, -31)}

	assert.True(t, ts.OlderThan(now.AddDate(0, 0, -30)))
	assert.False(t, ts.OlderThan(now.AddDate(0, 0, -40)))
}
