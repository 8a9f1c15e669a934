package repositories

import (
	"github.com/dmitrijs2005/storykeeper/internal/client/assets"
	"github.com/dmitrijs2005/storykeeper/internal/client/deletionlog"
	"github.com/dmitrijs2005/storykeeper/internal/client/localstore"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/client/remote"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

// Manager bundles one Repository per entity type together with the shared
// deletion log and media cache for one account scope.
type Manager struct {
	Projects      *Repository[*models.Project]
	Chapters      *Repository[*models.Chapter]
	Characters    *Repository[*models.Character]
	Locations     *Repository[*models.Location]
	Organizations *Repository[*models.Organization]
	Notes         *Repository[*models.Note]
	Images        *Repository[*models.Image]
	AudioTracks   *Repository[*models.AudioTrack]
	Playlists     *Repository[*models.Playlist]

	Deletions *deletionlog.Log
	Assets    *assets.Cache
}

type entityPtr[T any] interface {
	models.Entity
	*T
}

func newRepo[T any, PT entityPtr[T]](dataDir, scope string, entityType models.EntityType,
	client *remote.Client, deletions *deletionlog.Log, cache *assets.Cache,
	log logging.Logger) (*Repository[PT], error) {
	local, err := localstore.New[T, PT](dataDir, scope, entityType)
	if err != nil {
		return nil, err
	}
	return New[PT](entityType, local, remote.NewEntityClient[T, PT](client, entityType),
		deletions, cache, log), nil
}

// NewManager builds the full repository set for one account scope rooted at
// dataDir.
func NewManager(dataDir, scope string, client *remote.Client, log logging.Logger) (*Manager, error) {
	deletions, err := deletionlog.New(dataDir, scope)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		Deletions: deletions,
		Assets:    assets.New(dataDir, scope),
	}

	if m.Projects, err = newRepo[models.Project](dataDir, scope, models.EntityTypeProject, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.Chapters, err = newRepo[models.Chapter](dataDir, scope, models.EntityTypeChapter, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.Characters, err = newRepo[models.Character](dataDir, scope, models.EntityTypeCharacter, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.Locations, err = newRepo[models.Location](dataDir, scope, models.EntityTypeLocation, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.Organizations, err = newRepo[models.Organization](dataDir, scope, models.EntityTypeOrganization, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.Notes, err = newRepo[models.Note](dataDir, scope, models.EntityTypeNote, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.Images, err = newRepo[models.Image](dataDir, scope, models.EntityTypeImage, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.AudioTracks, err = newRepo[models.AudioTrack](dataDir, scope, models.EntityTypeAudioTrack, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}
	if m.Playlists, err = newRepo[models.Playlist](dataDir, scope, models.EntityTypePlaylist, client, deletions, m.Assets, log); err != nil {
		return nil, err
	}

	return m, nil
}
