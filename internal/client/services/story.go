package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/client/remote"
	"github.com/dmitrijs2005/storykeeper/internal/client/repositories"
	"github.com/dmitrijs2005/storykeeper/internal/client/syncer"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
	"github.com/dmitrijs2005/storykeeper/internal/netx"
)

// StoryService implements the workspace flows on top of the repository set:
// entity creation with generated ids, the project cascade delete, the media
// upload/download pipeline, and synchronization.
type StoryService struct {
	repos  *repositories.Manager
	sync   *syncer.Service
	client *remote.Client
	log    logging.Logger
}

// NewStoryService wires the service from an already-built repository set.
func NewStoryService(repos *repositories.Manager, sync *syncer.Service,
	client *remote.Client, log logging.Logger) *StoryService {
	return &StoryService{repos: repos, sync: sync, client: client, log: log}
}

// NewSyncService builds the synchronization service over every repository in
// the manager, one binding per entity type.
func NewSyncService(m *repositories.Manager, client *remote.Client, log logging.Logger) *syncer.Service {
	return syncer.NewService(m.Deletions, client, log,
		syncer.NewBinding[*models.Project](models.EntityTypeProject, m.Projects.Local(), m.Projects.Remote(), log),
		syncer.NewBinding[*models.Chapter](models.EntityTypeChapter, m.Chapters.Local(), m.Chapters.Remote(), log),
		syncer.NewBinding[*models.Character](models.EntityTypeCharacter, m.Characters.Local(), m.Characters.Remote(), log),
		syncer.NewBinding[*models.Location](models.EntityTypeLocation, m.Locations.Local(), m.Locations.Remote(), log),
		syncer.NewBinding[*models.Organization](models.EntityTypeOrganization, m.Organizations.Local(), m.Organizations.Remote(), log),
		syncer.NewBinding[*models.Note](models.EntityTypeNote, m.Notes.Local(), m.Notes.Remote(), log),
		syncer.NewBinding[*models.Image](models.EntityTypeImage, m.Images.Local(), m.Images.Remote(), log),
		syncer.NewBinding[*models.AudioTrack](models.EntityTypeAudioTrack, m.AudioTracks.Local(), m.AudioTracks.Remote(), log),
		syncer.NewBinding[*models.Playlist](models.EntityTypePlaylist, m.Playlists.Local(), m.Playlists.Remote(), log),
	)
}

// Repos exposes the repository set for direct per-type reads.
func (s *StoryService) Repos() *repositories.Manager { return s.repos }

// CreateProject starts a new writing workspace.
func (s *StoryService) CreateProject(ctx context.Context, title, synopsis string) (*models.Project, error) {
	p := &models.Project{
		Meta:     models.Meta{ID: uuid.NewString()},
		Title:    title,
		Synopsis: synopsis,
	}
	if err := s.repos.Projects.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProject removes the project and everything it owns. Children go
// first so a failure leaves the project visible and the cascade retryable;
// every removed entity gets its own tombstone.
func (s *StoryService) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.repos.Chapters.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repos.Characters.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repos.Locations.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repos.Organizations.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repos.Notes.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repos.Images.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repos.AudioTracks.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repos.Playlists.DeleteByProjectID(ctx, projectID); err != nil {
		return err
	}
	return s.repos.Projects.Delete(ctx, projectID)
}

// CreateChapter appends a chapter to the project's manuscript, numbering it
// after the existing ones.
func (s *StoryService) CreateChapter(ctx context.Context, projectID, title, body string) (*models.Chapter, error) {
	existing, err := s.repos.Chapters.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ch := &models.Chapter{
		Doc:   models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Title: title,
		Body:  body,
		Order: len(existing) + 1,
	}
	if err := s.repos.Chapters.Save(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// CreateNote adds a free-form note to the project.
func (s *StoryService) CreateNote(ctx context.Context, projectID, title, text string) (*models.Note, error) {
	n := &models.Note{
		Doc:   models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Title: title,
		Text:  text,
	}
	if err := s.repos.Notes.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateCharacter adds a cast member to the project.
func (s *StoryService) CreateCharacter(ctx context.Context, projectID, name, role, biography string) (*models.Character, error) {
	c := &models.Character{
		Doc:       models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Name:      name,
		Role:      role,
		Biography: biography,
	}
	if err := s.repos.Characters.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateLocation adds a place to the project.
func (s *StoryService) CreateLocation(ctx context.Context, projectID, name, description string) (*models.Location, error) {
	l := &models.Location{
		Doc:         models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Name:        name,
		Description: description,
	}
	if err := s.repos.Locations.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateOrganization adds a faction or group to the project.
func (s *StoryService) CreateOrganization(ctx context.Context, projectID, name, purpose string) (*models.Organization, error) {
	o := &models.Organization{
		Doc:     models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Name:    name,
		Purpose: purpose,
	}
	if err := s.repos.Organizations.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// CreateImage uploads the payload through a presigned URL, caches it
// locally, and records the image entity referencing the minted object key.
// Unlike entity writes, the upload needs a reachable backend; without one
// the call fails and nothing is recorded.
func (s *StoryService) CreateImage(ctx context.Context, projectID, prompt string, data []byte) (*models.Image, error) {
	key, err := s.uploadAsset(ctx, data)
	if err != nil {
		return nil, err
	}
	img := &models.Image{
		Doc:    models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Prompt: prompt,
		URL:    key,
	}
	if err := s.repos.Images.Save(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// CreateAudioTrack uploads the payload and records the track entity.
func (s *StoryService) CreateAudioTrack(ctx context.Context, projectID, title string, durationSeconds int, data []byte) (*models.AudioTrack, error) {
	key, err := s.uploadAsset(ctx, data)
	if err != nil {
		return nil, err
	}
	tr := &models.AudioTrack{
		Doc:             models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Title:           title,
		DurationSeconds: durationSeconds,
		URL:             key,
	}
	if err := s.repos.AudioTracks.Save(ctx, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

// CreatePlaylist records a playlist over the project's audio tracks. Track
// ids unknown to both stores are dropped.
func (s *StoryService) CreatePlaylist(ctx context.Context, projectID, name string, trackIDs []string) (*models.Playlist, error) {
	known, err := s.repos.AudioTracks.FindByIDs(ctx, trackIDs)
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, len(known))
	for _, tr := range known {
		kept = append(kept, tr.GetID())
	}

	pl := &models.Playlist{
		Doc:      models.Doc{Meta: models.Meta{ID: uuid.NewString()}, ProjectID: projectID},
		Name:     name,
		TrackIDs: kept,
	}
	if err := s.repos.Playlists.Save(ctx, pl); err != nil {
		return nil, err
	}
	return pl, nil
}

// ResolveAsset returns a local path for the object key, downloading and
// caching the payload when it is not on disk yet.
func (s *StoryService) ResolveAsset(ctx context.Context, key string) (string, error) {
	if path, ok := s.repos.Assets.Has(key); ok {
		return path, nil
	}

	url, err := s.client.GetDownloadURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("request download url: %w", err)
	}
	data, err := netx.DownloadFromS3PresignedURL(url)
	if err != nil {
		return "", fmt.Errorf("download asset %s: %w", key, err)
	}
	return s.repos.Assets.Store(key, data)
}

// Sync runs one reconciliation pass against the backend.
func (s *StoryService) Sync(ctx context.Context) error {
	return s.sync.RunSyncPass(ctx)
}

func (s *StoryService) uploadAsset(ctx context.Context, data []byte) (string, error) {
	key, uploadURL, err := s.client.GetUploadURL(ctx)
	if err != nil {
		return "", fmt.Errorf("request upload url: %w", err)
	}
	if err := netx.UploadToS3PresignedURL(uploadURL, data); err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}
	if _, err := s.repos.Assets.Store(key, data); err != nil {
		return "", err
	}
	return key, nil
}
