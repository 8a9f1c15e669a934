package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// childTypes are the entity kinds living inside a project, in listing order.
var childTypes = []models.EntityType{
	models.EntityTypeChapter,
	models.EntityTypeCharacter,
	models.EntityTypeLocation,
	models.EntityTypeOrganization,
	models.EntityTypeNote,
	models.EntityTypeImage,
	models.EntityTypeAudioTrack,
	models.EntityTypePlaylist,
}

func asEntities[T models.Entity](list []T, err error) ([]models.Entity, error) {
	if err != nil {
		return nil, err
	}
	out := make([]models.Entity, len(list))
	for i, e := range list {
		out[i] = e
	}
	return out, nil
}

// findProject resolves a project by full id or unique id prefix.
func (a *App) findProject(ctx context.Context, id string) (*models.Project, error) {
	if id == "" {
		return nil, common.ErrorNotFound
	}

	p, err := a.story.Repos().Projects.FindByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	list, err := a.story.Repos().Projects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var match *models.Project
	for _, cand := range list {
		if strings.HasPrefix(cand.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("project id %q is ambiguous", id)
			}
			match = cand
		}
	}
	if match == nil {
		return nil, common.ErrorNotFound
	}
	return match, nil
}

// findChildren lists the current project's entities of one kind.
func (a *App) findChildren(ctx context.Context, et models.EntityType) ([]models.Entity, error) {
	r := a.story.Repos()
	pid := a.currentProject

	switch et {
	case models.EntityTypeChapter:
		return asEntities(r.Chapters.FindByProjectID(ctx, pid))
	case models.EntityTypeCharacter:
		return asEntities(r.Characters.FindByProjectID(ctx, pid))
	case models.EntityTypeLocation:
		return asEntities(r.Locations.FindByProjectID(ctx, pid))
	case models.EntityTypeOrganization:
		return asEntities(r.Organizations.FindByProjectID(ctx, pid))
	case models.EntityTypeNote:
		return asEntities(r.Notes.FindByProjectID(ctx, pid))
	case models.EntityTypeImage:
		return asEntities(r.Images.FindByProjectID(ctx, pid))
	case models.EntityTypeAudioTrack:
		return asEntities(r.AudioTracks.FindByProjectID(ctx, pid))
	case models.EntityTypePlaylist:
		return asEntities(r.Playlists.FindByProjectID(ctx, pid))
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownEntityType, et)
	}
}

// findChild resolves one entity of the given kind inside the current
// project, by full id or unique id prefix.
func (a *App) findChild(ctx context.Context, et models.EntityType, id string) (models.Entity, error) {
	if id == "" {
		return nil, common.ErrorNotFound
	}

	list, err := a.findChildren(ctx, et)
	if err != nil {
		return nil, err
	}

	var match models.Entity
	for _, cand := range list {
		if cand.GetID() == id {
			return cand, nil
		}
		if strings.HasPrefix(cand.GetID(), id) {
			if match != nil {
				return nil, fmt.Errorf("%s id %q is ambiguous", et, id)
			}
			match = cand
		}
	}
	if match == nil {
		return nil, common.ErrorNotFound
	}
	return match, nil
}

// deleteChild removes one entity of the given kind from both stores.
func (a *App) deleteChild(ctx context.Context, et models.EntityType, id string) error {
	r := a.story.Repos()

	switch et {
	case models.EntityTypeChapter:
		return r.Chapters.Delete(ctx, id)
	case models.EntityTypeCharacter:
		return r.Characters.Delete(ctx, id)
	case models.EntityTypeLocation:
		return r.Locations.Delete(ctx, id)
	case models.EntityTypeOrganization:
		return r.Organizations.Delete(ctx, id)
	case models.EntityTypeNote:
		return r.Notes.Delete(ctx, id)
	case models.EntityTypeImage:
		return r.Images.Delete(ctx, id)
	case models.EntityTypeAudioTrack:
		return r.AudioTracks.Delete(ctx, id)
	case models.EntityTypePlaylist:
		return r.Playlists.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownEntityType, et)
	}
}

// describe produces the one-line listing label for an entity.
func describe(e models.Entity) string {
	switch v := e.(type) {
	case *models.Project:
		return v.Title
	case *models.Chapter:
		return fmt.Sprintf("%d. %s", v.Order, v.Title)
	case *models.Character:
		if v.Role != "" {
			return fmt.Sprintf("%s (%s)", v.Name, v.Role)
		}
		return v.Name
	case *models.Location:
		return v.Name
	case *models.Organization:
		return v.Name
	case *models.Note:
		return v.Title
	case *models.Image:
		return v.Prompt
	case *models.AudioTrack:
		return v.Title
	case *models.Playlist:
		return fmt.Sprintf("%s (%d tracks)", v.Name, len(v.TrackIDs))
	default:
		return e.GetID()
	}
}
