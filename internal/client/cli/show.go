package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// Show prints one entity in full: "show <type> <id>". Both arguments may be
// omitted and are then prompted for; the id may be a unique prefix.
//
// For images and audio tracks the binary payload is fetched into the local
// cache when missing, so the printed location is a file on disk whenever the
// payload is obtainable.
func (a *App) Show(ctx context.Context, args []string) error {
	var typeArg, idArg string
	switch len(args) {
	case 0:
	case 1:
		typeArg = args[0]
	default:
		typeArg, idArg = args[0], args[1]
	}

	var err error
	if typeArg == "" {
		if typeArg, err = getSimpleText(a.reader, "Enter entity type", os.Stdout); err != nil {
			return err
		}
	}
	et, err := models.ParseEntityType(typeArg)
	if err != nil {
		log.Printf("%s", err.Error())
		return err
	}

	if idArg == "" {
		if idArg, err = getSimpleText(a.reader, "Enter id", os.Stdout); err != nil {
			return err
		}
	}

	if et == models.EntityTypeProject {
		p, err := a.findProject(ctx, idArg)
		if err != nil {
			log.Printf("error: %s", err.Error())
			return err
		}
		fmt.Printf("Project %s\nTitle: %s\nSynopsis: %s\nUpdated: %s\n",
			p.ID, p.Title, p.Synopsis, p.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	}

	e, err := a.findChild(ctx, et, idArg)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	a.materializeAsset(ctx, e)
	printEntity(e)
	return nil
}

// materializeAsset pulls the binary payload into the cache when the entity
// carries an object key rather than a cached file path.
func (a *App) materializeAsset(ctx context.Context, e models.Entity) {
	ref, ok := e.(models.HasAssetRef)
	if !ok || ref.AssetRef() == "" || filepath.IsAbs(ref.AssetRef()) {
		return
	}
	path, err := a.story.ResolveAsset(ctx, ref.AssetRef())
	if err != nil {
		log.Printf("payload not available locally: %s", err.Error())
		return
	}
	ref.SetAssetRef(path)
}

func printEntity(e models.Entity) {
	const tf = "2006-01-02 15:04"

	switch v := e.(type) {
	case *models.Chapter:
		fmt.Printf("Chapter %d: %s (%s)\nUpdated: %s\n\n%s\n",
			v.Order, v.Title, v.ID, v.UpdatedAt.Format(tf), v.Body)
	case *models.Character:
		fmt.Printf("Character: %s (%s)\nRole: %s\nUpdated: %s\n\n%s\n",
			v.Name, v.ID, v.Role, v.UpdatedAt.Format(tf), v.Biography)
	case *models.Location:
		fmt.Printf("Location: %s (%s)\nUpdated: %s\n\n%s\n",
			v.Name, v.ID, v.UpdatedAt.Format(tf), v.Description)
	case *models.Organization:
		fmt.Printf("Organization: %s (%s)\nUpdated: %s\n\n%s\n",
			v.Name, v.ID, v.UpdatedAt.Format(tf), v.Purpose)
	case *models.Note:
		fmt.Printf("Note: %s (%s)\nUpdated: %s\n\n%s\n",
			v.Title, v.ID, v.UpdatedAt.Format(tf), v.Text)
	case *models.Image:
		fmt.Printf("Image %s\nDescription: %s\nLocation: %s\nUpdated: %s\n",
			v.ID, v.Prompt, v.URL, v.UpdatedAt.Format(tf))
	case *models.AudioTrack:
		fmt.Printf("Track: %s (%s)\nDuration: %ds\nLocation: %s\nUpdated: %s\n",
			v.Title, v.ID, v.DurationSeconds, v.URL, v.UpdatedAt.Format(tf))
	case *models.Playlist:
		fmt.Printf("Playlist: %s (%s)\nUpdated: %s\n", v.Name, v.ID, v.UpdatedAt.Format(tf))
		for i, id := range v.TrackIDs {
			fmt.Printf("  %2d. %s\n", i+1, shortID(id))
		}
	default:
		fmt.Printf("%s (%s)\n", describe(e), e.GetID())
	}
}
