package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// AddImage prompts for a description and a file path and attaches the image
// to the open project. The payload is uploaded to object storage, so the
// command needs the backend to be reachable.
func (a *App) AddImage(ctx context.Context) error {
	prompt, err := getSimpleText(a.reader, "Enter image description", os.Stdout)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Enter path to the image file", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error reading file: %s", err.Error())
		return err
	}

	img, err := a.story.CreateImage(ctx, a.currentProject, prompt, data)
	if err != nil {
		log.Printf("error adding image (is the server reachable?): %s", err.Error())
		return err
	}

	fmt.Printf("Added image %s\n", shortID(img.ID))
	return nil
}

// AddTrack prompts for a title, duration and a file path and attaches the
// audio track to the open project. Like AddImage, it needs the backend.
func (a *App) AddTrack(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter track title", os.Stdout)
	if err != nil {
		return err
	}
	duration, err := getNumber(a.reader, "Enter duration in seconds (optional)", os.Stdout)
	if err != nil {
		log.Printf("%s", err.Error())
		return err
	}
	path, err := getSimpleText(a.reader, "Enter path to the audio file", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error reading file: %s", err.Error())
		return err
	}

	tr, err := a.story.CreateAudioTrack(ctx, a.currentProject, title, duration, data)
	if err != nil {
		log.Printf("error adding track (is the server reachable?): %s", err.Error())
		return err
	}

	fmt.Printf("Added track %q (%s)\n", tr.Title, shortID(tr.ID))
	return nil
}

// NewPlaylist prompts for a name and a list of track ids and stores the
// playlist. Ids may be unique prefixes; unknown ids are dropped with a
// warning inside the service.
func (a *App) NewPlaylist(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter playlist name", os.Stdout)
	if err != nil {
		return err
	}
	raw, err := getMultiline(a.reader, "Enter track ids, one per line", os.Stdout)
	if err != nil {
		return err
	}

	var trackIDs []string
	for _, line := range strings.Fields(raw) {
		tr, err := a.findChild(ctx, models.EntityTypeAudioTrack, line)
		if err != nil {
			log.Printf("skipping track %q: %s", line, err.Error())
			continue
		}
		trackIDs = append(trackIDs, tr.GetID())
	}

	pl, err := a.story.CreatePlaylist(ctx, a.currentProject, name, trackIDs)
	if err != nil {
		log.Printf("error creating playlist: %s", err.Error())
		return err
	}

	fmt.Printf("Created playlist %q with %d tracks (%s)\n", pl.Name, len(pl.TrackIDs), shortID(pl.ID))
	return nil
}
