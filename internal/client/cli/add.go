package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// AddChapter prompts for a title and body and appends a chapter to the open
// project. The chapter number is assigned automatically.
func (a *App) AddChapter(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter chapter title", os.Stdout)
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Enter chapter text", os.Stdout)
	if err != nil {
		return err
	}

	ch, err := a.story.CreateChapter(ctx, a.currentProject, title, body)
	if err != nil {
		log.Printf("error adding chapter: %s", err.Error())
		return err
	}

	fmt.Printf("Added chapter %d: %q (%s)\n", ch.Order, ch.Title, shortID(ch.ID))
	return nil
}

// AddNote prompts for a title and free-form text and stores a note.
func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter note title", os.Stdout)
	if err != nil {
		return err
	}
	text, err := getMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		return err
	}

	n, err := a.story.CreateNote(ctx, a.currentProject, title, text)
	if err != nil {
		log.Printf("error adding note: %s", err.Error())
		return err
	}

	fmt.Printf("Added note %q (%s)\n", n.Title, shortID(n.ID))
	return nil
}

// AddCharacter prompts for the character's name, role and biography.
func (a *App) AddCharacter(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter character name", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Enter role (optional)", os.Stdout)
	if err != nil {
		return err
	}
	bio, err := getMultiline(a.reader, "Enter biography", os.Stdout)
	if err != nil {
		return err
	}

	c, err := a.story.CreateCharacter(ctx, a.currentProject, name, role, bio)
	if err != nil {
		log.Printf("error adding character: %s", err.Error())
		return err
	}

	fmt.Printf("Added character %q (%s)\n", c.Name, shortID(c.ID))
	return nil
}

// AddLocation prompts for a place name and description.
func (a *App) AddLocation(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter location name", os.Stdout)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	l, err := a.story.CreateLocation(ctx, a.currentProject, name, desc)
	if err != nil {
		log.Printf("error adding location: %s", err.Error())
		return err
	}

	fmt.Printf("Added location %q (%s)\n", l.Name, shortID(l.ID))
	return nil
}

// AddOrganization prompts for a group name and purpose.
func (a *App) AddOrganization(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter organization name", os.Stdout)
	if err != nil {
		return err
	}
	purpose, err := getMultiline(a.reader, "Enter purpose", os.Stdout)
	if err != nil {
		return err
	}

	o, err := a.story.CreateOrganization(ctx, a.currentProject, name, purpose)
	if err != nil {
		log.Printf("error adding organization: %s", err.Error())
		return err
	}

	fmt.Printf("Added organization %q (%s)\n", o.Name, shortID(o.ID))
	return nil
}
