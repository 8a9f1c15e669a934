package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// NewProject prompts for a title and synopsis, creates the project and
// opens it.
func (a *App) NewProject(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter project title", os.Stdout)
	if err != nil {
		return err
	}
	synopsis, err := getMultiline(a.reader, "Enter synopsis", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.story.CreateProject(ctx, title, synopsis)
	if err != nil {
		log.Printf("error creating project: %s", err.Error())
		return err
	}

	a.currentProject = p.ID
	fmt.Printf("Created and opened project %q (%s)\n", p.Title, shortID(p.ID))
	return nil
}

// Projects lists every project in the workspace.
func (a *App) Projects(ctx context.Context) error {
	list, err := a.story.Repos().Projects.FindAll(ctx)
	if err != nil {
		log.Printf("error listing projects: %s", err.Error())
		return err
	}
	if len(list) == 0 {
		fmt.Println("No projects yet ('newproject' to create one)")
		return nil
	}
	for _, p := range list {
		marker := " "
		if p.ID == a.currentProject {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, p.ID, p.Title)
	}
	return nil
}

// Open makes the given project current. The id may be passed as an argument
// or entered at the prompt; a unique id prefix is enough.
func (a *App) Open(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = getSimpleText(a.reader, "Enter project id", os.Stdout)
		if err != nil {
			return err
		}
	}

	p, err := a.findProject(ctx, id)
	if err != nil {
		log.Printf("error opening project: %s", err.Error())
		return err
	}

	a.currentProject = p.ID
	fmt.Printf("Opened project %q (%s)\n", p.Title, shortID(p.ID))
	return nil
}

// DeleteProject deletes the current project and everything it owns after an
// explicit confirmation.
func (a *App) DeleteProject(ctx context.Context) error {
	answer, err := getSimpleText(a.reader,
		"Delete the open project and everything in it? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.story.DeleteProject(ctx, a.currentProject); err != nil {
		log.Printf("error deleting project: %s", err.Error())
		return err
	}

	a.currentProject = ""
	fmt.Println("Project deleted")
	return nil
}
