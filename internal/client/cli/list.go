package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// List prints the open project's entities. With no argument every kind is
// listed; with one, only that kind ("list chapter", "list note", ...).
func (a *App) List(ctx context.Context, args []string) error {
	types := childTypes
	if len(args) > 0 {
		et, err := models.ParseEntityType(args[0])
		if err != nil {
			log.Printf("%s", err.Error())
			return err
		}
		if et == models.EntityTypeProject {
			fmt.Println("Use 'projects' to list projects")
			return nil
		}
		types = []models.EntityType{et}
	}

	total := 0
	for _, et := range types {
		list, err := a.findChildren(ctx, et)
		if err != nil {
			log.Printf("error listing %s: %s", et, err.Error())
			return err
		}
		for _, e := range list {
			fmt.Printf("%-12s %s  %s\n", et, shortID(e.GetID()), describe(e))
		}
		total += len(list)
	}
	if total == 0 {
		fmt.Println("Nothing here yet")
	}
	return nil
}
