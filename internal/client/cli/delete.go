package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// Delete removes one entity from the open project: "delete <type> <id>".
// Both arguments may be omitted and are then prompted for; the id may be a
// unique prefix. Deleting a whole project goes through 'delproject'.
//
// The deletion is recorded in the tombstone ledger, so it survives offline
// periods and is replayed to the backend by the next sync pass.
func (a *App) Delete(ctx context.Context, args []string) error {
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
	if et == models.EntityTypeProject {
		fmt.Println("Use 'delproject' to delete the open project")
		return nil
	}

	if idArg == "" {
		if idArg, err = getSimpleText(a.reader, "Enter id", os.Stdout); err != nil {
			return err
		}
	}

	e, err := a.findChild(ctx, et, idArg)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	if err := a.deleteChild(ctx, et, e.GetID()); err != nil {
		log.Printf("error deleting %s: %s", et, err.Error())
		return err
	}

	fmt.Printf("Deleted %s %s\n", et, shortID(e.GetID()))
	return nil
}
