package cli

import (
	"context"
	"fmt"
	"log"
)

// Sync runs one reconciliation pass against the backend: local deletions are
// replayed, remote deletions applied, and entities present on only one side
// are copied to the other.
func (a *App) Sync(ctx context.Context) error {
	if err := a.story.Sync(ctx); err != nil {
		log.Printf("Sync failed: %s", err.Error())
		return err
	}
	fmt.Println("Sync complete")
	return nil
}
