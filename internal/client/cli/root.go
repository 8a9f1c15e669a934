package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// getStatus renders the prompt annotation: logged-in user, connectivity
// mode and the opened project, whichever of them are known.
func (a *App) getStatus() string {
	var parts []string
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if a.Mode != "" {
		parts = append(parts, string(a.Mode))
	}
	if a.currentProject != "" {
		parts = append(parts, shortID(a.currentProject))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// shortID abbreviates a uuid for prompt and listing output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Root greets the user, runs the initial login and hands control to the
// command loop. The online watcher keeps flipping Mode in the background
// for as long as ctx lives.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to StoryKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.Login(ctx)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, a.getStatus, scanner)
}
