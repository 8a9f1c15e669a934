package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	hasProject() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	NewProject(ctx context.Context) error
	Projects(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	DeleteProject(ctx context.Context) error
	AddChapter(ctx context.Context) error
	AddNote(ctx context.Context) error
	AddCharacter(ctx context.Context) error
	AddLocation(ctx context.Context) error
	AddOrganization(ctx context.Context) error
	AddImage(ctx context.Context) error
	AddTrack(ctx context.Context) error
	NewPlaylist(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, exit"
	helpNoProject = "Available commands: projects, newproject, open <id>, sync, status, logout, exit"
	helpProject   = "Available commands: projects, newproject, open <id>, delproject, " +
		"addchapter, addnote, addcharacter, addlocation, addorg, addimage, addtrack, newplaylist, " +
		"(l)ist [type], show <type> <id>, delete <type> <id>, sync, status, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the StoryKeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as arguments, and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Commands requiring a login or an opened project are rejected with a hint
// instead of being dispatched, so handlers can assume their preconditions.
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sk> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpLoggedOut)
			case !a.hasProject():
				printlnFn(helpNoProject)
			default:
				printlnFn(helpProject)
			}
			continue
		case "status":
			printlnFn(statusFn())
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "register":
				_ = a.Register(ctx)
			case "login":
				_ = a.Login(ctx)
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "projects":
			_ = a.Projects(ctx)

		case "newproject":
			_ = a.NewProject(ctx)

		case "open":
			_ = a.Open(ctx, args)

		case "sync":
			_ = a.Sync(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "delproject", "addchapter", "addnote", "addcharacter", "addlocation",
			"addorg", "addimage", "addtrack", "newplaylist", "l", "list", "show", "delete":
			if !a.hasProject() {
				printlnFn("Open a project first ('projects' to list, 'open <id>')")
				continue
			}
			switch cmd {
			case "delproject":
				_ = a.DeleteProject(ctx)
			case "addchapter":
				_ = a.AddChapter(ctx)
			case "addnote":
				_ = a.AddNote(ctx)
			case "addcharacter":
				_ = a.AddCharacter(ctx)
			case "addlocation":
				_ = a.AddLocation(ctx)
			case "addorg":
				_ = a.AddOrganization(ctx)
			case "addimage":
				_ = a.AddImage(ctx)
			case "addtrack":
				_ = a.AddTrack(ctx)
			case "newplaylist":
				_ = a.NewPlaylist(ctx)
			case "l", "list":
				_ = a.List(ctx, args)
			case "show":
				_ = a.Show(ctx, args)
			case "delete":
				_ = a.Delete(ctx, args)
			}

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
