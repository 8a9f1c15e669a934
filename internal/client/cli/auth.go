package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/storykeeper/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline
var getNumber = GetNumber

// Register prompts the user for a username and password and attempts to
// create a new account on the backend.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning. Any I/O or service error is returned
// unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// The method first attempts an online login. If the server is unreachable
// it falls back to opening the local workspace in offline mode: edits land
// on disk and the next sync pass pushes them. A login the server rejects
// (bad credentials) does not open a workspace.
//
// The password is securely wiped before returning. A nil error does not
// necessarily imply ModeOnline; inspect App.Mode for the final state.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	if userName == "" {
		log.Printf("Username must not be empty")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var mode Mode
	err = a.auth.Login(ctx, userName, password)
	switch {
	case err == nil:
		log.Printf("Login successful")
		mode = ModeOnline
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorValidation):
		log.Printf("Login unsuccessful: %s", err.Error())
		return nil
	default:
		log.Printf("Server unavailable, opening workspace offline...")
		mode = ModeOffline
	}

	if err := a.openWorkspace(userName); err != nil {
		log.Printf("error opening workspace: %s", err.Error())
		return err
	}
	a.setMode(mode)

	if mode == ModeOnline {
		go a.syncInBackground(ctx)
	}
	return nil
}

// Logout closes the workspace and discards the session tokens.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.closeWorkspace()
	fmt.Println("Logged out")
	return nil
}
