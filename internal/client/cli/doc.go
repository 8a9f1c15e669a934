// Package cli implements the interactive StoryKeeper console.
//
// # Overview
//
// The console is a plain read-eval-print loop. Before login only account
// commands are available; a successful (or offline) login opens the user's
// local workspace and unlocks the project commands. Most commands operate on
// the currently opened project.
//
// # Connectivity
//
// The app tracks backend reachability in App.Mode. A background watcher
// pings the server on a configurable interval and flips the mode when
// connectivity changes; regaining the connection triggers a sync pass so a
// reconnected session converges without user action. Command handlers never
// hard-fail on an unreachable backend: writes land locally and are pushed by
// the next pass.
//
// # Testing seams
//
// User interaction goes through package-level function variables
// (printlnFn, getSimpleText, getPassword, getMultiline, readPassword) so
// tests can script a session without a terminal.
package cli
