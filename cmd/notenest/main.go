package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/shubGupta10/notenest/internal/cli"
	"github.com/shubGupta10/notenest/internal/client"
	"github.com/shubGupta10/notenest/internal/notes"
	"github.com/shubGupta10/notenest/internal/session"
	"github.com/shubGupta10/notenest/internal/trackers"
)

// The consent flow ends on this URL; the CLI never serves it, the user
// copies it out of the browser's address bar.
const consentRedirectURL = "http://localhost/auth/complete"

var CLI struct {
	Version kong.VersionFlag
	URL     string `help:"Backend base URL." env:"NOTENEST_URL" default:"http://localhost:8080"`
	Cache   string `help:"Session cache file path." type:"path" default:"~/.config/notenest/session.json"`

	Login  cli.LoginCmd  `cmd:"" help:"Log in through the browser."`
	Logout cli.LogoutCmd `cmd:"" help:"Log out and forget the cached session."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the logged-in user."`

	Note struct {
		Add  cli.NoteAddCmd  `cmd:"" help:"Save a new note."`
		List cli.NoteListCmd `cmd:"" help:"List your notes."`
		Show cli.NoteShowCmd `cmd:"" help:"Show one note."`
		Edit cli.NoteEditCmd `cmd:"" help:"Edit a note."`
		Rm   cli.NoteRmCmd   `cmd:"" help:"Delete a note."`
	} `cmd:"" help:"Manage notes."`

	Tracker struct {
		Add    cli.TrackerAddCmd    `cmd:"" help:"Create a tracker."`
		List   cli.TrackerListCmd   `cmd:"" help:"List your trackers."`
		Rename cli.TrackerRenameCmd `cmd:"" help:"Rename a tracker."`
		Rm     cli.TrackerRmCmd     `cmd:"" help:"Delete a tracker and its entries."`
	} `cmd:"" help:"Manage habit trackers."`

	Track  cli.TrackCmd  `cmd:"" help:"Record today (or a given day) for a tracker."`
	Status cli.StatusCmd `cmd:"" help:"Check what is recorded for a day."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show a tracker's monthly statistics."`
}

func main() {
	parsed := kong.Parse(&CLI,
		kong.Name("notenest"),
		kong.Description("Notes and habit tracking from the terminal"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	backend := client.New(CLI.URL)
	opener := &cli.PromptOpener{In: os.Stdin, Out: os.Stdout}
	sessions := session.NewStore(backend, opener, afero.NewOsFs(), CLI.Cache, consentRedirectURL, "")
	sessions.Restore()

	appCtx := &cli.Context{
		Ctx:        sigCtx,
		Session:    sessions,
		Notes:      notes.NewService(backend),
		Trackers:   trackers.NewService(backend),
		Reconciler: trackers.NewReconciler(backend),
		Stats:      trackers.NewAggregator(backend),
		Out:        os.Stdout,
	}

	if err := parsed.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
