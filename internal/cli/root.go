// Package cli contains the notenest command implementations. Commands get
// their collaborators through Context, so tests can run them against stubs.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shubGupta10/notenest/internal/notes"
	"github.com/shubGupta10/notenest/internal/session"
	"github.com/shubGupta10/notenest/internal/trackers"
)

type Context struct {
	Ctx        context.Context
	Session    *session.Store
	Notes      *notes.Service
	Trackers   *trackers.Service
	Reconciler *trackers.Reconciler
	Stats      *trackers.Aggregator
	Out        io.Writer
}

// requireUser answers the cached identity or tells the caller to log in.
func (ctx *Context) requireUser() (*session.User, error) {
	user := ctx.Session.User()
	if user == nil {
		user = ctx.Session.FetchUser(ctx.Ctx)
	}
	if user == nil {
		return nil, fmt.Errorf("not logged in, run \"notenest login\" first")
	}
	return user, nil
}

func (ctx *Context) printf(format string, args ...any) {
	fmt.Fprintf(ctx.Out, format, args...)
}
