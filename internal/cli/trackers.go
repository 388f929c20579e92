package cli

type TrackerAddCmd struct {
	Name string `arg:"" help:"Tracker name."`
}

func (c *TrackerAddCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	tracker, err := ctx.Trackers.Create(ctx.Ctx, user.ID, c.Name)
	if err != nil {
		return err
	}
	ctx.printf("Created tracker %q (ID: %s)\n", tracker.Name, tracker.ID)
	return nil
}

type TrackerListCmd struct{}

func (c *TrackerListCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	list := ctx.Trackers.List(ctx.Ctx, user.ID)
	if len(list) == 0 {
		ctx.printf("No trackers yet.\n")
		return nil
	}
	for _, tracker := range list {
		tally, err := ctx.Reconciler.Tally(ctx.Ctx, user.ID, tracker.ID)
		if err != nil {
			ctx.printf("%s  %s\n", tracker.ID, tracker.Name)
			continue
		}
		ctx.printf("%s  %s  (done %d, missed %d)\n", tracker.ID, tracker.Name, tally.Completed, tally.Missed)
	}
	return nil
}

type TrackerRenameCmd struct {
	ID   string `arg:"" help:"Tracker ID."`
	Name string `arg:"" help:"New name."`
}

func (c *TrackerRenameCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	result, _ := ctx.Trackers.Rename(ctx.Ctx, c.ID, user.ID, c.Name)
	ctx.printf("%s\n", result.Message)
	return nil
}

type TrackerRmCmd struct {
	ID string `arg:"" help:"Tracker ID."`
}

func (c *TrackerRmCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	result := ctx.Trackers.Delete(ctx.Ctx, c.ID, user.ID)
	ctx.printf("%s\n", result.Message)
	return nil
}
