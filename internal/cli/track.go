package cli

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

type TrackCmd struct {
	TrackerID string `arg:"" help:"Tracker ID."`
	Date      string `short:"d" help:"Day to record (YYYY-MM-DD)." default:""`
	Missed    bool   `short:"m" help:"Record the day as missed instead of done."`
}

func (c *TrackCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}
	date, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	entry := ctx.Reconciler.RecordStatus(ctx.Ctx, user.ID, c.TrackerID, date, !c.Missed)
	if entry == nil {
		ctx.printf("Could not record the day.\n")
		return nil
	}

	outcome := "done"
	if !entry.Status {
		outcome = "missed"
	}
	ctx.printf("Recorded %s as %s.\n", entry.Date, outcome)

	if tally, err := ctx.Reconciler.Tally(ctx.Ctx, user.ID, c.TrackerID); err == nil {
		ctx.printf("Totals: %d done, %d missed.\n", tally.Completed, tally.Missed)
	}
	return nil
}

type StatusCmd struct {
	TrackerID string `arg:"" help:"Tracker ID."`
	Date      string `short:"d" help:"Day to check (YYYY-MM-DD)." default:""`
}

func (c *StatusCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}
	date, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	status := ctx.Reconciler.FetchStatus(ctx.Ctx, user.ID, c.TrackerID, date)
	if status.EntryID == "" {
		ctx.printf("Nothing recorded for %s.\n", date)
		return nil
	}
	outcome := "done"
	if !status.Status {
		outcome = "missed"
	}
	ctx.printf("%s: %s (entry %s)\n", status.Date, outcome, status.EntryID)
	return nil
}

type StatsCmd struct {
	TrackerID string `arg:"" help:"Tracker ID."`
	Month     int    `short:"m" help:"Month (1-12), defaults to the current month."`
	Year      int    `short:"y" help:"Year, defaults to the current year."`
}

func (c *StatsCmd) Validate() error {
	if c.Month < 0 || c.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	return nil
}

func (c *StatsCmd) Run(ctx *Context) error {
	if _, err := ctx.requireUser(); err != nil {
		return err
	}

	now := time.Now()
	month := time.Month(c.Month)
	if c.Month == 0 {
		month = now.Month()
	}
	year := c.Year
	if year == 0 {
		year = now.Year()
	}

	result := ctx.Stats.MonthlyStats(ctx.Ctx, c.TrackerID, month, year)
	if !result.OK {
		ctx.printf("%s\n", result.Message)
		return nil
	}

	stats := result.Data
	ctx.printf("Stats for %s %d:\n", month.String(), year)
	ctx.printf("  Entries: %d\n", stats.Total)
	ctx.printf("  Done:    %d (%.2f%%)\n", stats.Success, stats.SuccessPercentage)
	ctx.printf("  Missed:  %d (%.2f%%)\n", stats.Missed, stats.MissedPercentage)
	return nil
}

func resolveDay(value string) (string, error) {
	if value == "" {
		return time.Now().Format(dayFormat), nil
	}
	parsed, err := time.Parse(dayFormat, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return parsed.Format(dayFormat), nil
}
