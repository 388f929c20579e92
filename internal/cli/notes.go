package cli

import "github.com/shubGupta10/notenest/internal/notes"

type NoteAddCmd struct {
	Title    string `arg:"" help:"Note title."`
	Content  string `short:"c" help:"Note body." default:""`
	Category string `short:"g" help:"Category label." default:"general"`
}

func (c *NoteAddCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	note, err := ctx.Notes.Save(ctx.Ctx, user.ID, c.Title, c.Category, c.Content)
	if err != nil {
		return err
	}
	ctx.printf("Saved note %q (ID: %s)\n", note.Title, note.ID)
	return nil
}

type NoteListCmd struct{}

func (c *NoteListCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	list := ctx.Notes.ListByUser(ctx.Ctx, user.ID)
	if len(list) == 0 {
		ctx.printf("No notes yet.\n")
		return nil
	}
	for _, note := range list {
		ctx.printf("%s  [%s]  %s\n", note.ID, note.Category, note.Title)
	}
	return nil
}

type NoteShowCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NoteShowCmd) Run(ctx *Context) error {
	if _, err := ctx.requireUser(); err != nil {
		return err
	}

	note := ctx.Notes.FetchByID(ctx.Ctx, c.ID)
	if note == nil {
		ctx.printf("Note not found.\n")
		return nil
	}
	ctx.printf("Title:    %s\n", note.Title)
	ctx.printf("Category: %s\n", note.Category)
	ctx.printf("Created:  %s\n", note.CreatedAt.Format("2006-01-02 15:04"))
	ctx.printf("\n%s\n", note.Content)
	return nil
}

type NoteEditCmd struct {
	ID       string  `arg:"" help:"Note ID."`
	Title    *string `short:"t" help:"New title."`
	Content  *string `short:"c" help:"New body."`
	Category *string `short:"g" help:"New category."`
}

func (c *NoteEditCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	updates := notes.UpdatedFields{Title: c.Title, Content: c.Content, Category: c.Category}
	note := ctx.Notes.Edit(ctx.Ctx, user.ID, c.ID, updates)
	if note == nil {
		ctx.printf("Note was not updated.\n")
		return nil
	}
	ctx.printf("Updated note %q.\n", note.Title)
	return nil
}

type NoteRmCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NoteRmCmd) Run(ctx *Context) error {
	user, err := ctx.requireUser()
	if err != nil {
		return err
	}

	if !ctx.Notes.Delete(ctx.Ctx, user.ID, c.ID) {
		ctx.printf("Note was not deleted.\n")
		return nil
	}
	ctx.printf("Note deleted.\n")
	return nil
}
