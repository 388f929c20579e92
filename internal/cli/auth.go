package cli

type LoginCmd struct{}

func (c *LoginCmd) Run(ctx *Context) error {
	if ctx.Session.User() != nil {
		ctx.printf("Already logged in as %s.\n", ctx.Session.User().Email)
		return nil
	}
	if !ctx.Session.Login(ctx.Ctx) {
		ctx.printf("Login failed.\n")
		return nil
	}
	user := ctx.Session.User()
	ctx.printf("Logged in as %s <%s>.\n", user.Name, user.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if !ctx.Session.Logout(ctx.Ctx) {
		ctx.printf("Logout failed.\n")
		return nil
	}
	ctx.printf("Logged out.\n")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	user := ctx.Session.FetchUser(ctx.Ctx)
	if user == nil {
		user = ctx.Session.User()
	}
	if user == nil {
		ctx.printf("Not logged in.\n")
		return nil
	}
	verified := "no"
	if user.EmailVerified {
		verified = "yes"
	}
	ctx.printf("User:     %s\n", user.Name)
	ctx.printf("Email:    %s (verified: %s)\n", user.Email, verified)
	ctx.printf("ID:       %s\n", user.ID)
	if user.Avatar != "" {
		ctx.printf("Avatar:   %s\n", user.Avatar)
	}
	if !user.Registration.IsZero() {
		ctx.printf("Since:    %s\n", user.Registration.Format("2006-01-02"))
	}
	return nil
}
