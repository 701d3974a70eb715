package cli

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/inkhive/internal/render"
	"github.com/dmitrymomot/inkhive/pkg/blog"
)

func runLogin(ctx context.Context, a *App, args []string) error {
	fs := newFlags("login", a)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password; read from standard input when omitted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds := blog.Credentials{Username: *username, Password: *password}
	if creds.Password == "" {
		line, err := a.readLine()
		if err != nil {
			return err
		}
		creds.Password = line
	}

	sess, err := a.sessions.Authenticate(ctx, creds)
	if err != nil {
		return err
	}
	if err := a.render.Message("Logged in as %s until %s.", sess.User.Username, sess.ExpiresAt.Local().Format("01/02/2006 15:04")); err != nil {
		return err
	}
	if a.render.Format() != render.FormatTable {
		return a.render.User(sess.User)
	}
	return nil
}

func runLogout(ctx context.Context, a *App, _ []string) error {
	if err := a.sessions.End(ctx); err != nil {
		return err
	}
	return a.render.Message("Logged out.")
}

func runWhoami(ctx context.Context, a *App, _ []string) error {
	sess, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	if err := a.render.User(sess.User); err != nil {
		return err
	}
	return a.render.Message("Session expires %s.", sess.ExpiresAt.Local().Format("01/02/2006 15:04"))
}

func runRegister(ctx context.Context, a *App, args []string) error {
	fs := newFlags("register", a)
	in := blog.Registration{}
	fs.StringVar(&in.Username, "u", "", "username")
	fs.StringVar(&in.Email, "e", "", "email address")
	fs.StringVar(&in.Password, "p", "", "password; read from standard input when omitted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Standard input supplies the password and then its confirmation.
	if in.Password == "" {
		line, err := a.readLine()
		if err != nil {
			return err
		}
		in.Password = line
		if in.PasswordConfirm, err = a.readLine(); err != nil {
			return err
		}
	} else {
		in.PasswordConfirm = in.Password
	}

	user, err := a.api.Register(ctx, in)
	if err != nil {
		return err
	}
	if err := a.render.Message("Registered %s. Log in with: inkhive login -u %s", user.Username, user.Username); err != nil {
		return err
	}
	if a.render.Format() != render.FormatTable {
		return a.render.User(*user)
	}
	return nil
}

func runServe(ctx context.Context, a *App, args []string) error {
	if a.serve == nil {
		return ErrNoServer
	}
	return a.serve(ctx, args)
}

// exactArgs checks the positional argument count of a subcommand.
func exactArgs(args []string, n int, names string) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %s", ErrUsage, names)
	}
	return nil
}
