package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/client/client"
	"github.com/dmitrijs2005/readdaily/internal/common"
)

// Register prompts for name, e-mail, password and the initial categories,
// then creates the account.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.Categories(ctx); err != nil {
		return err
	}
	cats, err := getSimpleText(a.reader, "Choose categories (comma separated ids)", a.out)
	if err != nil {
		return err
	}

	if err := a.service.Register(ctx, name, email, password, splitList(cats)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! Type 'login' to sign in.")
	return nil
}

// Login authenticates with the e-mail given as argument, or prompted for,
// defaulting to the last signed-in account.
//
// A remote login that fails because the server is unreachable switches the
// prompt to offline mode.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		prompt := "Enter email"
		last := a.service.LastEmail(ctx)
		if last != "" {
			prompt = fmt.Sprintf("Enter email [%s]", last)
		}
		text, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		email = strings.TrimSpace(text)
		if email == "" {
			email = last
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.service.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) && a.currentMode() != ModeLocal {
			a.setMode(ModeOffline)
		}
		a.logger.Warn(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.session = sess
	if a.currentMode() == ModeOffline {
		a.setMode(ModeOnline)
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", sess.Email, sess.Role)
	return nil
}

// Logout forgets the session locally and on the service.
func (a *App) Logout(ctx context.Context) error {
	if err := a.service.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
