package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for a username and a password typed twice, creates the
// account and logs in with it. The passwords are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, "Choose a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(a.reader, "Repeat the password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		return errPasswordMismatch
	}

	acc, err := a.authService.Register(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account %s created.\n", acc.Username)

	return a.login(ctx, username, password)
}

// Login prompts for credentials and opens a session for this run.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.login(ctx, username, password)
}

func (a *App) login(ctx context.Context, username string, password []byte) error {
	acc, err := a.authService.Login(ctx, a.connID, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s. Current streak: %d.\n", acc.Username, acc.Stats.CurrentStreak)
	return nil
}

// Logout closes the session of this run.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrUnauthenticated
	}
	a.authService.Logout(ctx, a.connID)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
