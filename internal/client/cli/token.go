package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobintake/internal/client/client"
	"github.com/dmitrijs2005/jobintake/internal/common"
)

// Token stores an access token read without echo.
func (a *App) Token(ctx context.Context) error {
	token, err := GetSecret("Access token", a.out)
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(a.out, "No token entered.")
		return nil
	}

	err = a.session.SetToken(ctx, token)
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		fmt.Fprintln(a.out, "That token has already expired.")
		return nil
	case errors.Is(err, common.ErrInvalidToken):
		fmt.Fprintln(a.out, "That token is malformed.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(a.out, "Token saved.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Forget deletes the stored token and the application history after asking.
func (a *App) Forget(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Delete the stored token and all application history?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := client.WipeLocalData(ctx, a.db); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Local data deleted.")
	return nil
}
