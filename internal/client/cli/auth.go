package cli

import (
	"context"
	"fmt"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/api"
	"github.com/vinaykumardeekonda/srsp-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and attempts to create a
// new account via the AuthService. Registration does not log the user in;
// they authenticate with "login" afterwards.
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

	if err := a.auth.Register(ctx, name, email, password); err != nil {
		a.log.Warn(ctx, "registration failed", "error", err)
		fmt.Fprintln(a.out, api.UserMessage(err))
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// Login prompts for credentials and authenticates against the backend. On
// success the session store holds the new identity; on failure any prior
// session is already cleared by the AuthService.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, api.UserMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", user.Email)
	return nil
}

// Logout ends the session. The local state is cleared even when the backend
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the current identity as the session store knows it.
func (a *App) WhoAmI(_ context.Context) error {
	s := a.store.Current()
	if s == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s alias=%s\n", s.Name, s.Email, s.Role, s.Alias)
	return nil
}
