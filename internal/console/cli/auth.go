package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/socconsole/internal/common"
	"github.com/dmitrijs2005/socconsole/internal/console/auth"
	"github.com/dmitrijs2005/socconsole/internal/console/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. The identifier typed last (or
// the one set by a password reset) is offered as the default; after a reset
// an empty password means the new one.
//
// A failed attempt prints "Access Denied" and keeps the identifier for the
// next try. On success cached data is marked stale and the navigator moves
// on to the dashboard.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.notify("Already signed in", a.store.User().DisplayName())
		return nil
	}

	prompt := "Enter email"
	if a.identifier != "" {
		prompt += fmt.Sprintf(" [%s]", a.identifier)
	}
	identifier, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if identifier == "" {
		identifier = a.identifier
	}

	pwPrompt := "Enter password"
	if a.prefillPassword != nil {
		pwPrompt = "Enter password (empty for the one you just set)"
	}
	password, err := getPassword(a.reader, pwPrompt, a.out)
	if err != nil {
		return err
	}
	if len(password) == 0 && a.prefillPassword != nil {
		password = append([]byte(nil), a.prefillPassword...)
	}
	defer common.WipeByteArray(password)

	a.identifier = identifier

	var ok bool
	a.deferRender(ctx, func() {
		ok = a.auth.Login(ctx, identifier, string(password))
		if !ok {
			a.notify("Access Denied", "Invalid credentials. Please try again.")
			return
		}
		common.WipeByteArray(a.prefillPassword)
		a.prefillPassword = nil
		a.cache.Invalidate()
		a.notify("Access Granted", "Redirecting to the dashboard...")
	})
	return nil
}

// deferRender holds back route changes raised while fn runs and renders the
// last one afterwards.
func (a *App) deferRender(ctx context.Context, fn func()) {
	a.deferring = true
	a.pending = nil
	fn()
	a.deferring = false
	if a.pending != nil {
		d := *a.pending
		a.pending = nil
		a.render(ctx, d)
	}
}

// Logout clears the session (which drops every cached query), lets the
// navigator move to the login view and then confirms.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not signed in")
		return nil
	}

	err := a.store.Logout(ctx)
	a.alertsPage = 1
	if err != nil {
		a.notify("Signed out", "but the local session file could not be cleared: "+err.Error())
		return err
	}
	a.notify("Signed out", "")
	return nil
}

// Whoami prints the signed-in profile and, for JWTs, when the token expires.
func (a *App) Whoami(ctx context.Context) error {
	st := a.store.Snapshot()
	if !st.Authenticated() {
		a.println("Not signed in")
		return common.ErrNotLoggedIn
	}

	u := st.User
	if u == nil {
		a.println("Signed in (profile unavailable)")
	} else {
		a.printf("Name:  %s\n", orDash(common.Deref(u.Name)))
		a.printf("Email: %s\n", orDash(common.Deref(u.Email)))
		a.printf("Role:  %s\n", label(common.Deref(u.Role)))
		if u.ID != nil {
			a.printf("ID:    %d\n", *u.ID)
		}
	}

	if exp, ok := session.TokenExpiry(st.Token); ok {
		state := "valid"
		if exp.Before(time.Now()) {
			state = "expired"
		}
		a.printf("Token: expires %s (%s)\n", exp.UTC().Format(time.RFC3339), state)
	} else {
		a.println("Token: opaque")
	}
	if a.Mode != "" {
		a.printf("Mode:  %s\n", a.Mode)
	}
	return nil
}

// Forgot runs the password reset dialog. Typing "cancel" (or closing input)
// at any prompt discards the flow. On success the login form is prefilled
// with the new credentials; the user still has to log in.
func (a *App) Forgot(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already signed in")
		return nil
	}

	flow := auth.NewResetFlow(a.api.Auth, a.identifier)
	defer flow.Close()

	a.println("Reset password (type 'cancel' to close)")
	for {
		var err error
		switch st := flow.Step().(type) {
		case auth.AwaitingEmail:
			err = a.forgotEmail(ctx, flow, st)
		case auth.AwaitingOTP:
			err = a.forgotOTP(ctx, flow, st)
		case auth.AwaitingNewPassword:
			err = a.forgotPassword(ctx, flow)
		case auth.Completed:
			a.identifier = st.Credentials.Identifier
			common.WipeByteArray(a.prefillPassword)
			a.prefillPassword = []byte(st.Credentials.Password)
			a.notify("Password updated", "You can now sign in with your new password.")
			a.renderLogin()
			return nil
		default:
			return nil
		}

		if errors.Is(err, errCancelled) || errors.Is(err, io.EOF) {
			flow.Close()
			a.println("Password reset cancelled")
			return nil
		}
		if err != nil {
			a.reportResetError(err)
			var ve *auth.ValidationError
			var se *auth.StepError
			if !errors.As(err, &ve) && !errors.As(err, &se) {
				return err
			}
		}
	}
}

var errCancelled = errors.New("cancelled")

func (a *App) prompt(text string) (string, error) {
	s, err := getSimpleText(a.reader, text, a.out)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(s, "cancel") {
		return "", errCancelled
	}
	return s, nil
}

func (a *App) forgotEmail(ctx context.Context, flow *auth.ResetFlow, st auth.AwaitingEmail) error {
	text := "Email address"
	if st.Email != "" {
		text += fmt.Sprintf(" [%s]", st.Email)
	}
	email, err := a.prompt(text)
	if err != nil {
		return err
	}
	if email == "" {
		email = st.Email
	}
	if err := flow.SendOTP(ctx, email); err != nil {
		return err
	}
	a.notify("OTP sent", fmt.Sprintf("We have sent a 6-digit OTP to %s.", email))
	return nil
}

func (a *App) forgotOTP(ctx context.Context, flow *auth.ResetFlow, st auth.AwaitingOTP) error {
	otp, err := a.prompt(fmt.Sprintf("Enter the 6-digit OTP sent to %s ('change' to use another email)", st.Email))
	if err != nil {
		return err
	}
	if strings.EqualFold(otp, "change") {
		return flow.ChangeEmail()
	}
	if err := flow.VerifyOTP(ctx, otp); err != nil {
		return err
	}
	a.notify("OTP verified", "Please enter your new password.")
	return nil
}

func (a *App) forgotPassword(ctx context.Context, flow *auth.ResetFlow) error {
	pw, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if string(pw) == "cancel" {
		return errCancelled
	}

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	_, err = flow.UpdatePassword(ctx, string(pw), string(confirm))
	return err
}

func (a *App) reportResetError(err error) {
	var ve *auth.ValidationError
	var se *auth.StepError
	switch {
	case errors.As(err, &ve) && ve.Field == "confirm":
		a.notify("Passwords do not match", "Make sure both password fields are identical.")
	case errors.As(err, &ve):
		a.notify("Missing information", ve.Error())
	case errors.As(err, &se):
		a.track(se.Err)
		a.notify(stepFailureTitle(se.Step), se.Err.Error())
	default:
		a.notify("Password reset failed", err.Error())
	}
}

func stepFailureTitle(step string) string {
	switch step {
	case auth.AwaitingEmail{}.Name():
		return "Unable to send OTP"
	case auth.AwaitingOTP{}.Name():
		return "Invalid OTP"
	case auth.AwaitingNewPassword{}.Name():
		return "Unable to update password"
	}
	return "Password reset failed"
}
