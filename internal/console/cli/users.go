package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socconsole/internal/common"
	"github.com/dmitrijs2005/socconsole/internal/console/auth"
	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

// AddUser prompts for a new user's details and creates the account.
func (a *App) AddUser(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.notify("Access Denied", "Sign in first.")
		return common.ErrNotLoggedIn
	}

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	mobile, err := getSimpleText(a.reader, "Mobile (optional)", a.out)
	if err != nil {
		return err
	}

	roles := a.api.Users.Roles()
	opts := make([]string, 0, len(roles))
	for _, r := range roles {
		opts = append(opts, fmt.Sprintf("%s (%s)", r.Value, r.Label))
	}
	roleText, err := getSimpleText(a.reader, fmt.Sprintf("Role [%s]: %s", roles[0].Value, strings.Join(opts, ", ")), a.out)
	if err != nil {
		return err
	}
	role := roles[0].Value
	if roleText != "" {
		role = ""
		for _, r := range roles {
			if strings.EqualFold(roleText, string(r.Value)) {
				role = r.Value
			}
		}
		if role == "" {
			a.notify("Create user failed", fmt.Sprintf("unknown role %q", roleText))
			return fmt.Errorf("unknown role %q", roleText)
		}
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Signup(ctx, models.NewUser{
		Name:     name,
		Email:    email,
		Password: string(password),
		Mobile:   mobile,
		Role:     role,
	})
	if err != nil {
		var ve *auth.ValidationError
		if errors.As(err, &ve) {
			a.notify("Missing information", ve.Error())
		} else {
			a.track(err)
			a.notify("Create user failed", err.Error())
		}
		return err
	}

	a.cache.Invalidate("users/")
	a.notify("User created", fmt.Sprintf("%s (%s)", u.Name, label(string(u.Role))))
	return nil
}
