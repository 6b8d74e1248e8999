package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

const (
	usersPath           = "/api/users"
	assignableUsersPath = "/api/users/only-users"
)

type UsersAPI struct {
	d Doer
}

func (u *UsersAPI) List(ctx context.Context) ([]models.User, error) {
	return u.list(ctx, usersPath)
}

// ListAssignable returns the users alerts can be assigned to.
func (u *UsersAPI) ListAssignable(ctx context.Context) ([]models.User, error) {
	return u.list(ctx, assignableUsersPath)
}

func (u *UsersAPI) list(ctx context.Context, path string) ([]models.User, error) {
	raw, err := u.d.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](path, raw)
}

// Roles lists the roles offered when creating a user. There is no backend
// endpoint for it yet.
func (u *UsersAPI) Roles() []models.RoleOption {
	return []models.RoleOption{
		{Value: models.RoleUser, Label: "User"},
		{Value: models.RoleAdmin, Label: "Administrator"},
	}
}
