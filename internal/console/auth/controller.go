package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/socconsole/internal/console/api"
	"github.com/dmitrijs2005/socconsole/internal/console/models"
	"github.com/dmitrijs2005/socconsole/internal/console/session"
	"github.com/dmitrijs2005/socconsole/internal/logging"
)

type Authenticator interface {
	Signin(ctx context.Context, identifier, password string) (*api.SigninResponse, error)
	Signup(ctx context.Context, u models.NewUser) (*models.User, error)
}

// SessionStore is the part of *session.Store the controller writes to.
type SessionStore interface {
	Epoch() uint64
	LoginSince(ctx context.Context, epoch uint64, token string, fields session.ProfileFields) bool
}

type Controller struct {
	auth  Authenticator
	store SessionStore
	log   logging.Logger
}

func NewController(auth Authenticator, store SessionStore, log logging.Logger) *Controller {
	return &Controller{auth: auth, store: store, log: log}
}

// Login signs in and stores the session. Any failure, local or remote,
// yields false and leaves the store untouched. A response that arrives
// after a logout issued meanwhile is dropped.
func (c *Controller) Login(ctx context.Context, identifier, password string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		c.log.Info(ctx, "login skipped: missing credentials")
		return false
	}

	epoch := c.store.Epoch()
	resp, err := c.auth.Signin(ctx, identifier, password)
	if err != nil {
		c.log.Warn(ctx, "signin failed", "identifier", identifier, "error", err)
		return false
	}
	return c.store.LoginSince(ctx, epoch, resp.Token, resp.Fields(identifier))
}

// Signup creates a user. It does not log the new user in.
func (c *Controller) Signup(ctx context.Context, u models.NewUser) (*models.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	switch {
	case u.Name == "":
		return nil, &ValidationError{Field: "name", Message: "is required"}
	case u.Email == "":
		return nil, &ValidationError{Field: "email", Message: "is required"}
	case u.Password == "":
		return nil, &ValidationError{Field: "password", Message: "is required"}
	}
	return c.auth.Signup(ctx, u)
}
