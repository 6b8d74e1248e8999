package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
	"github.com/dmitrijs2005/socconsole/internal/console/session"
)

const (
	signinPath         = "/api/auth/signin"
	signupPath         = "/api/auth/signup"
	sendOTPPath        = "/api/auth/send-otp"
	verifyOTPPath      = "/api/auth/verify-otp"
	updatePasswordPath = "/api/auth/update-password"
)

// FlexID is a user id the backend sends either as a number or as a numeric
// string. Anything else decodes to nil.
type FlexID struct {
	Value *int64
}

func (f *FlexID) UnmarshalJSON(b []byte) error {
	f.Value = nil
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if v, err := n.Int64(); err == nil {
			f.Value = &v
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			f.Value = &v
		}
	}
	return nil
}

// SigninResponse is the success body of the signin endpoint. Only Token is
// required.
type SigninResponse struct {
	Token    string `json:"token"`
	ID       FlexID `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Fields returns the profile fields for the session store, with identifier
// as the email fallback.
func (r SigninResponse) Fields(identifier string) session.ProfileFields {
	return session.ProfileFields{
		ID:         r.ID.Value,
		Name:       r.Name,
		FullName:   r.FullName,
		Email:      r.Email,
		Role:       r.Role,
		Identifier: identifier,
	}
}

type AuthAPI struct {
	d Doer
}

// Signin exchanges credentials for a token. A success body without a token
// is ErrMalformedResponse.
func (a *AuthAPI) Signin(ctx context.Context, identifier, password string) (*SigninResponse, error) {
	raw, err := a.d.Do(ctx, http.MethodPost, signinPath, map[string]string{
		"email":    identifier,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if !isObject(raw) {
		return nil, malformed(signinPath, nil)
	}
	var resp SigninResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, malformed(signinPath, err)
	}
	if resp.Token == "" {
		return nil, malformed(signinPath, nil)
	}
	return &resp, nil
}

func (a *AuthAPI) Signup(ctx context.Context, u models.NewUser) (*models.User, error) {
	raw, err := a.d.Do(ctx, http.MethodPost, signupPath, u)
	if err != nil {
		return nil, err
	}
	created, err := decodeObject[models.User](signupPath, raw)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AuthAPI) SendOTP(ctx context.Context, email string) error {
	_, err := a.d.Do(ctx, http.MethodPost, sendOTPPath, map[string]string{"email": email})
	return err
}

func (a *AuthAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := a.d.Do(ctx, http.MethodPost, verifyOTPPath, map[string]string{"email": email, "otp": otp})
	return err
}

func (a *AuthAPI) UpdatePassword(ctx context.Context, email, newPassword string) error {
	_, err := a.d.Do(ctx, http.MethodPost, updatePasswordPath, map[string]string{
		"email":       email,
		"newPassword": newPassword,
	})
	return err
}
