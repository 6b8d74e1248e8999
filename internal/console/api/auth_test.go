package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

func TestFlexID(t *testing.T) {
	tests := []struct {
		in   string
		want *int64
	}{
		{`7`, ptr(int64(7))},
		{`"12"`, ptr(int64(12))},
		{`" 13 "`, ptr(int64(13))},
		{`"abc"`, nil},
		{`1.5`, nil},
		{`null`, nil},
		{`true`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FlexID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, f.Value)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestSignin(t *testing.T) {
	d := &fakeDoer{raw: `{"token":"abc","id":"4","name":"A","role":"analyst"}`}
	a := &AuthAPI{d: d}

	resp, err := a.Signin(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	assert.Equal(t, "abc", resp.Token)
	assert.Equal(t, int64(4), *resp.ID.Value)
	c := d.last(t)
	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "/api/auth/signin", c.path)
	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "x"}, c.body)

	f := resp.Fields("a@b.com")
	assert.Equal(t, "A", f.Name)
	assert.Equal(t, "a@b.com", f.Identifier)
	assert.Equal(t, "analyst", f.Role)
}

func TestSignin_MissingToken(t *testing.T) {
	for _, raw := range []string{`{"name":"A"}`, `{"token":""}`, ``, `[]`} {
		_, err := (&AuthAPI{d: &fakeDoer{raw: raw}}).Signin(context.Background(), "a", "b")
		assert.ErrorIs(t, err, ErrMalformedResponse, raw)
	}
}

func TestSignin_TransportErrorPassesThrough(t *testing.T) {
	boom := errors.New("401: nope")
	_, err := (&AuthAPI{d: &fakeDoer{err: boom}}).Signin(context.Background(), "a", "b")
	assert.ErrorIs(t, err, boom)
}

func TestOTPEndpoints(t *testing.T) {
	ctx := context.Background()
	d := &fakeDoer{raw: `{"message":"ok"}`}
	a := &AuthAPI{d: d}

	require.NoError(t, a.SendOTP(ctx, "a@b.com"))
	assert.Equal(t, call{http.MethodPost, "/api/auth/send-otp", map[string]string{"email": "a@b.com"}}, d.last(t))

	require.NoError(t, a.VerifyOTP(ctx, "a@b.com", "123456"))
	assert.Equal(t, call{http.MethodPost, "/api/auth/verify-otp", map[string]string{"email": "a@b.com", "otp": "123456"}}, d.last(t))

	require.NoError(t, a.UpdatePassword(ctx, "a@b.com", "n3w"))
	assert.Equal(t, call{http.MethodPost, "/api/auth/update-password", map[string]string{"email": "a@b.com", "newPassword": "n3w"}}, d.last(t))
}

func TestSignup(t *testing.T) {
	d := &fakeDoer{raw: `{"success":true,"data":{"id":9,"name":"Bo","email":"bo@soc.io","role":"admin"}}`}
	u, err := (&AuthAPI{d: d}).Signup(context.Background(), models.NewUser{Name: "Bo", Email: "bo@soc.io", Password: "p", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "9", Name: "Bo", Email: "bo@soc.io", Role: models.RoleAdmin}, *u)
	assert.Equal(t, "/api/auth/signup", d.last(t).path)
}
