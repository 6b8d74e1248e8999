package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	path   string
	body   any
}

// fakeDoer answers every request with raw/err and records the calls.
type fakeDoer struct {
	raw   string
	err   error
	calls []call
}

func (f *fakeDoer) Do(_ context.Context, method, path string, body any) (json.RawMessage, error) {
	f.calls = append(f.calls, call{method: method, path: path, body: body})
	if f.err != nil {
		return nil, f.err
	}
	if f.raw == "" {
		return nil, nil
	}
	return json.RawMessage(f.raw), nil
}

func (f *fakeDoer) last(t *testing.T) call {
	t.Helper()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

type item struct {
	ID int `json:"id"`
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []item
		wantErr bool
	}{
		{name: "envelope", raw: `{"success":true,"data":[{"id":1},{"id":2}]}`, want: []item{{1}, {2}}},
		{name: "bare array", raw: `[{"id":3}]`, want: []item{{3}}},
		{name: "empty array", raw: `[]`, want: []item{}},
		{name: "envelope without data", raw: `{"success":true}`, wantErr: true},
		{name: "data is object", raw: `{"data":{"id":1}}`, wantErr: true},
		{name: "scalar", raw: `42`, wantErr: true},
		{name: "no body", raw: ``, wantErr: true},
		{name: "wrong element type", raw: `[{"id":"x"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeList[item]("/api/x", json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeObject(t *testing.T) {
	got, err := decodeObject[item]("/api/x", json.RawMessage(`{"data":{"id":5}}`))
	require.NoError(t, err)
	assert.Equal(t, item{5}, got)

	got, err = decodeObject[item]("/api/x", json.RawMessage(`{"id":6}`))
	require.NoError(t, err)
	assert.Equal(t, item{6}, got)

	_, err = decodeObject[item]("/api/x", json.RawMessage(`[1]`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNew_SharesDoer(t *testing.T) {
	d := &fakeDoer{err: errors.New("down")}
	a := New(d)

	_, _ = a.Users.List(context.Background())
	_ = a.Auth.SendOTP(context.Background(), "a@b.com")

	assert.Len(t, d.calls, 2)
}
