package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse = errors.New("malformed response")
	ErrEmptyUpdate       = errors.New("nothing to update")
)

// Doer issues one API request and returns the raw JSON body (nil when the
// server sent none). *transport.Client implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// API groups the endpoint clients over one Doer.
type API struct {
	Auth           *AuthAPI
	Users          *UsersAPI
	Alerts         *AlertsAPI
	Dashboard      *DashboardAPI
	Investigations *InvestigationsAPI
}

func New(d Doer) *API {
	return &API{
		Auth:           &AuthAPI{d: d},
		Users:          &UsersAPI{d: d},
		Alerts:         &AlertsAPI{d: d},
		Dashboard:      &DashboardAPI{d: d},
		Investigations: &InvestigationsAPI{d: d},
	}
}

func malformed(path string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", path, ErrMalformedResponse)
	}
	return fmt.Errorf("%s: %w: %v", path, ErrMalformedResponse, err)
}

func isArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}

func isObject(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '{'
}

// decodeList accepts {"data": [...]} or a bare array.
func decodeList[T any](path string, raw json.RawMessage) ([]T, error) {
	if isObject(raw) {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, malformed(path, err)
		}
		raw = env.Data
	}
	if !isArray(raw) {
		return nil, malformed(path, nil)
	}
	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed(path, err)
	}
	return items, nil
}

// decodeObject accepts {"data": {...}} or the bare object.
func decodeObject[T any](path string, raw json.RawMessage) (T, error) {
	var out T
	if !isObject(raw) {
		return out, malformed(path, nil)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return out, malformed(path, err)
	}
	if isObject(env.Data) {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, malformed(path, err)
	}
	return out, nil
}
