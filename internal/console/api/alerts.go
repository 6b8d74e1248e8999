package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

const (
	alertsPath = "/api/alerts"

	DefaultAlertsLimit = 10
)

type AlertsAPI struct {
	d Doer
}

// List fetches one page. limit <= 0 means DefaultAlertsLimit, skip < 0
// means 0. Missing total/limit/skip in the response fall back to the item
// count and the requested values.
func (a *AlertsAPI) List(ctx context.Context, limit, skip int) (*models.AlertPage, error) {
	if limit <= 0 {
		limit = DefaultAlertsLimit
	}
	if skip < 0 {
		skip = 0
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	raw, err := a.d.Do(ctx, http.MethodGet, alertsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	page := &models.AlertPage{Limit: limit, Skip: skip}

	switch {
	case isArray(raw):
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return nil, malformed(alertsPath, err)
		}
	case isObject(raw):
		var env struct {
			Data  []models.Alert `json:"data"`
			Total *int           `json:"total"`
			Limit *int           `json:"limit"`
			Skip  *int           `json:"skip"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, malformed(alertsPath, err)
		}
		page.Items = env.Data
		if env.Total != nil {
			page.Total = *env.Total
		} else {
			page.Total = len(env.Data)
		}
		if env.Limit != nil {
			page.Limit = *env.Limit
		}
		if env.Skip != nil {
			page.Skip = *env.Skip
		}
		if page.Items == nil {
			page.Items = []models.Alert{}
		}
		return page, nil
	default:
		return nil, malformed(alertsPath, nil)
	}

	if page.Items == nil {
		page.Items = []models.Alert{}
	}
	page.Total = len(page.Items)
	return page, nil
}

// Update sends a partial update with PATCH and returns the updated alert.
func (a *AlertsAPI) Update(ctx context.Context, id models.ID, upd models.AlertUpdate) (*models.Alert, error) {
	if id == "" {
		return nil, errors.New("alert id is required")
	}
	if upd.Empty() {
		return nil, ErrEmptyUpdate
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", *upd.Status)
	}
	if upd.Disposition != nil && !upd.Disposition.Valid() {
		return nil, fmt.Errorf("invalid disposition %q", *upd.Disposition)
	}

	path := alertsPath + "/" + url.PathEscape(id.String())
	raw, err := a.d.Do(ctx, http.MethodPatch, path, upd)
	if err != nil {
		return nil, err
	}
	alert, err := decodeObject[models.Alert](path, raw)
	if err != nil {
		return nil, err
	}
	return &alert, nil
}
