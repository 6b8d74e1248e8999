package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

type InvestigationsAPI struct {
	d Doer
}

func (a *InvestigationsAPI) Timeline(ctx context.Context, id string) ([]models.TimelineEvent, error) {
	if id == "" {
		return nil, errors.New("investigation id is required")
	}
	path := "/api/investigations/" + url.PathEscape(id) + "/timeline"
	raw, err := a.d.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.TimelineEvent](path, raw)
}
