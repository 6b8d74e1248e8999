package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

func TestAlerts_List(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		limit     int
		skip      int
		wantPath  string
		wantTotal int
		wantLimit int
		wantSkip  int
		wantItems int
	}{
		{
			name:      "full envelope",
			raw:       `{"data":[{"id":1,"title":"a","severity":"high","status":"new"}],"total":42,"limit":10,"skip":20}`,
			limit:     10,
			skip:      20,
			wantPath:  "/api/alerts?limit=10&skip=20",
			wantTotal: 42,
			wantLimit: 10,
			wantSkip:  20,
			wantItems: 1,
		},
		{
			name:      "defaults and missing totals",
			raw:       `{"data":[{"id":1},{"id":2}]}`,
			wantPath:  "/api/alerts?limit=10&skip=0",
			wantTotal: 2,
			wantLimit: 10,
			wantSkip:  0,
			wantItems: 2,
		},
		{
			name:      "bare array",
			raw:       `[{"id":1},{"id":2},{"id":3}]`,
			limit:     5,
			skip:      -3,
			wantPath:  "/api/alerts?limit=5&skip=0",
			wantTotal: 3,
			wantLimit: 5,
			wantSkip:  0,
			wantItems: 3,
		},
		{
			name:      "envelope without data",
			raw:       `{"total":0}`,
			wantPath:  "/api/alerts?limit=10&skip=0",
			wantTotal: 0,
			wantLimit: 10,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDoer{raw: tt.raw}
			page, err := (&AlertsAPI{d: d}).List(context.Background(), tt.limit, tt.skip)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPath, d.last(t).path)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantSkip, page.Skip)
			assert.Len(t, page.Items, tt.wantItems)
			assert.NotNil(t, page.Items)
		})
	}
}

func TestAlerts_ListMalformed(t *testing.T) {
	_, err := (&AlertsAPI{d: &fakeDoer{raw: `"nope"`}}).List(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAlerts_Update(t *testing.T) {
	d := &fakeDoer{raw: `{"data":{"_id":"65f0c1","title":"x","severity":"low","status":"closed","disposition":"false_positive"}}`}
	status := models.AlertStatusClosed
	disp := models.DispositionFalsePositive

	alert, err := (&AlertsAPI{d: d}).Update(context.Background(), "65f0c1", models.AlertUpdate{Status: &status, Disposition: &disp})
	require.NoError(t, err)

	assert.Equal(t, models.ID("65f0c1"), alert.ID)
	assert.Equal(t, models.AlertStatusClosed, alert.Status)
	c := d.last(t)
	assert.Equal(t, http.MethodPatch, c.method)
	assert.Equal(t, "/api/alerts/65f0c1", c.path)
	assert.Equal(t, models.AlertUpdate{Status: &status, Disposition: &disp}, c.body)
}

func TestAlerts_UpdateEscapesID(t *testing.T) {
	d := &fakeDoer{raw: `{"id":"a/b"}`}
	_, err := (&AlertsAPI{d: d}).Update(context.Background(), "a/b", models.AlertUpdate{ClearDisposition: true})
	require.NoError(t, err)
	assert.Equal(t, "/api/alerts/a%2Fb", d.last(t).path)
}

func TestAlerts_ListStringAndDocumentIDs(t *testing.T) {
	raw := `{"data":[{"id":"65f0c1","name":"Brute force","status":"open"},{"_id":"65f0c2","title":"Port scan"},{"id":3}],"total":3}`
	page, err := (&AlertsAPI{d: &fakeDoer{raw: raw}}).List(context.Background(), 10, 0)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, models.ID("65f0c1"), page.Items[0].ID)
	assert.Equal(t, "Brute force", page.Items[0].Title)
	assert.Equal(t, models.AlertStatusOpen, page.Items[0].Status)
	assert.Equal(t, models.ID("65f0c2"), page.Items[1].ID)
	assert.Equal(t, models.ID("3"), page.Items[2].ID)
}

func TestAlerts_UpdateRejectsLocally(t *testing.T) {
	d := &fakeDoer{}
	a := &AlertsAPI{d: d}

	_, err := a.Update(context.Background(), "1", models.AlertUpdate{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	status := models.AlertStatusClosed
	_, err = a.Update(context.Background(), "", models.AlertUpdate{Status: &status})
	assert.ErrorContains(t, err, "alert id is required")

	bad := models.Disposition("maybe")
	_, err = a.Update(context.Background(), "1", models.AlertUpdate{Disposition: &bad})
	assert.ErrorContains(t, err, "invalid disposition")

	badStatus := models.AlertStatus("archived")
	_, err = a.Update(context.Background(), "1", models.AlertUpdate{Status: &badStatus})
	assert.ErrorContains(t, err, "invalid status")

	assert.Empty(t, d.calls)
}
