package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

func TestDashboard_Metrics(t *testing.T) {
	d := &fakeDoer{raw: `{"success":true,"data":{"totalCases":12,"totalCasesTrend":"+5%","openCases":4,"closedCases":8,"mttd":60,"mttr":120}}`}
	m, err := (&DashboardAPI{d: d}).Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardMetrics{TotalCases: 12, TotalCasesTrend: "+5%", OpenCases: 4, ClosedCases: 8, MTTD: 60, MTTR: 120}, m)
	assert.Equal(t, "/api/dashboard/getmetrics", d.last(t).path)
}

func TestDashboard_MetricsFallsBackToZero(t *testing.T) {
	zero := models.DashboardMetrics{TotalCasesTrend: "0"}

	m, err := (&DashboardAPI{d: &fakeDoer{err: errors.New("down")}}).Metrics(context.Background())
	assert.Error(t, err)
	assert.Equal(t, zero, m)

	m, err = (&DashboardAPI{d: &fakeDoer{raw: `{"success":true}`}}).Metrics(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, zero, m)
}

func TestDashboard_Trends(t *testing.T) {
	d := &fakeDoer{raw: `{"data":{"series":[{"time":"0h","mttd":10,"mttr":20}]}}`}
	got, err := (&DashboardAPI{d: d}).Trends(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []models.TrendPoint{{Time: "0h", MTTD: 10, MTTR: 20}}, got)
	assert.Equal(t, "/api/dashboard/gettrends?days=30&points=10", d.last(t).path)

	d = &fakeDoer{raw: `[{"time":"2h","mttd":1,"mttr":2}]`}
	got, err = (&DashboardAPI{d: d}).Trends(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "/api/dashboard/gettrends?days=7&points=4", d.last(t).path)

	_, err = (&DashboardAPI{d: &fakeDoer{raw: `{"data":{}}`}}).Trends(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDashboard_Accuracy(t *testing.T) {
	d := &fakeDoer{raw: `{"data":{"truePositive":{"count":892,"percentage":"71.5%"},"falsePositive":{"count":287,"percentage":"23%"},"benignPositive":{"count":68,"percentage":"5.5%"}}}`}
	acc, err := (&DashboardAPI{d: d}).Accuracy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 892, acc.TruePositive.Count)
	assert.Equal(t, "5.5%", acc.BenignPositive.Percentage)

	_, err = (&DashboardAPI{d: &fakeDoer{raw: `{"success":true}`}}).Accuracy(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDashboard_RecentActivities(t *testing.T) {
	d := &fakeDoer{raw: `{"data":[{"id":"a1","type":"alert","message":"closed","timestamp":"now"}]}`}
	acts, err := (&DashboardAPI{d: d}).RecentActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "closed", acts[0].Message)
}
