package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/socconsole/internal/console/models"
)

const (
	metricsPath          = "/api/dashboard/getmetrics"
	trendsPath           = "/api/dashboard/gettrends"
	accuracyPath         = "/api/dashboard/detection-accuracy"
	recentActivitiesPath = "/api/dashboard/recent-activities"

	DefaultTrendPoints = 10
	DefaultTrendDays   = 30
)

type DashboardAPI struct {
	d Doer
}

// Metrics returns the headline counters. When the backend cannot serve them
// the zero metrics are returned together with the cause, so the dashboard
// still renders.
func (a *DashboardAPI) Metrics(ctx context.Context) (models.DashboardMetrics, error) {
	var zero models.DashboardMetrics
	zero.TotalCasesTrend = "0"

	raw, err := a.d.Do(ctx, http.MethodGet, metricsPath, nil)
	if err != nil {
		return zero, err
	}
	if !isObject(raw) {
		return zero, malformed(metricsPath, nil)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, malformed(metricsPath, err)
	}
	if !isObject(env.Data) {
		return zero, nil
	}
	m := zero
	if err := json.Unmarshal(env.Data, &m); err != nil {
		return zero, malformed(metricsPath, err)
	}
	return m, nil
}

// Trends returns the MTTD/MTTR series. points/days <= 0 mean the defaults.
func (a *DashboardAPI) Trends(ctx context.Context, points, days int) ([]models.TrendPoint, error) {
	if points <= 0 {
		points = DefaultTrendPoints
	}
	if days <= 0 {
		days = DefaultTrendDays
	}
	q := url.Values{}
	q.Set("points", strconv.Itoa(points))
	q.Set("days", strconv.Itoa(days))

	raw, err := a.d.Do(ctx, http.MethodGet, trendsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if isArray(raw) {
		return decodeList[models.TrendPoint](trendsPath, raw)
	}
	if !isObject(raw) {
		return nil, malformed(trendsPath, nil)
	}
	var env struct {
		Data struct {
			Series json.RawMessage `json:"series"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, malformed(trendsPath, err)
	}
	return decodeList[models.TrendPoint](trendsPath, env.Data.Series)
}

func (a *DashboardAPI) Accuracy(ctx context.Context) (*models.DetectionAccuracy, error) {
	raw, err := a.d.Do(ctx, http.MethodGet, accuracyPath, nil)
	if err != nil {
		return nil, err
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if !isObject(raw) {
		return nil, malformed(accuracyPath, nil)
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, malformed(accuracyPath, err)
	}
	if !isObject(env.Data) {
		return nil, malformed(accuracyPath, errors.New("missing data"))
	}
	var acc models.DetectionAccuracy
	if err := json.Unmarshal(env.Data, &acc); err != nil {
		return nil, malformed(accuracyPath, err)
	}
	return &acc, nil
}

func (a *DashboardAPI) RecentActivities(ctx context.Context) ([]models.Activity, error) {
	raw, err := a.d.Do(ctx, http.MethodGet, recentActivitiesPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Activity](recentActivitiesPath, raw)
}
