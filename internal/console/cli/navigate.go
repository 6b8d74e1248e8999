package cli

import (
	"context"

	"github.com/dmitrijs2005/socconsole/internal/console/router"
)

// Open navigates to path and renders whatever the route guard decides.
func (a *App) Open(ctx context.Context, path string) error {
	return a.show(ctx, func() router.Decision { return a.nav.Navigate(path) })
}

// Alerts opens the alert table at page (1-based).
func (a *App) Alerts(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	a.alertsPage = page
	return a.Open(ctx, "/alerts")
}

// Investigations opens the investigation center, or one case when id is set.
func (a *App) Investigations(ctx context.Context, id string) error {
	if id == "" {
		return a.Open(ctx, "/investigations")
	}
	return a.Open(ctx, "/investigations/"+id)
}

// Refresh marks all cached data stale and renders the current view again.
func (a *App) Refresh(ctx context.Context) error {
	a.cache.Invalidate()
	return a.show(ctx, a.nav.Refresh)
}

// show renders the decision returned by move unless the navigator already
// did so while moving.
func (a *App) show(ctx context.Context, move func() router.Decision) error {
	a.rendered = false
	d := move()
	if !a.rendered {
		a.render(ctx, d)
	}
	return nil
}
