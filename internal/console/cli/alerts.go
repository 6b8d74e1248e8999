package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/socconsole/internal/common"
	"github.com/dmitrijs2005/socconsole/internal/console/models"
	"github.com/dmitrijs2005/socconsole/internal/console/querycache"
)

// noneValue clears a disposition or an assignee.
const noneValue = "none"

// UpdateAlert changes one field of an alert: "disposition", "status" or
// "assign" (value is the email of an assignable user). "none" clears the
// disposition or the assignee. Cached alert pages and dashboard figures are
// marked stale afterwards.
func (a *App) UpdateAlert(ctx context.Context, field, idArg, value string) error {
	if !a.isLoggedIn() {
		a.notify("Access Denied", "Sign in first.")
		return common.ErrNotLoggedIn
	}

	upd, err := a.buildUpdate(ctx, field, value)
	if err != nil {
		a.notify("Update Failed", err.Error())
		return err
	}

	alert, err := a.api.Alerts.Update(ctx, models.ID(idArg), upd)
	a.track(err)
	if err != nil {
		a.notify("Update Failed", err.Error())
		return err
	}

	a.cache.Invalidate("alerts/", "dashboard/")
	a.notify("Alert Updated", "The alert status has been successfully updated.")
	a.printf("%s  %s  %s  %s  %s\n", orDash(alert.ID.String()), label(string(alert.Status)), label(string(alert.Disposition)), assignee(*alert), alert.Title)
	return nil
}

func (a *App) buildUpdate(ctx context.Context, field, value string) (models.AlertUpdate, error) {
	var upd models.AlertUpdate

	switch field {
	case "disposition":
		if strings.EqualFold(value, noneValue) {
			upd.ClearDisposition = true
			break
		}
		d := models.Disposition(strings.ToLower(value))
		if !d.Valid() {
			return upd, fmt.Errorf("unknown disposition %q (true_positive, false_positive, benign_positive, escalated, undecided, none)", value)
		}
		upd.Disposition = &d

	case "status":
		s := models.NormalizeStatus(value)
		if !s.Valid() {
			return upd, fmt.Errorf("unknown status %q (new, open, in_progress, investigating, closed)", value)
		}
		upd.Status = &s

	case "assign":
		if strings.EqualFold(value, noneValue) {
			upd.Assignee = &models.Assignee{}
			break
		}
		users, err := querycache.Get(ctx, a.cache, "users/assignable", a.api.Users.ListAssignable)
		if err != nil {
			return upd, fmt.Errorf("could not load assignable users: %w", err)
		}
		for _, u := range users {
			if u.Email != "" && strings.EqualFold(u.Email, value) {
				upd.Assignee = &models.Assignee{Name: u.Name, Email: u.Email}
				break
			}
		}
		if upd.Assignee == nil {
			return upd, fmt.Errorf("%s cannot be assigned alerts", value)
		}

	default:
		return upd, fmt.Errorf("unknown field %q", field)
	}
	return upd, nil
}
