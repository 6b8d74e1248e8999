package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/socconsole/internal/console/api"
	"github.com/dmitrijs2005/socconsole/internal/console/models"
	"github.com/dmitrijs2005/socconsole/internal/console/querycache"
	"github.com/dmitrijs2005/socconsole/internal/console/router"
)

type navItem struct {
	label     string
	path      string
	adminOnly bool
}

var navItems = []navItem{
	{label: "Dashboard", path: "/"},
	{label: "Alerts", path: "/alerts"},
	{label: "Users", path: "/users", adminOnly: true},
}

// mockInvestigation backs the investigation workspace until the API serves
// cases.
var mockInvestigation = models.Investigation{
	ID:        "CASE-1243",
	Title:     "Unusual Login Failure from Admin Account",
	Severity:  "High",
	Status:    "In Progress",
	Owner:     "Alice Chen",
	CreatedAt: "14:23 UTC",
	SourceIP:  "192.168.1.100",
	UserAgent: "Mozilla/5.0 (Unknown OS)",
	RawLogs: []string{
		"[2026-02-23T14:21:02Z] auth-service WARN Failed login for user admin from 192.168.1.100",
		"[2026-02-23T14:21:07Z] auth-service WARN Failed login for user admin from 192.168.1.100",
		"[2026-02-23T14:21:13Z] auth-service WARN Failed login for user admin from 192.168.1.100",
		"[2026-02-23T14:21:30Z] edge-firewall INFO Connection attempt flagged as suspicious (rule: brute_force_login)",
	},
}

func (a *App) isAdmin() bool {
	u := a.store.User()
	if u == nil {
		return false
	}
	return (u.Role != nil && *u.Role == string(models.RoleAdmin)) || (u.Name != nil && *u.Name == "Admin")
}

// render prints the view chosen by the navigator.
func (a *App) render(ctx context.Context, d router.Decision) {
	a.rendered = true

	switch d.Outcome {
	case router.Pending:
		a.println("Loading session...")
		return
	case router.Redirect:
		a.printf("Redirecting to %s\n", d.Location)
		return
	}

	if d.View != router.ViewLogin {
		a.renderShell(d.Location)
	}

	switch d.View {
	case router.ViewLogin:
		a.renderLogin()
	case router.ViewDashboard:
		a.renderDashboard(ctx)
	case router.ViewAlerts:
		a.renderAlerts(ctx)
	case router.ViewInvestigations:
		a.renderInvestigationCenter()
	case router.ViewInvestigation:
		a.renderInvestigation(ctx, d.Params["id"])
	case router.ViewUsers:
		a.renderUsers(ctx)
	case router.ViewReports:
		a.println("Reports Module - Coming Soon")
	case router.ViewSettings:
		a.println("Settings Module - Coming Soon")
	default:
		a.println("404 Page Not Found")
		a.println("Did you forget to add the page to the router?")
	}
}

// renderShell prints the navigation bar of the authenticated frame.
func (a *App) renderShell(location string) {
	admin := a.isAdmin()
	items := make([]string, 0, len(navItems))
	for _, it := range navItems {
		if it.adminOnly && !admin {
			continue
		}
		if it.path == location {
			items = append(items, "["+it.label+"]")
		} else {
			items = append(items, it.label)
		}
	}

	who := ""
	if u := a.store.User(); u != nil {
		who = u.DisplayName()
	}
	a.println(strings.Repeat("=", 60))
	a.printf("SOC Console | %s | %s\n", strings.Join(items, "  "), orDash(who))
	a.println(strings.Repeat("=", 60))
}

func (a *App) renderLogin() {
	a.println("Sign in to the SOC console.")
	if a.identifier != "" {
		a.printf("Email: %s\n", a.identifier)
	}
	a.println("Type 'login' to sign in or 'forgot' to reset your password.")
}

// sessionEnded reports whether the session ended while a view was fetching
// its data; the login view has been rendered by then and the protected view
// must stop printing.
func (a *App) sessionEnded(err error) bool {
	return errors.Is(err, querycache.ErrCleared) || !a.isLoggedIn()
}

func (a *App) fetchFailed(what string, err error) {
	a.track(err)
	a.notify("Failed to load "+what, err.Error())
}

func (a *App) renderDashboard(ctx context.Context) {
	m, err := querycache.Get(ctx, a.cache, "dashboard/metrics", func(ctx context.Context) (models.DashboardMetrics, error) {
		m, err := a.api.Dashboard.Metrics(ctx)
		a.track(err)
		return m, err
	})
	if a.sessionEnded(err) {
		return
	}
	if err != nil {
		a.log.Warn(ctx, "showing empty metrics", "error", err)
		m = models.DashboardMetrics{TotalCasesTrend: "0"}
	}

	a.println("Security Overview")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total cases\t%d\t(%s)\n", m.TotalCases, m.TotalCasesTrend)
	fmt.Fprintf(tw, "Open cases\t%d\t\n", m.OpenCases)
	fmt.Fprintf(tw, "Closed cases\t%d\t\n", m.ClosedCases)
	fmt.Fprintf(tw, "MTTD\t%s\t\n", formatSeconds(m.MTTD))
	fmt.Fprintf(tw, "MTTR\t%s\t\n", formatSeconds(m.MTTR))
	_ = tw.Flush()

	trends, err := querycache.Get(ctx, a.cache, "dashboard/trends", func(ctx context.Context) ([]models.TrendPoint, error) {
		return a.api.Dashboard.Trends(ctx, api.DefaultTrendPoints, api.DefaultTrendDays)
	})
	if a.sessionEnded(err) {
		return
	}
	a.println()
	a.println("MTTD / MTTR trend")
	if err != nil {
		a.fetchFailed("trends", err)
	} else {
		tw = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tMTTD\tMTTR")
		for _, p := range trends {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Time, formatSeconds(p.MTTD), formatSeconds(p.MTTR))
		}
		_ = tw.Flush()
	}

	acc, err := querycache.Get(ctx, a.cache, "dashboard/accuracy", a.api.Dashboard.Accuracy)
	if a.sessionEnded(err) {
		return
	}
	a.println()
	a.println("Detection accuracy")
	if err != nil {
		a.fetchFailed("detection accuracy", err)
	} else {
		tw = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "True positive\t%d\t%s\n", acc.TruePositive.Count, acc.TruePositive.Percentage)
		fmt.Fprintf(tw, "False positive\t%d\t%s\n", acc.FalsePositive.Count, acc.FalsePositive.Percentage)
		fmt.Fprintf(tw, "Benign positive\t%d\t%s\n", acc.BenignPositive.Count, acc.BenignPositive.Percentage)
		_ = tw.Flush()
	}

	acts, err := querycache.Get(ctx, a.cache, "dashboard/activities", a.api.Dashboard.RecentActivities)
	if a.sessionEnded(err) {
		return
	}
	a.println()
	a.println("Recent activity")
	switch {
	case err != nil:
		a.fetchFailed("recent activity", err)
	case len(acts) == 0:
		a.println("No recent activity.")
	default:
		for _, act := range acts {
			a.printf("  %s  %s  %s\n", orDash(act.Timestamp), act.Message, orDash(act.User))
		}
	}
}

func (a *App) alertsKey(limit, skip int) string {
	return fmt.Sprintf("alerts/%d/%d", limit, skip)
}

func (a *App) renderAlerts(ctx context.Context) {
	limit := api.DefaultAlertsLimit
	skip := (a.alertsPage - 1) * limit

	page, err := querycache.Get(ctx, a.cache, a.alertsKey(limit, skip), func(ctx context.Context) (*models.AlertPage, error) {
		p, err := a.api.Alerts.List(ctx, limit, skip)
		a.track(err)
		return p, err
	})
	if a.sessionEnded(err) {
		return
	}
	a.println("Alert Triage")
	if err != nil {
		a.fetchFailed("alerts", err)
		return
	}
	if len(page.Items) == 0 {
		a.println("No alerts.")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSEVERITY\tSTATUS\tDISPOSITION\tASSIGNEE\tCREATED\tTITLE")
		for _, al := range page.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				orDash(al.ID.String()), label(string(al.Severity)), label(string(al.Status)), label(string(al.Disposition)),
				assignee(al), formatCreated(al.CreatedAt), al.Title)
		}
		_ = tw.Flush()
	}
	a.printf("Page %d of %d (%d alerts)\n", a.alertsPage, pageCount(page.Total, page.Limit), page.Total)
}

func (a *App) renderInvestigationCenter() {
	a.println("Investigation Center")
	a.println("Select an alert from the Alerts console to start an investigation or view case details.")
	a.printf("Open a case with 'investigations <id>', e.g. 'investigations %s'.\n", mockInvestigation.ID)
}

func (a *App) renderInvestigation(ctx context.Context, id string) {
	inv := mockInvestigation
	inv.ID = id

	events, err := querycache.Get(ctx, a.cache, "investigations/"+id+"/timeline", func(ctx context.Context) ([]models.TimelineEvent, error) {
		return a.api.Investigations.Timeline(ctx, id)
	})
	if a.sessionEnded(err) {
		return
	}

	a.printf("%s  [%s]  %s\n", inv.ID, inv.Severity, inv.Title)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Status\t%s\n", inv.Status)
	fmt.Fprintf(tw, "Assigned to\t%s\n", inv.Owner)
	fmt.Fprintf(tw, "Created\t%s\n", inv.CreatedAt)
	fmt.Fprintf(tw, "Source IP\t%s\n", inv.SourceIP)
	fmt.Fprintf(tw, "User agent\t%s\n", inv.UserAgent)
	_ = tw.Flush()

	a.println()
	a.println("Timeline")
	switch {
	case err != nil:
		a.fetchFailed("timeline", err)
	case len(events) == 0:
		a.println("No timeline events.")
	default:
		for _, e := range events {
			a.printf("  %s  %s", orDash(e.Timestamp), e.Title)
			if e.Description != "" {
				a.printf(": %s", e.Description)
			}
			a.println()
		}
	}

	a.println()
	a.println("Raw logs")
	for _, l := range inv.RawLogs {
		a.println("  " + l)
	}
}

func (a *App) renderUsers(ctx context.Context) {
	users, err := querycache.Get(ctx, a.cache, "users/all", a.api.Users.List)
	if a.sessionEnded(err) {
		return
	}
	a.println("User Management")
	if err != nil {
		a.fetchFailed("users", err)
		return
	}
	if len(users) == 0 {
		a.println("No users.")
		return
	}
	roles := map[models.Role]int{}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tMOBILE\tROLE")
	for _, u := range users {
		roles[u.Role]++
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", orDash(u.ID.String()), u.Name, orDash(u.Email), orDash(u.Mobile), label(string(u.Role)))
	}
	_ = tw.Flush()
	a.printf("%d users, %s admins\n", len(users), percent(roles[models.RoleAdmin], len(users)))
}
