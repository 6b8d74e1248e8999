package router

// View identifies a screen of the console.
type View string

const (
	ViewLogin          View = "login"
	ViewDashboard      View = "dashboard"
	ViewAlerts         View = "alerts"
	ViewInvestigations View = "investigations"
	ViewInvestigation  View = "investigation"
	ViewUsers          View = "users"
	ViewReports        View = "reports"
	ViewSettings       View = "settings"
	ViewNotFound       View = "not-found"
)

const (
	LoginPath = "/login"
	RootPath  = "/"
)

type Route struct {
	Pattern   string
	View      View
	Protected bool
}

// Routes are the declared views. Everything but the login view needs a
// session.
var Routes = []Route{
	{Pattern: LoginPath, View: ViewLogin},
	{Pattern: RootPath, View: ViewDashboard, Protected: true},
	{Pattern: "/alerts", View: ViewAlerts, Protected: true},
	{Pattern: "/investigations", View: ViewInvestigations, Protected: true},
	{Pattern: "/investigations/{id}", View: ViewInvestigation, Protected: true},
	{Pattern: "/users", View: ViewUsers, Protected: true},
	{Pattern: "/reports", View: ViewReports, Protected: true},
	{Pattern: "/settings", View: ViewSettings, Protected: true},
}
