package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/socconsole/internal/console/api"
	"github.com/dmitrijs2005/socconsole/internal/console/auth"
	"github.com/dmitrijs2005/socconsole/internal/console/config"
	"github.com/dmitrijs2005/socconsole/internal/console/querycache"
	"github.com/dmitrijs2005/socconsole/internal/console/router"
	"github.com/dmitrijs2005/socconsole/internal/console/session"
	"github.com/dmitrijs2005/socconsole/internal/console/storage"
	"github.com/dmitrijs2005/socconsole/internal/console/transport"
	"github.com/dmitrijs2005/socconsole/internal/filex"
	"github.com/dmitrijs2005/socconsole/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	log      logging.Logger
	registry *prometheus.Registry

	store *session.Store
	api   *api.API
	cache *querycache.Cache
	auth  *auth.Controller
	nav   *router.Navigator

	out    io.Writer
	reader *bufio.Reader

	// ctx is the context of Run; route changes pushed by the session are
	// rendered with it.
	ctx       context.Context
	rendered  bool
	deferring bool
	pending   *router.Decision

	Mode       Mode
	alertsPage int

	// Login form state kept between attempts.
	identifier      string
	prefillPassword []byte
}

// NewApp opens the local database and wires the console together. Logs go
// to stderr so they never interleave with views.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(os.Stderr, c.LogLevel)

	if _, err := filex.EnsureParentDir(c.StoragePath); err != nil {
		log.Error(ctx, "error creating storage directory", "path", c.StoragePath, "error", err)
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StoragePath, "error", err)
		return nil, err
	}

	return newApp(c, db, log, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:     c,
		db:         db,
		log:        log,
		registry:   prometheus.NewRegistry(),
		out:        out,
		reader:     bufio.NewReader(in),
		ctx:        context.Background(),
		alertsPage: 1,
	}

	a.store = session.NewStore(storage.NewSQLiteRepository(db), log)

	opts := []transport.Option{transport.WithMetrics(transport.NewMetrics(a.registry))}
	if c.LogoutOnUnauthorized {
		opts = append(opts, transport.WithUnauthorizedHandler(a.sessionRejected))
	}
	tc := transport.NewClient(transport.Config{BaseURL: c.APIBaseURL, Timeout: c.RequestTimeout}, a.store, log, opts...)

	a.api = api.New(tc)
	a.cache = querycache.New(c.QueryStaleTime, log)
	a.store.OnLogout(func() {
		n := a.cache.Len()
		a.cache.Clear()
		a.log.Debug(a.ctx, "query cache cleared", "entries", n)
	})
	a.auth = auth.NewController(a.api.Auth, a.store, log)

	a.nav = router.NewNavigator(router.NewGuard(router.Routes), a.store, router.RootPath)
	a.nav.OnChange(func(d router.Decision) {
		if a.deferring {
			a.pending = &d
			return
		}
		a.render(a.ctx, d)
	})
	return a
}

// Run restores the session, shows the first view and reads commands until
// the user exits.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	defer a.Close()

	stopMetrics, err := a.startMetricsServer(ctx)
	if err != nil {
		return err
	}
	defer stopMetrics()

	a.println("Welcome to the SOC console (type 'help' for commands)")

	if err := a.store.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() {
	a.nav.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(a.ctx, "error closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(a.ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

// track updates the connectivity mode from the outcome of an API call.
func (a *App) track(err error) {
	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case errors.Is(err, transport.ErrUnavailable):
		a.setMode(ModeOffline)
	case transport.StatusOf(err) != 0:
		a.setMode(ModeOnline)
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.store.User(); u != nil && u.DisplayName() != "" {
		s = u.DisplayName() + " "
	} else if a.store.Authenticated() {
		s = "signed in "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return s
}

// sessionRejected ends the session after the API refused the token.
func (a *App) sessionRejected(ctx context.Context) {
	if !a.store.Authenticated() {
		return
	}
	a.notify("Session expired", "The server rejected your session. Please sign in again.")
	if err := a.store.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout after rejected session failed", "error", err)
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// notify prints a one-line notification.
func (a *App) notify(title, description string) {
	if description == "" {
		a.printf("[%s]\n", title)
		return
	}
	a.printf("[%s] %s\n", title, description)
}
