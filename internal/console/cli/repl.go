package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Open(ctx context.Context, path string) error
	Alerts(ctx context.Context, page int) error
	UpdateAlert(ctx context.Context, field, id, value string) error
	Investigations(ctx context.Context, id string) error
	AddUser(ctx context.Context) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, forgot, help, exit"
	helpLoggedIn  = "Available commands: dashboard, alerts [page], disposition <id> <value|none>, assign <id> <email|none>, " +
		"status <id> <value>, investigations [id], users, adduser, open <path>, whoami, refresh, logout, exit"
)

// runREPL starts the console's read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands that need a session are still dispatched while logged out: the
// route guard answers them with the login view.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("soc%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "dashboard":
			_ = a.Open(ctx, "/")

		case "users", "reports", "settings":
			_ = a.Open(ctx, "/"+cmd)

		case "alerts":
			page := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					printlnFn("Usage: alerts [page]")
					continue
				}
				page = n
			}
			_ = a.Alerts(ctx, page)

		case "disposition", "assign", "status":
			if len(args) != 2 {
				printlnFn(fmt.Sprintf("Usage: %s <id> <value>", cmd))
				continue
			}
			_ = a.UpdateAlert(ctx, cmd, args[0], args[1])

		case "investigations":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			_ = a.Investigations(ctx, id)

		case "adduser":
			_ = a.AddUser(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
