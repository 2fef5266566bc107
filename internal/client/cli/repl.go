package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	verdict(route Route) Verdict
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Upload(ctx context.Context) error
	MyUploads(ctx context.Context) error
	Resubmit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Pending(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Logs(ctx context.Context, args []string) error
	Export(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the srsp CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Every command is bound to a
// logical route; the guard verdict for that route decides whether the
// handler runs, the user is asked to log in, or a redirect target's view is
// shown instead. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Commands
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - whoami         — show the current identity
//	  - dashboard      — personal stats and recent uploads
//	  - upload         — submit a resource (interactive form)
//	  - mine           — list own uploads
//	  - resubmit <n>   — edit and resubmit a rejected upload
//	  - delete <n>     — delete a pending or rejected upload
//	  - download <n>   — download an approved resource
//	  - logout         — log out
//
//	Admins additionally:
//	  - pending        — the moderation queue
//	  - approve <id>   — approve a resource
//	  - reject <id>    — reject a resource
//	  - remove <id>    — delete a resource outright
//	  - stats          — moderation panel counters
//	  - logs [text] [action] [YYYY-MM-DD]
//	                   — activity log, narrowed by text, action and date
//	  - export         — write the last filtered activity log to a CSV file
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	// A redirect verdict shows the view bound to the target route.
	redirects := map[Route]func(context.Context) error{
		RouteDashboard: a.Dashboard,
		RouteAdmin:     a.Pending,
	}

	exec := func(route Route, run func(context.Context) error) {
		v := a.verdict(route)
		switch v.Decision {
		case DecisionUnknown:
			printlnFn("Session check still pending, try again in a moment.")
		case DecisionDenied:
			printlnFn("Please log in first.")
		case DecisionRedirect:
			printlnFn("Redirecting to " + string(v.Target))
			if view, ok := redirects[v.Target]; ok {
				_ = view(ctx)
			}
		default:
			_ = run(ctx)
		}
	}

	for {
		printlnFn(fmt.Sprintf("srsp %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn("Available commands: whoami, pending, approve, reject, remove, stats, logs, export, dashboard, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: whoami, dashboard, upload, mine, resubmit, delete, download, logout, exit")
			default:
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			exec(RouteRegister, a.Register)

		case "login":
			exec(RouteLogin, a.Login)

		case "logout":
			exec(RouteHome, a.Logout)

		case "whoami":
			exec(RouteHome, a.WhoAmI)

		case "dashboard":
			exec(RouteDashboard, a.Dashboard)

		case "upload":
			exec(RouteUpload, a.Upload)

		case "mine", "uploads":
			exec(RouteProfile, a.MyUploads)

		case "resubmit":
			exec(RouteProfile, func(ctx context.Context) error { return a.Resubmit(ctx, args) })

		case "delete":
			exec(RouteProfile, func(ctx context.Context) error { return a.Delete(ctx, args) })

		case "download":
			exec(RouteBrowse, func(ctx context.Context) error { return a.Download(ctx, args) })

		case "pending":
			exec(RouteAdmin, a.Pending)

		case "approve":
			exec(RouteAdmin, func(ctx context.Context) error { return a.Approve(ctx, args) })

		case "reject":
			exec(RouteAdmin, func(ctx context.Context) error { return a.Reject(ctx, args) })

		case "remove":
			exec(RouteAdmin, func(ctx context.Context) error { return a.Remove(ctx, args) })

		case "stats":
			exec(RouteAdmin, a.Stats)

		case "logs":
			exec(RouteAdminLogs, func(ctx context.Context) error { return a.Logs(ctx, args) })

		case "export":
			exec(RouteAdminLogs, a.Export)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
