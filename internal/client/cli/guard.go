package cli

import "github.com/vinaykumardeekonda/srsp-cli/internal/client/models"

// Route is a logical view of the application. REPL commands are bound to
// routes so that access control has a single definition instead of inline
// role checks scattered across command handlers.
type Route string

const (
	RouteHome      Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
	RouteUpload    Route = "/upload"
	RouteBrowse    Route = "/browse"
	RouteProfile   Route = "/profile"
	RouteAdmin     Route = "/admin"
	RouteAdminLogs Route = "/admin/logs"
)

type access int

const (
	accessPublic access = iota
	accessProtected
	accessAdmin
)

// routeAccess is the capability table; routes not listed here are treated
// as protected.
var routeAccess = map[Route]access{
	RouteHome:      accessPublic,
	RouteLogin:     accessPublic,
	RouteRegister:  accessPublic,
	RouteDashboard: accessProtected,
	RouteUpload:    accessProtected,
	RouteBrowse:    accessProtected,
	RouteProfile:   accessProtected,
	RouteAdmin:     accessAdmin,
	RouteAdminLogs: accessAdmin,
}

// Decision is the outcome of evaluating a route against session state.
type Decision int

const (
	// DecisionUnknown means the session check has not answered yet;
	// nothing protected may be shown.
	DecisionUnknown Decision = iota

	// DecisionAllowed admits the route.
	DecisionAllowed

	// DecisionDenied means no session exists for a protected route; the
	// user is sent to the login view.
	DecisionDenied

	// DecisionRedirect means a session exists but belongs elsewhere, e.g.
	// a non-admin on an admin route.
	DecisionRedirect
)

// Verdict is a guard decision plus, for denials and redirects, where to go
// instead.
type Verdict struct {
	Decision Decision
	Target   Route
}

// Evaluate gates one route against the current session state. It is a pure
// function: same inputs, same verdict.
//
// Rules:
//   - public routes are always allowed;
//   - until the session check has answered, everything else is Unknown;
//   - no session on a protected route denies with the login view as target;
//   - a non-admin on an admin route is redirected to the dashboard, not to
//     login (a session exists, it just lacks the role);
//   - an admin on the upload route is redirected to the admin panel
//     (admins moderate, they do not submit).
func Evaluate(route Route, confirmed bool, session *models.Session) Verdict {
	level, ok := routeAccess[route]
	if !ok {
		level = accessProtected
	}

	if level == accessPublic {
		return Verdict{Decision: DecisionAllowed}
	}
	if !confirmed {
		return Verdict{Decision: DecisionUnknown}
	}
	if session == nil {
		return Verdict{Decision: DecisionDenied, Target: RouteLogin}
	}
	if level == accessAdmin && !session.IsAdmin() {
		return Verdict{Decision: DecisionRedirect, Target: RouteDashboard}
	}
	if route == RouteUpload && session.IsAdmin() {
		return Verdict{Decision: DecisionRedirect, Target: RouteAdmin}
	}
	return Verdict{Decision: DecisionAllowed}
}
