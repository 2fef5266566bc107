package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

// fakeExec stubs the command surface and answers guard verdicts from a
// mutable session, so the REPL's dispatch can be exercised without any
// backend or terminal.
type fakeExec struct {
	confirmed bool
	session   *models.Session

	calls []string
}

func (f *fakeExec) verdict(route Route) Verdict {
	return Evaluate(route, f.confirmed, f.session)
}
func (f *fakeExec) isLoggedIn() bool { return f.session != nil }
func (f *fakeExec) isAdmin() bool    { return f.session.IsAdmin() }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.session = &models.Session{UserID: "s1", Role: models.RoleUser}
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.session = nil
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error                  { return f.record("whoami") }
func (f *fakeExec) Dashboard(context.Context) error               { return f.record("dashboard") }
func (f *fakeExec) Upload(context.Context) error                  { return f.record("upload") }
func (f *fakeExec) MyUploads(context.Context) error               { return f.record("mine") }
func (f *fakeExec) Resubmit(_ context.Context, _ []string) error  { return f.record("resubmit") }
func (f *fakeExec) Delete(_ context.Context, _ []string) error    { return f.record("delete") }
func (f *fakeExec) Download(_ context.Context, _ []string) error  { return f.record("download") }
func (f *fakeExec) Pending(context.Context) error                 { return f.record("pending") }
func (f *fakeExec) Approve(_ context.Context, _ []string) error   { return f.record("approve") }
func (f *fakeExec) Reject(_ context.Context, _ []string) error    { return f.record("reject") }
func (f *fakeExec) Remove(_ context.Context, _ []string) error    { return f.record("remove") }
func (f *fakeExec) Stats(context.Context) error                   { return f.record("stats") }
func (f *fakeExec) Logs(_ context.Context, _ []string) error      { return f.record("logs") }
func (f *fakeExec) Export(context.Context) error                  { return f.record("export") }

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, strings.TrimSpace(asString(a)))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func asString(a any) string {
	if s, ok := a.(string); ok {
		return s
	}
	return ""
}

func runLines(t *testing.T, exec *fakeExec, input ...string) []string {
	t.Helper()
	lines := silencePrintln(t)
	sc := bufio.NewScanner(strings.NewReader(strings.Join(input, "\n")))
	runREPL(context.Background(), exec, func() string { return "" }, sc)
	return *lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{confirmed: true}

	runLines(t, exec,
		"help",
		"login",
		"dashboard",
		"mine",
		"delete 1",
		"logout",
		"exit",
	)

	want := []string{"login", "dashboard", "mine", "delete", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls mismatch at %d: got %v, want %v", i, exec.calls, want)
		}
	}
}

func TestRunREPL_ProtectedCommandWithoutSession(t *testing.T) {
	exec := &fakeExec{confirmed: true}

	output := runLines(t, exec, "dashboard", "exit")

	if len(exec.calls) != 0 {
		t.Fatalf("handler must not run when denied: %v", exec.calls)
	}
	found := false
	for _, l := range output {
		if strings.Contains(l, "log in first") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a login hint, got %v", output)
	}
}

func TestRunREPL_BeforeSessionCheck(t *testing.T) {
	exec := &fakeExec{confirmed: false}

	runLines(t, exec, "dashboard", "exit")

	if len(exec.calls) != 0 {
		t.Fatalf("nothing protected may run before the session check: %v", exec.calls)
	}
}

func TestRunREPL_StudentOnAdminRouteSeesDashboard(t *testing.T) {
	exec := &fakeExec{confirmed: true, session: &models.Session{UserID: "s1", Role: models.RoleUser}}

	runLines(t, exec, "pending", "exit")

	if len(exec.calls) != 1 || exec.calls[0] != "dashboard" {
		t.Fatalf("expected a redirect to the dashboard view, got %v", exec.calls)
	}
}

func TestRunREPL_AdminOnUploadSeesModerationQueue(t *testing.T) {
	exec := &fakeExec{confirmed: true, session: &models.Session{UserID: "a1", Role: models.RoleAdmin}}

	runLines(t, exec, "upload", "exit")

	if len(exec.calls) != 1 || exec.calls[0] != "pending" {
		t.Fatalf("expected a redirect to the moderation queue, got %v", exec.calls)
	}
}

func TestRunREPL_UnknownCommandAndQuit(t *testing.T) {
	exec := &fakeExec{confirmed: true, session: &models.Session{UserID: "s1", Role: models.RoleUser}}

	runLines(t, exec, "foobar", "quit")

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
