package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

// timeNow is a test seam for the export filename date.
var timeNow = time.Now

// logFilter holds the narrowing last applied to the activity log, so that
// an export writes the same entries the admin is looking at.
type logFilter struct {
	query  string
	action models.Action
	date   string
}

var logActions = map[models.Action]bool{
	models.ActionUpload:       true,
	models.ActionApproval:     true,
	models.ActionRejection:    true,
	models.ActionDownload:     true,
	models.ActionLogin:        true,
	models.ActionRegistration: true,
}

// parseLogFilter sorts the command arguments into the three filter
// dimensions: a token naming a known action becomes the action filter, a
// token shaped like YYYY-MM-DD becomes the date filter, and everything else
// joins into the free-text query.
func parseLogFilter(args []string) logFilter {
	var f logFilter
	var words []string
	for _, arg := range args {
		if action := models.Action(strings.ToLower(arg)); logActions[action] && f.action == "" {
			f.action = action
			continue
		}
		if _, err := time.Parse("2006-01-02", arg); err == nil && f.date == "" {
			f.date = arg
			continue
		}
		words = append(words, arg)
	}
	f.query = strings.Join(words, " ")
	return f
}

// Logs shows the backend's activity trail, narrowed by any combination of a
// case-insensitive text filter over users and details, an action name, and
// a YYYY-MM-DD date. The filter sticks around for a following export.
func (a *App) Logs(ctx context.Context, args []string) error {
	logs, err := a.activity.Fetch(ctx)
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	a.logFilter = parseLogFilter(args)
	logs = a.activity.Filter(logs, a.logFilter.query, a.logFilter.action, a.logFilter.date)

	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No matching entries.")
		return nil
	}
	for _, entry := range logs {
		fmt.Fprintf(a.out, "%s  %-12s %-16s %s\n",
			entry.Timestamp.Format("2006-01-02 15:04"), entry.Action, entry.User, entry.Details)
	}
	return nil
}

// Export writes the activity log as CSV into the working directory,
// honoring the filter from the last "logs" command.
func (a *App) Export(ctx context.Context) error {
	logs, err := a.activity.Fetch(ctx)
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}
	logs = a.activity.Filter(logs, a.logFilter.query, a.logFilter.action, a.logFilter.date)

	name := a.activity.ExportFilename(timeNow())
	f, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot create %s\n", name)
		return err
	}
	defer f.Close()

	if err := a.activity.ExportCSV(f, logs); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Wrote %d entries to %s\n", len(logs), name)
	return nil
}
