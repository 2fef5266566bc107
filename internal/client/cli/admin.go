package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

// Pending refreshes the moderation queue from the backend and shows it
// grouped by status. Resources are addressed by their backend id in the
// approve/reject/remove commands.
func (a *App) Pending(ctx context.Context) error {
	if _, err := a.moderation.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}

	for _, status := range []models.Status{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		group := a.moderation.ByStatus(status)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "%s:\n", status)
		for _, r := range group {
			fmt.Fprintf(a.out, "  %s  %s (by %s)\n", r.ID, r.Title, r.UploadedBy.Alias)
		}
	}
	if len(a.moderation.Resources()) == 0 {
		fmt.Fprintln(a.out, "Nothing to review.")
	}
	return nil
}

func requireID(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", errors.New(usage)
	}
	return args[0], nil
}

// Approve moves a pending resource to approved.
func (a *App) Approve(ctx context.Context, args []string) error {
	id, err := requireID(args, "usage: approve <id>")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if err := a.moderation.Approve(ctx, id); err != nil {
		fmt.Fprintln(a.out, transitionMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Approved %s\n", id)
	return nil
}

// Reject moves a pending or approved resource to rejected.
func (a *App) Reject(ctx context.Context, args []string) error {
	id, err := requireID(args, "usage: reject <id>")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if err := a.moderation.Reject(ctx, id); err != nil {
		fmt.Fprintln(a.out, transitionMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Rejected %s\n", id)
	return nil
}

// Remove deletes a resource outright.
func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := requireID(args, "usage: remove <id>")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if err := a.moderation.Remove(ctx, id); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Removed %s\n", id)
	return nil
}

// Stats prints the moderation panel counters, recomputed from the current
// queue.
func (a *App) Stats(_ context.Context) error {
	s := a.moderation.Stats()
	fmt.Fprintf(a.out, "Submissions: %d total, %d pending review\n", s.TotalSubmissions, s.PendingReviews)
	fmt.Fprintf(a.out, "Today: %d approved, %d rejected\n", s.ApprovedToday, s.RejectedToday)
	fmt.Fprintf(a.out, "Active uploaders: %d\n", s.ActiveUploaders)
	return nil
}

func transitionMessage(err error) string {
	if errors.Is(err, models.ErrIllegalTransition) {
		return "That status change is not allowed."
	}
	return userMessage(err)
}
