package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/streak"
)

// Done marks today's goal as completed and prints the streak.
func (a *App) Done(ctx context.Context) error {
	stats, err := a.authService.CompleteGoal(ctx, a.connID)
	if err != nil {
		return err
	}
	a.printStats(stats)
	return nil
}

// Stats prints the streak of the logged-in account.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.authService.Stats(a.connID)
	if err != nil {
		return err
	}
	a.printStats(stats)
	return nil
}

func (a *App) printStats(s streak.Stats) {
	last := s.LastCompletedDate
	if last == "" {
		last = "never"
	}
	fmt.Fprintf(a.out, "Current streak: %d, longest: %d, last completed: %s\n", s.CurrentStreak, s.LongestStreak, last)
}
