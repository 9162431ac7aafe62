package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	statsCmd.Flags().StringVar(&statsUser, "user", "local", "User to show")
	rootCmd.AddCommand(statsCmd)
}

var statsUser string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show XP, level, streak, and challenge status",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	s, err := d.Engine.Stats(context.Background(), statsUser)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Level\t%d (%d%% to next, %d XP to go)\n", s.Level, s.LevelProgressPct, s.XPToNextLevel)
	fmt.Fprintf(w, "XP\t%d\n", s.XP)
	fmt.Fprintf(w, "Streak\t%d days (best %d)\n", s.CurrentStreak, s.LongestStreak)
	fmt.Fprintf(w, "Freezes\t%d\n", s.StreakFreezes)
	fmt.Fprintf(w, "Expenses logged\t%d\n", s.TotalExpensesLogged)
	fmt.Fprintf(w, "Categories used\t%d\n", s.UniqueCategories)
	fmt.Fprintf(w, "Reports viewed\t%d\n", s.ReportsViewed)
	fmt.Fprintf(w, "Months under budget\t%d\n", s.MonthsUnderBudget)
	fmt.Fprintf(w, "Achievement tiers\t%d\n", s.AchievementsUnlocked)
	if err := w.Flush(); err != nil {
		return err
	}

	if ch := s.Challenge; ch != nil {
		fmt.Printf("\nChallenge: %s (ends %s)\n", ch.Description, ch.EndDate.Format("2006-01-02"))
		if ch.Completed {
			if ch.Success != nil && *ch.Success {
				fmt.Println("  Status: completed")
			} else {
				fmt.Println("  Status: failed")
			}
		} else if ch.CurrentSpending > 0 {
			fmt.Printf("  Spent so far: %.2f\n", ch.CurrentSpending)
		} else if len(ch.FeaturesUsed) > 0 {
			fmt.Printf("  Features used: %v\n", ch.FeaturesUsed)
		}
	}
	return nil
}
