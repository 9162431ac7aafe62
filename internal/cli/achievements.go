package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	achievementsCmd.Flags().StringVar(&achievementsUser, "user", "local", "User to show")
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsUser string

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show achievement progress",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	views, err := d.Engine.Achievements(context.Background(), achievementsUser)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tTIER\tGOAL\tPROGRESS\tREWARD\tSTATUS")
	for _, a := range views {
		for _, t := range a.Tiers {
			status := "locked"
			if t.Unlocked {
				status = "unlocked"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%d/%d\t%d XP\t%s\n",
				a.Name, t.Tier, t.Description, a.CurrentValue, t.Threshold, t.XPReward, status)
		}
	}
	return w.Flush()
}
