package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	monthCmd.Flags().StringVar(&monthUser, "user", "local", "User to credit")
	monthCmd.Flags().BoolVar(&monthUnderBudget, "under-budget", false, "The month closed under budget")
	rootCmd.AddCommand(monthCmd)
}

var (
	monthUser        string
	monthUnderBudget bool
)

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Record a month-end budget outcome",
	RunE:  runMonth,
}

func runMonth(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Engine.RecordMonthBudgetOutcome(context.Background(), monthUser, monthUnderBudget)
	if err != nil {
		return err
	}

	if !monthUnderBudget {
		fmt.Println("Month recorded. Better luck next time.")
	}
	printEventResult(res)
	return nil
}
