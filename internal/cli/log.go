package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	logCmd.Flags().StringVar(&logUser, "user", "local", "User to credit")
	rootCmd.AddCommand(logCmd)
}

var logUser string

var logCmd = &cobra.Command{
	Use:   "log <category> <amount>",
	Short: "Log an expense and earn XP",
	Args:  cobra.ExactArgs(2),
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Engine.RecordExpense(context.Background(), logUser, args[0], amount)
	if err != nil {
		return err
	}

	printEventResult(res)
	return nil
}
