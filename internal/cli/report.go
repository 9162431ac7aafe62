package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	reportCmd.Flags().StringVar(&reportUser, "user", "local", "User to credit")
	rootCmd.AddCommand(reportCmd)
}

var reportUser string

var reportCmd = &cobra.Command{
	Use:   "report <kind>",
	Short: "Record a report view (monthly, category, chart, balance)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Engine.RecordReportView(context.Background(), reportUser, args[0])
	if err != nil {
		return err
	}

	printEventResult(res)
	return nil
}
