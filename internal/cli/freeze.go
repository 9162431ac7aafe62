package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	freezeCmd.Flags().StringVar(&freezeUser, "user", "local", "User buying the freeze")
	rootCmd.AddCommand(freezeCmd)
}

var freezeUser string

var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Buy a streak freeze with XP",
	Long:  `Spend XP on a streak freeze. A freeze is consumed automatically when you miss exactly one day, keeping your streak alive.`,
	RunE:  runFreeze,
}

func runFreeze(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Engine.PurchaseStreakFreeze(context.Background(), freezeUser)
	if err != nil {
		return err
	}

	if !res.Purchased {
		fmt.Printf("Not enough XP (you have %d). Keep logging!\n", res.XP)
		return nil
	}
	fmt.Printf("Streak freeze purchased. You now hold %d (XP remaining: %d).\n",
		res.StreakFreezes, res.XP)
	return nil
}
