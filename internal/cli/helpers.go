package cli

import (
	"fmt"

	"github.com/spendquest-app/spendquest/internal/daemon"
	"github.com/spendquest-app/spendquest/internal/domain"
)

// openDaemon builds a daemon without starting the HTTP server, for
// commands that talk to the engine directly.
func openDaemon() (*daemon.Daemon, error) {
	return daemon.New(buildVersion)
}

// printEventResult renders the outcome of a mutating operation.
func printEventResult(res *domain.EventResult) {
	if res.XPAwarded > 0 {
		fmt.Printf("+%d XP\n", res.XPAwarded)
	}
	if res.LeveledUp {
		fmt.Printf("Level up! You are now level %d.\n", res.NewLevel)
	}
	for _, a := range res.Achievements {
		fmt.Printf("Achievement unlocked: %s (tier %d) — %s (+%d XP)\n",
			a.Name, a.Tier, a.Description, a.XPAwarded)
	}
	if ch := res.Challenge; ch != nil && ch.Completed {
		if ch.Success {
			fmt.Printf("Challenge complete: %s (+%d XP)\n", ch.Description, ch.XPAwarded)
		} else {
			fmt.Printf("Challenge failed: %s\n", ch.Description)
		}
	}
}
