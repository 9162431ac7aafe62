package progression

import (
	"strings"
	"time"

	"github.com/spendquest-app/spendquest/internal/domain"
)

// BudgetSource resolves per-category budget ceilings for under-budget
// challenges. It is injected so the engine never embeds the surrounding
// system's real budget table. A false return means no budget is
// configured for the category, which makes a budget breach impossible.
type BudgetSource interface {
	CategoryBudget(category string) (float64, bool)
}

// StaticBudgets is a fixed, case-insensitive budget table.
type StaticBudgets map[string]float64

// CategoryBudget looks up a budget ceiling by category name.
func (b StaticBudgets) CategoryBudget(category string) (float64, bool) {
	v, ok := b[strings.ToLower(category)]
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// DefaultBudgets returns the fallback budget table used when no real
// budget source is wired in.
func DefaultBudgets() StaticBudgets {
	return StaticBudgets{
		"groceries":      1000,
		"dining":         500,
		"entertainment":  300,
		"transportation": 400,
		"coffee":         100,
	}
}

// Config is the engine's immutable configuration: XP awards, catalogs,
// and store behavior. Construct with DefaultConfig and override fields
// before passing to NewEngine; the engine never mutates it.
type Config struct {
	XPExpense     int64
	XPReportView  int64
	XPStreakDay   int64
	XPUnderBudget int64
	FreezeCost    int64

	// ReportKinds are the accepted report-kind strings; anything else is
	// a validation error.
	ReportKinds []string

	Levels       Levels
	Achievements []domain.AchievementDef
	Challenges   []domain.ChallengeTemplate
	Budgets      BudgetSource

	// RecentChallengeWindow is how many trailing history entries are
	// excluded when rotating to a new challenge.
	RecentChallengeWindow int

	// StoreTimeout bounds every load/save against the backing store.
	StoreTimeout time.Duration
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		XPExpense:     10,
		XPReportView:  15,
		XPStreakDay:   20,
		XPUnderBudget: 25,
		FreezeCost:    100,

		ReportKinds: []string{"monthly", "category", "chart", "balance"},

		Levels:       DefaultLevels(),
		Achievements: AllAchievements(),
		Challenges:   DefaultChallenges(),
		Budgets:      DefaultBudgets(),

		RecentChallengeWindow: 3,
		StoreTimeout:          5 * time.Second,
	}
}

// knownReportKind checks a report kind against the configured list.
func (c Config) knownReportKind(kind string) bool {
	for _, k := range c.ReportKinds {
		if k == kind {
			return true
		}
	}
	return false
}
