package domain

// Catalog types. The achievement and challenge catalogs are fixed,
// versionable configuration passed into the engine at construction —
// not a rules DSL.

// Metric names an achievement metric read off UserProgression.
type Metric string

const (
	MetricExpensesLogged    Metric = "total_expenses_logged"
	MetricCurrentStreak     Metric = "current_streak"
	MetricMonthsUnderBudget Metric = "months_under_budget"
	MetricUniqueCategories  Metric = "unique_categories_used"
	MetricReportsViewed     Metric = "reports_viewed"
)

// AchievementTier is one rung of a tiered achievement. Tiers within an
// achievement are ordered by ascending threshold; tier numbers are the
// 1-based position in that order.
type AchievementTier struct {
	Threshold   int
	XPReward    int64
	Description string
}

// AchievementDef defines a tiered achievement against a single metric.
type AchievementDef struct {
	ID     string
	Name   string
	Metric Metric
	Tiers  []AchievementTier
}

// ChallengeTemplate is one entry of the weekly challenge catalog.
// Only the fields relevant to the Kind are set; IDs must stay stable
// because completed-challenge history references them.
type ChallengeTemplate struct {
	ID           string
	Description  string
	Kind         ChallengeKind
	Category     string
	TargetPct    int
	DaysRequired int
	Features     []string
	RewardXP     int64
}
