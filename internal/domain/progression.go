// Package domain defines the progression engine's entities and catalogs.
// All state here is per-user: one UserProgression document per user id,
// mutated only through the progression engine's facade operations.
package domain

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// ─── StringSet ──────────────────────────────────────────────────────────────

// StringSet is a set of strings that serializes as a sorted JSON array.
// The persistence format has no native set type, so the ordered-array
// encoding lives here and nowhere else.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value into the set.
func (s StringSet) Add(v string) { s[v] = struct{}{} }

// Has reports whether the value is in the set.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s StringSet) Len() int { return len(s) }

// ContainsAll reports whether every member of other is in s.
func (s StringSet) ContainsAll(other StringSet) bool {
	for v := range other {
		if !s.Has(v) {
			return false
		}
	}
	return true
}

// Values returns the members in sorted order.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON reconstitutes the set from an array.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// ─── User Progression ───────────────────────────────────────────────────────

// UserProgression is the full per-user gamification record.
// Level is derived from XP; the stored value is a cache and is
// recomputed on load.
type UserProgression struct {
	XP                   int64            `json:"xp"`
	Level                int              `json:"level"`
	TotalExpensesLogged  int              `json:"total_expenses_logged"`
	UniqueCategoriesUsed StringSet        `json:"unique_categories_used"`
	ReportsViewed        int              `json:"reports_viewed"`
	MonthsUnderBudget    int              `json:"months_under_budget"`
	LastActivityDate     time.Time        `json:"last_activity_date"`
	CurrentStreak        int              `json:"current_streak"`
	LongestStreak        int              `json:"longest_streak"`
	StreakFreezes        int              `json:"streak_freezes"`
	AchievementsUnlocked map[string][]int `json:"achievements_unlocked"`
	ActiveChallenge      *Challenge       `json:"active_challenge,omitempty"`
	CompletedChallenges  []ChallengeRecord `json:"completed_challenges"`
}

// MetricValue reads the named achievement metric off the record.
func (u *UserProgression) MetricValue(m Metric) int {
	switch m {
	case MetricExpensesLogged:
		return u.TotalExpensesLogged
	case MetricCurrentStreak:
		return u.CurrentStreak
	case MetricMonthsUnderBudget:
		return u.MonthsUnderBudget
	case MetricUniqueCategories:
		return u.UniqueCategoriesUsed.Len()
	case MetricReportsViewed:
		return u.ReportsViewed
	}
	return 0
}

// TierUnlocked reports whether the given tier of an achievement is unlocked.
func (u *UserProgression) TierUnlocked(achievementID string, tier int) bool {
	for _, t := range u.AchievementsUnlocked[achievementID] {
		if t == tier {
			return true
		}
	}
	return false
}

// UnlockedTierCount returns the total number of unlocked tiers across
// all achievements.
func (u *UserProgression) UnlockedTierCount() int {
	n := 0
	for _, tiers := range u.AchievementsUnlocked {
		n += len(tiers)
	}
	return n
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengeKind tags the challenge variants. The wire values match the
// persisted records of earlier deployments and must stay stable.
type ChallengeKind string

const (
	ChallengeCategoryReduction   ChallengeKind = "category_reduction"
	ChallengeCategoryAvoid       ChallengeKind = "category_avoid"
	ChallengeCategoryUnderBudget ChallengeKind = "category_under_budget"
	ChallengeStreakLength        ChallengeKind = "streak"
	ChallengeFeatureCoverage     ChallengeKind = "use_features"
)

// Challenge is the single active weekly challenge. The catalog fields
// (id through reward_xp) are an immutable snapshot of the template;
// current_spending, features_used, completed and success are the
// mutable progress.
type Challenge struct {
	InstanceID       string        `json:"instance_id"`
	TemplateID       string        `json:"id"`
	Description      string        `json:"description"`
	Kind             ChallengeKind `json:"kind"`
	Category         string        `json:"category,omitempty"`
	TargetPct        int           `json:"target_percentage,omitempty"`
	DaysRequired     int           `json:"days_required,omitempty"`
	RequiredFeatures StringSet     `json:"required_features,omitempty"`
	RewardXP         int64         `json:"reward_xp"`
	EndDate          time.Time     `json:"end_date"`

	CurrentSpending float64   `json:"current_spending,omitempty"`
	FeaturesUsed    StringSet `json:"features_used,omitempty"`
	Completed       bool      `json:"completed"`
	Success         *bool     `json:"success,omitempty"` // absent until completed
}

// MatchesCategory reports whether an expense category targets this
// challenge. Comparison is case-insensitive; canonical casing is the
// caller's concern.
func (c *Challenge) MatchesCategory(category string) bool {
	return c.Category != "" && strings.EqualFold(c.Category, category)
}

// ChallengeRecord is an append-only history entry for a settled challenge.
type ChallengeRecord struct {
	TemplateID  string        `json:"id"`
	InstanceID  string        `json:"instance_id"`
	Description string        `json:"description"`
	Kind        ChallengeKind `json:"kind"`
	Success     bool          `json:"success"`
	XPAwarded   int64         `json:"xp_awarded"`
	CompletedAt time.Time     `json:"completed_at"`
}

// ─── Operation Results ──────────────────────────────────────────────────────

// TierUnlock reports one newly unlocked achievement tier.
type TierUnlock struct {
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	Tier          int    `json:"tier"`
	Description   string `json:"description"`
	XPAwarded     int64  `json:"xp_awarded"`
	LeveledUp     bool   `json:"leveled_up"`
	NewLevel      int    `json:"new_level"`
}

// ChallengeOutcome reports a challenge that was settled during a call.
type ChallengeOutcome struct {
	TemplateID  string        `json:"id"`
	Description string        `json:"description"`
	Kind        ChallengeKind `json:"kind"`
	Completed   bool          `json:"completed"`
	Success     bool          `json:"success"`
	XPAwarded   int64         `json:"xp_awarded"`
}

// EventResult is the bundle returned by every mutating facade operation,
// rendered into user-facing text by the chat layer.
type EventResult struct {
	XPAwarded    int64             `json:"xp_awarded"`
	LeveledUp    bool              `json:"leveled_up"`
	NewLevel     int               `json:"new_level"`
	Achievements []TierUnlock      `json:"achievements"`
	Challenge    *ChallengeOutcome `json:"challenge,omitempty"`
}

// FreezeResult is the outcome of a streak-freeze purchase attempt.
// A refusal is not an error: the caller renders it either way.
type FreezeResult struct {
	Purchased     bool  `json:"purchased"`
	StreakFreezes int   `json:"streak_freezes"`
	XP            int64 `json:"xp"`
}

// ─── Projections ────────────────────────────────────────────────────────────

// ChallengeStatus is the active-challenge summary inside StatsView.
type ChallengeStatus struct {
	TemplateID      string        `json:"id"`
	Description     string        `json:"description"`
	Kind            ChallengeKind `json:"kind"`
	EndDate         time.Time     `json:"end_date"`
	CurrentSpending float64       `json:"current_spending,omitempty"`
	FeaturesUsed    []string      `json:"features_used,omitempty"`
	Completed       bool          `json:"completed"`
	Success         *bool         `json:"success,omitempty"`
}

// StatsView is the read-only stats projection.
type StatsView struct {
	XP                  int64            `json:"xp"`
	Level               int              `json:"level"`
	XPToNextLevel       int64            `json:"xp_to_next_level"`
	LevelProgressPct    int              `json:"level_progress_percent"`
	CurrentStreak       int              `json:"current_streak"`
	LongestStreak       int              `json:"longest_streak"`
	StreakFreezes       int              `json:"streak_freezes"`
	TotalExpensesLogged int              `json:"total_expenses_logged"`
	UniqueCategories    int              `json:"unique_categories"`
	ReportsViewed       int              `json:"reports_viewed"`
	MonthsUnderBudget   int              `json:"months_under_budget"`
	AchievementsUnlocked int             `json:"achievements_unlocked"`
	Challenge           *ChallengeStatus `json:"current_challenge,omitempty"`
}

// TierView is one rung of an achievement in the achievements projection.
type TierView struct {
	Tier        int    `json:"tier"`
	Description string `json:"description"`
	Threshold   int    `json:"threshold"`
	XPReward    int64  `json:"xp_reward"`
	Unlocked    bool   `json:"unlocked"`
}

// AchievementView is one achievement with per-tier unlock status and the
// user's current metric value.
type AchievementView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	CurrentValue int        `json:"current_value"`
	Tiers        []TierView `json:"tiers"`
}
