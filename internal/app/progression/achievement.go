package progression

import (
	"github.com/spendquest-app/spendquest/internal/domain"
	"github.com/spendquest-app/spendquest/internal/infra/metrics"
)

// AllAchievements returns the stock achievement catalog: five tiered
// achievements, each against a single metric. Tier numbers are the
// 1-based position in the threshold-ascending tier list.
func AllAchievements() []domain.AchievementDef {
	return []domain.AchievementDef{
		{
			ID: "expense_logger", Name: "Expense Logger", Metric: domain.MetricExpensesLogged,
			Tiers: []domain.AchievementTier{
				{Threshold: 10, XPReward: 20, Description: "Log 10 expenses"},
				{Threshold: 50, XPReward: 50, Description: "Log 50 expenses"},
				{Threshold: 100, XPReward: 100, Description: "Log 100 expenses"},
				{Threshold: 500, XPReward: 200, Description: "Log 500 expenses"},
				{Threshold: 1000, XPReward: 500, Description: "Log 1000 expenses"},
			},
		},
		{
			ID: "streak_master", Name: "Streak Master", Metric: domain.MetricCurrentStreak,
			Tiers: []domain.AchievementTier{
				{Threshold: 3, XPReward: 30, Description: "3-day logging streak"},
				{Threshold: 7, XPReward: 70, Description: "7-day logging streak"},
				{Threshold: 14, XPReward: 140, Description: "14-day logging streak"},
				{Threshold: 30, XPReward: 300, Description: "30-day logging streak"},
				{Threshold: 100, XPReward: 1000, Description: "100-day logging streak"},
			},
		},
		{
			ID: "budget_hero", Name: "Budget Hero", Metric: domain.MetricMonthsUnderBudget,
			Tiers: []domain.AchievementTier{
				{Threshold: 1, XPReward: 50, Description: "Stay under budget for 1 month"},
				{Threshold: 3, XPReward: 150, Description: "Stay under budget for 3 months"},
				{Threshold: 6, XPReward: 300, Description: "Stay under budget for 6 months"},
				{Threshold: 12, XPReward: 1000, Description: "Stay under budget for 12 months"},
			},
		},
		{
			ID: "category_explorer", Name: "Category Explorer", Metric: domain.MetricUniqueCategories,
			Tiers: []domain.AchievementTier{
				{Threshold: 5, XPReward: 25, Description: "Use 5 different categories"},
				{Threshold: 10, XPReward: 75, Description: "Use 10 different categories"},
				{Threshold: 20, XPReward: 150, Description: "Use 20 different categories"},
			},
		},
		{
			ID: "data_analyst", Name: "Data Analyst", Metric: domain.MetricReportsViewed,
			Tiers: []domain.AchievementTier{
				{Threshold: 5, XPReward: 25, Description: "View 5 reports"},
				{Threshold: 25, XPReward: 75, Description: "View 25 reports"},
				{Threshold: 100, XPReward: 150, Description: "View 100 reports"},
			},
		},
	}
}

// checkAchievements scans the catalog against the user's current metrics
// and unlocks every newly qualified tier, awarding its XP. Tiers are
// scanned in ascending order so a metric jump past several thresholds
// unlocks all of them in one call, in order. Re-running with unchanged
// metrics unlocks nothing (idempotent).
func (e *Engine) checkAchievements(u *domain.UserProgression, res *domain.EventResult) {
	for _, def := range e.cfg.Achievements {
		value := u.MetricValue(def.Metric)

		for i, tier := range def.Tiers {
			tierNo := i + 1
			if u.TierUnlocked(def.ID, tierNo) {
				continue
			}
			if value < tier.Threshold {
				// Thresholds ascend, so nothing further can qualify.
				break
			}

			u.AchievementsUnlocked[def.ID] = append(u.AchievementsUnlocked[def.ID], tierNo)
			leveledUp, newLevel := e.award(u, tier.XPReward, "achievement", res)

			res.Achievements = append(res.Achievements, domain.TierUnlock{
				AchievementID: def.ID,
				Name:          def.Name,
				Tier:          tierNo,
				Description:   tier.Description,
				XPAwarded:     tier.XPReward,
				LeveledUp:     leveledUp,
				NewLevel:      newLevel,
			})
			metrics.AchievementUnlocks.WithLabelValues(def.ID).Inc()
		}
	}
}

// achievementViews builds the read-only achievements projection.
func (e *Engine) achievementViews(u *domain.UserProgression) []domain.AchievementView {
	views := make([]domain.AchievementView, 0, len(e.cfg.Achievements))
	for _, def := range e.cfg.Achievements {
		view := domain.AchievementView{
			ID:           def.ID,
			Name:         def.Name,
			CurrentValue: u.MetricValue(def.Metric),
			Tiers:        make([]domain.TierView, 0, len(def.Tiers)),
		}
		for i, tier := range def.Tiers {
			view.Tiers = append(view.Tiers, domain.TierView{
				Tier:        i + 1,
				Description: tier.Description,
				Threshold:   tier.Threshold,
				XPReward:    tier.XPReward,
				Unlocked:    u.TierUnlocked(def.ID, i+1),
			})
		}
		views = append(views, view)
	}
	return views
}
