package progression

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/spendquest-app/spendquest/internal/domain"
	"github.com/spendquest-app/spendquest/internal/infra/metrics"
)

// DefaultChallenges returns the weekly challenge catalog. IDs must stay
// stable: completed-challenge history references them and the rotation
// exclusion window compares against them.
func DefaultChallenges() []domain.ChallengeTemplate {
	return []domain.ChallengeTemplate{
		{
			ID:          "reduce_dining",
			Description: "Reduce dining expenses by 15% from last week",
			Kind:        domain.ChallengeCategoryReduction,
			Category:    "Restaurant",
			TargetPct:   15,
			RewardXP:    75,
		},
		{
			ID:          "no_coffee_week",
			Description: "Skip coffee shops for a week",
			Kind:        domain.ChallengeCategoryAvoid,
			Category:    "Coffee",
			RewardXP:    50,
		},
		{
			ID:          "grocery_budget",
			Description: "Stay under your grocery budget",
			Kind:        domain.ChallengeCategoryUnderBudget,
			Category:    "Groceries",
			RewardXP:    60,
		},
		{
			ID:           "log_streak",
			Description:  "Log expenses for 5 days in a row",
			Kind:         domain.ChallengeStreakLength,
			DaysRequired: 5,
			RewardXP:     80,
		},
		{
			ID:          "use_all_reports",
			Description: "Check all report types in one week",
			Kind:        domain.ChallengeFeatureCoverage,
			Features:    []string{"monthly", "category", "chart", "balance"},
			RewardXP:    65,
		},
	}
}

// nextSunday returns the upcoming Sunday as a civil date. If today is
// already Sunday it rolls a full week — a challenge never ends the day
// it is assigned.
func nextSunday(t time.Time) time.Time {
	today := civilDate(t)
	days := (7 - int(today.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

// assignChallenge rotates to a freshly selected challenge: uniformly at
// random from the catalog, excluding template ids seen in the trailing
// history window, falling back to the full catalog if that excludes
// everything.
func (e *Engine) assignChallenge(u *domain.UserProgression, now time.Time) {
	recent := make(map[string]bool, e.cfg.RecentChallengeWindow)
	history := u.CompletedChallenges
	if n := len(history); n > 0 {
		start := n - e.cfg.RecentChallengeWindow
		if start < 0 {
			start = 0
		}
		for _, rec := range history[start:] {
			recent[rec.TemplateID] = true
		}
	}

	candidates := make([]domain.ChallengeTemplate, 0, len(e.cfg.Challenges))
	for _, tmpl := range e.cfg.Challenges {
		if !recent[tmpl.ID] {
			candidates = append(candidates, tmpl)
		}
	}
	if len(candidates) == 0 {
		candidates = e.cfg.Challenges
	}

	r := rand.New(rand.NewSource(now.UnixNano()))
	tmpl := candidates[r.Intn(len(candidates))]

	ch := &domain.Challenge{
		InstanceID:   uuid.NewString(),
		TemplateID:   tmpl.ID,
		Description:  tmpl.Description,
		Kind:         tmpl.Kind,
		Category:     tmpl.Category,
		TargetPct:    tmpl.TargetPct,
		DaysRequired: tmpl.DaysRequired,
		RewardXP:     tmpl.RewardXP,
		EndDate:      nextSunday(now),
	}
	if len(tmpl.Features) > 0 {
		ch.RequiredFeatures = domain.NewStringSet(tmpl.Features...)
	}
	if ch.Kind == domain.ChallengeFeatureCoverage {
		ch.FeaturesUsed = domain.NewStringSet()
	}
	u.ActiveChallenge = ch
	metrics.ChallengesAssigned.WithLabelValues(string(tmpl.Kind)).Inc()
}

// completeChallenge marks the active challenge terminal, pays the reward
// on success, and appends the history record. The challenge object stays
// attached (guarded by Completed) until expiry rotation replaces it.
func (e *Engine) completeChallenge(u *domain.UserProgression, success bool, now time.Time, res *domain.EventResult) *domain.ChallengeOutcome {
	ch := u.ActiveChallenge
	ch.Completed = true
	ch.Success = &success

	var awarded int64
	if success {
		awarded = ch.RewardXP
		e.award(u, awarded, "challenge", res)
	}

	u.CompletedChallenges = append(u.CompletedChallenges, domain.ChallengeRecord{
		TemplateID:  ch.TemplateID,
		InstanceID:  ch.InstanceID,
		Description: ch.Description,
		Kind:        ch.Kind,
		Success:     success,
		XPAwarded:   awarded,
		CompletedAt: civilDate(now),
	})

	outcome := "failed"
	if success {
		outcome = "succeeded"
	}
	metrics.ChallengesCompleted.WithLabelValues(string(ch.Kind), outcome).Inc()

	return &domain.ChallengeOutcome{
		TemplateID:  ch.TemplateID,
		Description: ch.Description,
		Kind:        ch.Kind,
		Completed:   true,
		Success:     success,
		XPAwarded:   awarded,
	}
}

// settleExpired closes out an active challenge whose end date has
// passed, then rotates. Avoid and under-budget challenges that were
// never breached count as successes; feature-coverage and streak-length
// challenges that never met their target, and reduction challenges
// (whose baseline is external and unavailable), are archived as
// failures without XP. Called at the top of every mutating operation.
func (e *Engine) settleExpired(u *domain.UserProgression, now time.Time, res *domain.EventResult) *domain.ChallengeOutcome {
	ch := u.ActiveChallenge
	if ch == nil {
		e.assignChallenge(u, now)
		return nil
	}
	if !civilDate(now).After(civilDate(ch.EndDate)) {
		return nil
	}

	var outcome *domain.ChallengeOutcome
	if !ch.Completed {
		var success bool
		switch ch.Kind {
		case domain.ChallengeCategoryAvoid, domain.ChallengeCategoryUnderBudget:
			success = true
		case domain.ChallengeStreakLength:
			success = u.CurrentStreak >= ch.DaysRequired
		case domain.ChallengeFeatureCoverage:
			success = ch.FeaturesUsed.ContainsAll(ch.RequiredFeatures)
		case domain.ChallengeCategoryReduction:
			success = false
		}
		outcome = e.completeChallenge(u, success, now, res)
	}

	e.assignChallenge(u, now)
	return outcome
}

// applyExpenseChallenge feeds an expense event into the active
// challenge. Completed challenges are terminal: matching events are
// no-ops. Returns an outcome only when the event settles the challenge.
func (e *Engine) applyExpenseChallenge(u *domain.UserProgression, category string, amount float64, now time.Time, res *domain.EventResult) *domain.ChallengeOutcome {
	ch := u.ActiveChallenge
	if ch == nil || ch.Completed || !ch.MatchesCategory(category) {
		return nil
	}

	switch ch.Kind {
	case domain.ChallengeCategoryAvoid:
		// First matching spend fails the challenge immediately.
		return e.completeChallenge(u, false, now, res)

	case domain.ChallengeCategoryUnderBudget:
		ch.CurrentSpending += amount
		budget, ok := e.cfg.Budgets.CategoryBudget(ch.Category)
		if ok && ch.CurrentSpending > budget {
			return e.completeChallenge(u, false, now, res)
		}

	case domain.ChallengeCategoryReduction:
		// Tracked for visibility; the reduction baseline is an external
		// metric, so settlement happens only at expiry.
		ch.CurrentSpending += amount

	case domain.ChallengeStreakLength, domain.ChallengeFeatureCoverage:
		// Not expense-driven.
	}
	return nil
}

// applyReportChallenge feeds a report-view event into a feature-coverage
// challenge. Succeeds once the used set covers the required set.
func (e *Engine) applyReportChallenge(u *domain.UserProgression, kind string, now time.Time, res *domain.EventResult) *domain.ChallengeOutcome {
	ch := u.ActiveChallenge
	if ch == nil || ch.Completed || ch.Kind != domain.ChallengeFeatureCoverage {
		return nil
	}
	if !ch.RequiredFeatures.Has(kind) || ch.FeaturesUsed.Has(kind) {
		return nil
	}

	ch.FeaturesUsed.Add(kind)
	if ch.FeaturesUsed.ContainsAll(ch.RequiredFeatures) {
		return e.completeChallenge(u, true, now, res)
	}
	return nil
}

// checkStreakChallenge settles a streak-length challenge once the
// tracker's current streak reaches the required length. Runs after
// every streak update.
func (e *Engine) checkStreakChallenge(u *domain.UserProgression, now time.Time, res *domain.EventResult) *domain.ChallengeOutcome {
	ch := u.ActiveChallenge
	if ch == nil || ch.Completed || ch.Kind != domain.ChallengeStreakLength {
		return nil
	}
	if u.CurrentStreak >= ch.DaysRequired {
		return e.completeChallenge(u, true, now, res)
	}
	return nil
}

// challengeStatus builds the active-challenge summary for StatsView.
func challengeStatus(ch *domain.Challenge) *domain.ChallengeStatus {
	if ch == nil {
		return nil
	}
	status := &domain.ChallengeStatus{
		TemplateID:      ch.TemplateID,
		Description:     ch.Description,
		Kind:            ch.Kind,
		EndDate:         ch.EndDate,
		CurrentSpending: ch.CurrentSpending,
		Completed:       ch.Completed,
	}
	if ch.Success != nil {
		s := *ch.Success
		status.Success = &s
	}
	if ch.FeaturesUsed != nil {
		status.FeaturesUsed = ch.FeaturesUsed.Values()
	}
	return status
}
