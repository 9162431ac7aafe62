package progression

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/spendquest-app/spendquest/internal/domain"
	"github.com/spendquest-app/spendquest/internal/infra/metrics"
)

// Store is the durable per-user record store. LoadProgression returns
// (nil, nil) for an unknown user; a malformed record is reported as
// domain.ErrCorruptRecord and an I/O failure as domain.ErrStoreUnavailable.
type Store interface {
	LoadProgression(ctx context.Context, userID string) (*domain.UserProgression, error)
	SaveProgression(ctx context.Context, userID string, u *domain.UserProgression) error
}

// Engine is the progression facade. Every mutating operation runs a
// short load-mutate-save cycle under a per-user lock: the cycle itself
// is not atomic, so concurrent calls for the same user are serialized
// to avoid lost updates (notably on streak freezes and XP).
type Engine struct {
	cfg   Config
	store Store

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewEngine creates an engine over the given store and configuration.
func NewEngine(store Store, cfg Config) *Engine {
	return &Engine{
		cfg:   cfg,
		store: store,
		users: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing operations for one user.
func (e *Engine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.users[userID]
	if !ok {
		l = &sync.Mutex{}
		e.users[userID] = l
	}
	return l
}

// award adds XP, tracking the per-award level transition. Returns
// whether this award crossed a level boundary and the level after it.
func (e *Engine) award(u *domain.UserProgression, amount int64, source string, res *domain.EventResult) (bool, int) {
	before := e.cfg.Levels.LevelFor(u.XP)
	u.XP += amount
	after := e.cfg.Levels.LevelFor(u.XP)

	res.XPAwarded += amount
	metrics.XPAwarded.WithLabelValues(source).Add(float64(amount))
	if after > before {
		metrics.LevelUps.Inc()
	}
	return after > before, after
}

// newUser creates a fresh record with documented defaults and a freshly
// selected weekly challenge.
func (e *Engine) newUser(now time.Time) *domain.UserProgression {
	u := &domain.UserProgression{
		Level:                1,
		UniqueCategoriesUsed: domain.NewStringSet(),
		AchievementsUnlocked: make(map[string][]int),
	}
	e.assignChallenge(u, now)
	return u
}

// mergeDefaults fills fields a record persisted by an older build may
// lack, and recomputes the cached level from XP.
func (e *Engine) mergeDefaults(u *domain.UserProgression) {
	if u.UniqueCategoriesUsed == nil {
		u.UniqueCategoriesUsed = domain.NewStringSet()
	}
	if u.AchievementsUnlocked == nil {
		u.AchievementsUnlocked = make(map[string][]int)
	}
	if ch := u.ActiveChallenge; ch != nil && ch.Kind == domain.ChallengeFeatureCoverage {
		if ch.FeaturesUsed == nil {
			ch.FeaturesUsed = domain.NewStringSet()
		}
		if ch.RequiredFeatures == nil {
			ch.RequiredFeatures = e.requiredFeaturesFor(ch.TemplateID)
		}
	}
	u.Level = e.cfg.Levels.LevelFor(u.XP)
}

// requiredFeaturesFor rebuilds a coverage challenge's required set from
// the catalog when an older record lacks it.
func (e *Engine) requiredFeaturesFor(templateID string) domain.StringSet {
	for _, tmpl := range e.cfg.Challenges {
		if tmpl.ID == templateID {
			return domain.NewStringSet(tmpl.Features...)
		}
	}
	return domain.NewStringSet()
}

// loadUser loads (or initializes) a user record under a bounded store
// timeout. A corrupt record falls back to defaults: gamification state
// is non-critical, so availability wins over fidelity.
func (e *Engine) loadUser(ctx context.Context, userID string, now time.Time) (u *domain.UserProgression, existed bool, err error) {
	lctx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
	defer cancel()

	u, err = e.store.LoadProgression(lctx, userID)
	if errors.Is(err, domain.ErrCorruptRecord) {
		log.Printf("[progression] corrupt record for user %q: %v (resetting to defaults)", userID, err)
		u, err = nil, nil
	}
	if err != nil {
		metrics.StoreFailures.WithLabelValues("load").Inc()
		return nil, false, err
	}

	if u == nil {
		return e.newUser(now), false, nil
	}
	e.mergeDefaults(u)
	return u, true, nil
}

// saveUser persists the record under a bounded store timeout.
func (e *Engine) saveUser(ctx context.Context, userID string, u *domain.UserProgression) error {
	sctx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
	defer cancel()

	if err := e.store.SaveProgression(sctx, userID, u); err != nil {
		metrics.StoreFailures.WithLabelValues("save").Inc()
		return err
	}
	return nil
}

// finalize stamps the result bundle with the call-wide level transition.
func (e *Engine) finalize(u *domain.UserProgression, levelBefore int, res *domain.EventResult) {
	u.Level = e.cfg.Levels.LevelFor(u.XP)
	res.NewLevel = u.Level
	res.LeveledUp = u.Level > levelBefore
}

// firstOutcome picks the outcome to report when a call settles a
// challenge through more than one path. Callers order an expiry
// settlement first: it may carry reward XP, while the freshly rotated
// challenge can settle again on the very same event.
func firstOutcome(outcomes ...*domain.ChallengeOutcome) *domain.ChallengeOutcome {
	for _, o := range outcomes {
		if o != nil {
			return o
		}
	}
	return nil
}

// ─── Facade Operations ──────────────────────────────────────────────────────

// RecordExpense records a logged expense for the user.
func (e *Engine) RecordExpense(ctx context.Context, userID, category string, amount float64) (*domain.EventResult, error) {
	return e.RecordExpenseAt(ctx, userID, category, amount, time.Now())
}

// RecordExpenseAt is RecordExpense with an explicit event time.
func (e *Engine) RecordExpenseAt(ctx context.Context, userID, category string, amount float64, now time.Time) (*domain.EventResult, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	if category == "" {
		return nil, domain.ErrEmptyCategory
	}
	if amount < 0 {
		return nil, domain.ErrNegativeAmount
	}
	metrics.Operations.WithLabelValues("record_expense").Inc()

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	u, _, err := e.loadUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	res := &domain.EventResult{}
	levelBefore := e.cfg.Levels.LevelFor(u.XP)

	settled := e.settleExpired(u, now, res)

	u.TotalExpensesLogged++
	u.UniqueCategoriesUsed.Add(category)

	e.advanceStreak(u, now, res)
	streakOutcome := e.checkStreakChallenge(u, now, res)

	e.award(u, e.cfg.XPExpense, "expense", res)
	e.checkAchievements(u, res)

	expenseOutcome := e.applyExpenseChallenge(u, category, amount, now, res)
	res.Challenge = firstOutcome(settled, streakOutcome, expenseOutcome)

	e.finalize(u, levelBefore, res)
	if err := e.saveUser(ctx, userID, u); err != nil {
		return nil, err
	}
	return res, nil
}

// RecordReportView records a viewed report for the user.
func (e *Engine) RecordReportView(ctx context.Context, userID, kind string) (*domain.EventResult, error) {
	return e.RecordReportViewAt(ctx, userID, kind, time.Now())
}

// RecordReportViewAt is RecordReportView with an explicit event time.
func (e *Engine) RecordReportViewAt(ctx context.Context, userID, kind string, now time.Time) (*domain.EventResult, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	if !e.cfg.knownReportKind(kind) {
		return nil, domain.ErrUnknownReportKind
	}
	metrics.Operations.WithLabelValues("record_report_view").Inc()

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	u, _, err := e.loadUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	res := &domain.EventResult{}
	levelBefore := e.cfg.Levels.LevelFor(u.XP)

	settled := e.settleExpired(u, now, res)

	u.ReportsViewed++

	e.advanceStreak(u, now, res)
	streakOutcome := e.checkStreakChallenge(u, now, res)

	e.award(u, e.cfg.XPReportView, "report", res)
	e.checkAchievements(u, res)

	reportOutcome := e.applyReportChallenge(u, kind, now, res)
	res.Challenge = firstOutcome(settled, streakOutcome, reportOutcome)

	e.finalize(u, levelBefore, res)
	if err := e.saveUser(ctx, userID, u); err != nil {
		return nil, err
	}
	return res, nil
}

// RecordMonthBudgetOutcome records whether the user closed the month
// under budget. An over-budget month changes nothing.
func (e *Engine) RecordMonthBudgetOutcome(ctx context.Context, userID string, underBudget bool) (*domain.EventResult, error) {
	return e.RecordMonthBudgetOutcomeAt(ctx, userID, underBudget, time.Now())
}

// RecordMonthBudgetOutcomeAt is RecordMonthBudgetOutcome with an
// explicit event time.
func (e *Engine) RecordMonthBudgetOutcomeAt(ctx context.Context, userID string, underBudget bool, now time.Time) (*domain.EventResult, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	metrics.Operations.WithLabelValues("record_month_outcome").Inc()

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	u, existed, err := e.loadUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	res := &domain.EventResult{}
	levelBefore := e.cfg.Levels.LevelFor(u.XP)

	settled := e.settleExpired(u, now, res)
	res.Challenge = settled

	if !underBudget {
		// No state change for an over-budget month; persist only if an
		// expired challenge was settled on an existing record.
		e.finalize(u, levelBefore, res)
		if settled != nil && existed {
			if err := e.saveUser(ctx, userID, u); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	u.MonthsUnderBudget++
	e.award(u, e.cfg.XPUnderBudget, "month_budget", res)
	e.checkAchievements(u, res)

	e.finalize(u, levelBefore, res)
	if err := e.saveUser(ctx, userID, u); err != nil {
		return nil, err
	}
	return res, nil
}

// PurchaseStreakFreeze atomically trades XP for one streak freeze.
// A refusal (insufficient XP) is an ordinary result, not an error, and
// leaves state untouched.
func (e *Engine) PurchaseStreakFreeze(ctx context.Context, userID string) (*domain.FreezeResult, error) {
	return e.PurchaseStreakFreezeAt(ctx, userID, time.Now())
}

// PurchaseStreakFreezeAt is PurchaseStreakFreeze with an explicit time.
func (e *Engine) PurchaseStreakFreezeAt(ctx context.Context, userID string, now time.Time) (*domain.FreezeResult, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	metrics.Operations.WithLabelValues("purchase_freeze").Inc()

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	u, existed, err := e.loadUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	res := &domain.EventResult{}
	settled := e.settleExpired(u, now, res)

	if u.XP < e.cfg.FreezeCost {
		// The refusal itself mutates nothing, but an expiry settlement
		// on an existing record still has to be persisted.
		if settled != nil && existed {
			u.Level = e.cfg.Levels.LevelFor(u.XP)
			if err := e.saveUser(ctx, userID, u); err != nil {
				return nil, err
			}
		}
		return &domain.FreezeResult{Purchased: false, StreakFreezes: u.StreakFreezes, XP: u.XP}, nil
	}

	u.XP -= e.cfg.FreezeCost
	u.StreakFreezes++
	u.Level = e.cfg.Levels.LevelFor(u.XP)

	if err := e.saveUser(ctx, userID, u); err != nil {
		return nil, err
	}
	metrics.FreezesPurchased.Inc()
	return &domain.FreezeResult{Purchased: true, StreakFreezes: u.StreakFreezes, XP: u.XP}, nil
}

// Stats returns the read-only stats projection. Never mutates or
// persists; an expired challenge stays visible here until the next
// mutating call rotates it.
func (e *Engine) Stats(ctx context.Context, userID string) (*domain.StatsView, error) {
	return e.StatsAt(ctx, userID, time.Now())
}

// StatsAt is Stats with an explicit time (used for default-state
// challenge assignment on unknown users).
func (e *Engine) StatsAt(ctx context.Context, userID string, now time.Time) (*domain.StatsView, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	metrics.Operations.WithLabelValues("stats").Inc()

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	u, _, err := e.loadUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &domain.StatsView{
		XP:                   u.XP,
		Level:                u.Level,
		XPToNextLevel:        e.cfg.Levels.XPToNext(u.XP),
		LevelProgressPct:     e.cfg.Levels.ProgressPct(u.XP),
		CurrentStreak:        u.CurrentStreak,
		LongestStreak:        u.LongestStreak,
		StreakFreezes:        u.StreakFreezes,
		TotalExpensesLogged:  u.TotalExpensesLogged,
		UniqueCategories:     u.UniqueCategoriesUsed.Len(),
		ReportsViewed:        u.ReportsViewed,
		MonthsUnderBudget:    u.MonthsUnderBudget,
		AchievementsUnlocked: u.UnlockedTierCount(),
		Challenge:            challengeStatus(u.ActiveChallenge),
	}, nil
}

// Achievements returns the read-only achievements projection: every
// catalog entry with per-tier unlock flags and the current metric value.
func (e *Engine) Achievements(ctx context.Context, userID string) ([]domain.AchievementView, error) {
	return e.AchievementsAt(ctx, userID, time.Now())
}

// AchievementsAt is Achievements with an explicit time.
func (e *Engine) AchievementsAt(ctx context.Context, userID string, now time.Time) ([]domain.AchievementView, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}
	metrics.Operations.WithLabelValues("achievements").Inc()

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	u, _, err := e.loadUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return e.achievementViews(u), nil
}
