// Package metrics provides Prometheus metrics for the progression
// engine: operation counts, XP flow, level-ups, achievement unlocks,
// challenge outcomes, freeze economy, and store failures.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Operations ─────────────────────────────────────────────────────────────

// Operations counts facade operations by type.
var Operations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "operations_total",
	Help:      "Total progression facade operations.",
}, []string{"op"})

// StoreFailures counts load/save failures against the backing store.
var StoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "store_failures_total",
	Help:      "Total progression store failures.",
}, []string{"op"})

// ─── XP & Levels ────────────────────────────────────────────────────────────

// XPAwarded tracks XP granted by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded, by source.",
}, []string{"source"})

// LevelUps counts level boundary crossings.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "level_ups_total",
	Help:      "Total level-ups across all users.",
})

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementUnlocks counts tier unlocks by achievement.
var AchievementUnlocks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "achievement_unlocks_total",
	Help:      "Total achievement tier unlocks.",
}, []string{"achievement"})

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengesAssigned counts challenge assignments by kind.
var ChallengesAssigned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "challenges_assigned_total",
	Help:      "Total weekly challenges assigned.",
}, []string{"kind"})

// ChallengesCompleted counts settled challenges by kind and outcome.
var ChallengesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "challenges_completed_total",
	Help:      "Total settled weekly challenges.",
}, []string{"kind", "outcome"})

// ─── Streak Freezes ─────────────────────────────────────────────────────────

// FreezesPurchased counts streak freezes bought with XP.
var FreezesPurchased = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "freezes_purchased_total",
	Help:      "Total streak freezes purchased.",
})

// FreezesConsumed counts streak freezes spent bridging missed days.
var FreezesConsumed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "spendquest",
	Name:      "freezes_consumed_total",
	Help:      "Total streak freezes consumed.",
})
