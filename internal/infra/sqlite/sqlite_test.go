package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spendquest-app/spendquest/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProgression_RoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	u := &domain.UserProgression{
		XP:                   1234,
		Level:                5,
		TotalExpensesLogged:  42,
		UniqueCategoriesUsed: domain.NewStringSet("Groceries", "Coffee", "Dining"),
		ReportsViewed:        7,
		MonthsUnderBudget:    2,
		LastActivityDate:     time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		CurrentStreak:        6,
		LongestStreak:        11,
		StreakFreezes:        1,
		AchievementsUnlocked: map[string][]int{"expense_logger": {1, 2}},
		ActiveChallenge: &domain.Challenge{
			InstanceID:       "inst-1",
			TemplateID:       "use_all_reports",
			Kind:             domain.ChallengeFeatureCoverage,
			RequiredFeatures: domain.NewStringSet("monthly", "category"),
			FeaturesUsed:     domain.NewStringSet("monthly"),
			RewardXP:         65,
			EndDate:          time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC),
		},
		CompletedChallenges: []domain.ChallengeRecord{
			{TemplateID: "no_coffee_week", Kind: domain.ChallengeCategoryAvoid, Success: true, XPAwarded: 50},
		},
	}

	if err := db.SaveProgression(ctx, "u1", u); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.LoadProgression(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.XP != 1234 || got.CurrentStreak != 6 || got.StreakFreezes != 1 {
		t.Errorf("scalar fields wrong: %+v", got)
	}
	if !got.LastActivityDate.Equal(u.LastActivityDate) {
		t.Errorf("last activity: got %v, want %v", got.LastActivityDate, u.LastActivityDate)
	}
	if got.UniqueCategoriesUsed.Len() != 3 || !got.UniqueCategoriesUsed.Has("Coffee") {
		t.Errorf("set reconstitution: %v", got.UniqueCategoriesUsed.Values())
	}
	if got.ActiveChallenge == nil || !got.ActiveChallenge.FeaturesUsed.Has("monthly") {
		t.Errorf("challenge reconstitution: %+v", got.ActiveChallenge)
	}
	if len(got.AchievementsUnlocked["expense_logger"]) != 2 {
		t.Errorf("achievement tiers: %v", got.AchievementsUnlocked)
	}
	if len(got.CompletedChallenges) != 1 || !got.CompletedChallenges[0].Success {
		t.Errorf("history: %+v", got.CompletedChallenges)
	}
}

func TestProgression_UnknownUser(t *testing.T) {
	db := testDB(t)

	u, err := db.LoadProgression(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for unknown user, got %+v", u)
	}
}

func TestProgression_UpsertOverwrites(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_ = db.SaveProgression(ctx, "u1", &domain.UserProgression{XP: 10})
	_ = db.SaveProgression(ctx, "u1", &domain.UserProgression{XP: 30})

	got, err := db.LoadProgression(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.XP != 30 {
		t.Errorf("expected upsert to 30 XP, got %d", got.XP)
	}
}

func TestProgression_CorruptRecord(t *testing.T) {
	db := testDB(t)

	_, err := db.db.Exec(
		`INSERT INTO progression (user_id, data, updated_at) VALUES (?, ?, ?)`,
		"u1", "{not json", time.Now().Unix(),
	)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}

	_, err = db.LoadProgression(context.Background(), "u1")
	if !errors.Is(err, domain.ErrCorruptRecord) {
		t.Errorf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestProgression_SparseLegacyRecord(t *testing.T) {
	db := testDB(t)

	// A record written before newer fields existed must still load.
	_, err := db.db.Exec(
		`INSERT INTO progression (user_id, data, updated_at) VALUES (?, ?, ?)`,
		"u1", `{"xp": 120, "total_expenses_logged": 4}`, time.Now().Unix(),
	)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}

	got, err := db.LoadProgression(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.XP != 120 || got.TotalExpensesLogged != 4 {
		t.Errorf("sparse record fields: %+v", got)
	}
	if got.ActiveChallenge != nil || got.CurrentStreak != 0 {
		t.Errorf("missing fields must default to zero values: %+v", got)
	}
}
