package domain

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestStringSet_MarshalsSorted(t *testing.T) {
	s := NewStringSet("chart", "balance", "monthly", "category")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["balance","category","chart","monthly"]`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	var back StringSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Len() != 4 || !back.Has("chart") {
		t.Errorf("round trip lost members: %v", back.Values())
	}
}

func TestStringSet_ContainsAll(t *testing.T) {
	have := NewStringSet("monthly", "category", "chart")

	if !have.ContainsAll(NewStringSet("monthly", "chart")) {
		t.Error("expected subset to be contained")
	}
	if have.ContainsAll(NewStringSet("monthly", "balance")) {
		t.Error("missing member must fail containment")
	}
	if !have.ContainsAll(NewStringSet()) {
		t.Error("empty set is contained in anything")
	}
}

func TestChallenge_MatchesCategory(t *testing.T) {
	ch := &Challenge{Kind: ChallengeCategoryAvoid, Category: "Coffee"}

	if !ch.MatchesCategory("coffee") || !ch.MatchesCategory("COFFEE") {
		t.Error("category match must be case-insensitive")
	}
	if ch.MatchesCategory("Groceries") {
		t.Error("different category must not match")
	}

	uncategorized := &Challenge{Kind: ChallengeStreakLength}
	if uncategorized.MatchesCategory("Coffee") {
		t.Error("a challenge without a category matches nothing")
	}
}

func TestChallenge_SuccessAbsentUntilCompleted(t *testing.T) {
	inFlight := &Challenge{
		InstanceID: "inst-1",
		TemplateID: "no_coffee_week",
		Kind:       ChallengeCategoryAvoid,
		Category:   "Coffee",
	}
	data, err := json.Marshal(inFlight)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Contains(data, []byte(`"success"`)) {
		t.Errorf("in-flight challenge must not carry a success flag: %s", data)
	}

	failed := false
	inFlight.Completed = true
	inFlight.Success = &failed
	data, err = json.Marshal(inFlight)
	if err != nil {
		t.Fatalf("marshal completed: %v", err)
	}
	if !bytes.Contains(data, []byte(`"success":false`)) {
		t.Errorf("completed challenge must carry its outcome: %s", data)
	}
}

func TestUserProgression_MetricValue(t *testing.T) {
	u := &UserProgression{
		TotalExpensesLogged:  12,
		CurrentStreak:        4,
		MonthsUnderBudget:    2,
		UniqueCategoriesUsed: NewStringSet("a", "b", "c"),
		ReportsViewed:        9,
	}

	cases := []struct {
		metric Metric
		want   int
	}{
		{MetricExpensesLogged, 12},
		{MetricCurrentStreak, 4},
		{MetricMonthsUnderBudget, 2},
		{MetricUniqueCategories, 3},
		{MetricReportsViewed, 9},
	}
	for _, c := range cases {
		if got := u.MetricValue(c.metric); got != c.want {
			t.Errorf("MetricValue(%s) = %d, want %d", c.metric, got, c.want)
		}
	}
}
