package progression_test

import (
	"testing"

	"github.com/spendquest-app/spendquest/internal/app/progression"
)

func TestLevelFor_ThresholdTable(t *testing.T) {
	levels := progression.DefaultLevels()

	cases := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{500, 4},
		{7500, 9},
		{74999, 14},
		{75000, 15},
		{1000000, 15},
	}
	for _, c := range cases {
		if got := levels.LevelFor(c.xp); got != c.want {
			t.Errorf("LevelFor(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestLevelFor_Monotonic(t *testing.T) {
	levels := progression.DefaultLevels()

	prev := levels.LevelFor(0)
	for xp := int64(0); xp <= 80000; xp += 37 {
		cur := levels.LevelFor(xp)
		if cur < prev {
			t.Fatalf("level dropped from %d to %d at xp=%d", prev, cur, xp)
		}
		prev = cur
	}
}

func TestXPToNext(t *testing.T) {
	levels := progression.DefaultLevels()

	cases := []struct {
		xp   int64
		want int64
	}{
		{0, 100},
		{10, 90},
		{99, 1},
		{100, 150},
		{75000, 0},  // top level
		{100000, 0}, // past the top
	}
	for _, c := range cases {
		if got := levels.XPToNext(c.xp); got != c.want {
			t.Errorf("XPToNext(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestProgressPct(t *testing.T) {
	levels := progression.DefaultLevels()

	if got := levels.ProgressPct(50); got != 50 {
		t.Errorf("ProgressPct(50) = %d, want 50", got)
	}
	// Level 2 spans 100..250, so 175 is halfway.
	if got := levels.ProgressPct(175); got != 50 {
		t.Errorf("ProgressPct(175) = %d, want 50", got)
	}
	for xp := int64(0); xp <= 100000; xp += 113 {
		pct := levels.ProgressPct(xp)
		if pct < 0 || pct > 100 {
			t.Fatalf("ProgressPct(%d) = %d out of range", xp, pct)
		}
	}
}
