// Package progression implements the SpendQuest progression engine:
// XP and levels, daily-activity streaks with freeze forgiveness, tiered
// achievements, and rotating weekly challenges. The engine receives
// already-classified events from the chat layer and owns the per-user
// load-mutate-save cycle.
package progression

// Levels is the ordered level catalog: Levels[n-1] is the cumulative XP
// required for level n. Levels[0] is always 0 (level 1).
type Levels []int64

// DefaultLevels returns the 15-level threshold table.
func DefaultLevels() Levels {
	return Levels{
		0,     // Level 1
		100,   // Level 2
		250,   // Level 3
		500,   // Level 4
		1000,  // Level 5
		2000,  // Level 6
		3500,  // Level 7
		5000,  // Level 8
		7500,  // Level 9
		10000, // Level 10
		15000, // Level 11
		20000, // Level 12
		30000, // Level 13
		50000, // Level 14
		75000, // Level 15
	}
}

// LevelFor returns the level for a given XP amount: the highest level
// whose threshold the XP meets. Never below 1.
func (l Levels) LevelFor(xp int64) int {
	level := 1
	for i, threshold := range l {
		if xp < threshold {
			break
		}
		level = i + 1
	}
	return level
}

// MaxLevel returns the highest defined level.
func (l Levels) MaxLevel() int { return len(l) }

// Floor returns the cumulative XP threshold of the given level.
func (l Levels) Floor(level int) int64 {
	if level < 1 {
		return 0
	}
	if level > len(l) {
		level = len(l)
	}
	return l[level-1]
}

// NextThreshold returns the smallest threshold strictly greater than xp,
// or the top threshold if the XP is already at or past the max level.
func (l Levels) NextThreshold(xp int64) int64 {
	for _, threshold := range l {
		if threshold > xp {
			return threshold
		}
	}
	return l[len(l)-1]
}

// XPToNext returns the XP remaining to the next level, zero at the top.
func (l Levels) XPToNext(xp int64) int64 {
	remaining := l.NextThreshold(xp) - xp
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// ProgressPct returns progress toward the next level as a whole
// percentage. The denominator is floored at 1 so the top level does not
// divide by zero.
func (l Levels) ProgressPct(xp int64) int {
	level := l.LevelFor(xp)
	floor := l.Floor(level)
	span := l.NextThreshold(xp) - floor
	if span < 1 {
		span = 1
	}
	pct := int((xp - floor) * 100 / span)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
