package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
		{-5, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestComputeProgressionScalesXP(t *testing.T) {
	today := day(2026, time.March, 10)

	cases := []struct {
		name    string
		reward  int
		score   float64
		awarded int
	}{
		{"full score", 20, 100, 20},
		{"three quarters", 20, 75, 15},
		{"floored fraction", 10, 100.0 / 3.0, 3},
		{"zero score", 20, 0, 0},
		{"one of seven", 7, 100.0 / 7.0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := ComputeProgression(tc.reward, tc.score, ProfileSnapshot{XP: 50}, today)
			assert.Equal(t, tc.awarded, d.XPAwarded)
			assert.Equal(t, 50+tc.awarded, d.NewXP)
		})
	}
}

func TestComputeDirectCompletionIsUnscaled(t *testing.T) {
	d := ComputeDirectCompletion(10, ProfileSnapshot{XP: 95}, day(2026, time.March, 10))
	assert.Equal(t, 10, d.XPAwarded)
	assert.Equal(t, 105, d.NewXP)
	assert.Equal(t, 2, d.NewLevel)
	assert.True(t, d.LeveledUp)
}

func TestLevelUpDetection(t *testing.T) {
	today := day(2026, time.March, 10)

	d := ComputeProgression(20, 100, ProfileSnapshot{XP: 85}, today)
	assert.Equal(t, 105, d.NewXP)
	assert.Equal(t, 2, d.NewLevel)
	assert.True(t, d.LeveledUp)

	d = ComputeProgression(20, 50, ProfileSnapshot{XP: 85}, today)
	assert.Equal(t, 95, d.NewXP)
	assert.Equal(t, 1, d.NewLevel)
	assert.False(t, d.LeveledUp)
}

func TestStreakFirstActivity(t *testing.T) {
	d := ComputeDirectCompletion(5, ProfileSnapshot{}, day(2026, time.March, 10))
	assert.Equal(t, 1, d.StreakCount)
	assert.True(t, d.StreakChanged)
	assert.Equal(t, day(2026, time.March, 10), d.LastActivityDate)
	assert.Empty(t, d.Milestones)
}

func TestStreakSameDayIsNoOp(t *testing.T) {
	profile := ProfileSnapshot{
		StreakCount:      6,
		LastActivityDate: dayPtr(2026, time.March, 10),
	}
	d := ComputeDirectCompletion(5, profile, day(2026, time.March, 10).Add(18*time.Hour))

	assert.False(t, d.StreakChanged)
	assert.Equal(t, 6, d.StreakCount)
	assert.Equal(t, day(2026, time.March, 10), d.LastActivityDate)
	assert.Empty(t, d.Milestones)
}

func TestStreakConsecutiveDayIncrements(t *testing.T) {
	profile := ProfileSnapshot{
		StreakCount:      6,
		LastActivityDate: dayPtr(2026, time.March, 9),
	}
	d := ComputeDirectCompletion(5, profile, day(2026, time.March, 10))

	assert.True(t, d.StreakChanged)
	assert.Equal(t, 7, d.StreakCount)
	require.Len(t, d.Milestones, 1)
	assert.Equal(t, 7, d.Milestones[0].StreakCount)
}

func TestStreakFreezeBridgesGap(t *testing.T) {
	profile := ProfileSnapshot{
		StreakCount:       7,
		StreakFreezeCount: 2,
		LastActivityDate:  dayPtr(2026, time.March, 7),
	}
	d := ComputeDirectCompletion(5, profile, day(2026, time.March, 10))

	assert.True(t, d.StreakChanged)
	assert.Equal(t, 7, d.StreakCount, "streak survives the gap")
	assert.Equal(t, 1, d.StreakFreezeCount, "one freeze consumed")
	assert.Empty(t, d.Milestones, "a preserved count must not re-announce its milestone")
}

func TestStreakResetsWithoutFreeze(t *testing.T) {
	profile := ProfileSnapshot{
		StreakCount:      30,
		LastActivityDate: dayPtr(2026, time.March, 1),
	}
	d := ComputeDirectCompletion(5, profile, day(2026, time.March, 10))

	assert.True(t, d.StreakChanged)
	assert.Equal(t, 1, d.StreakCount)
	assert.Equal(t, 0, d.StreakFreezeCount)
	assert.Empty(t, d.Milestones)
}

func TestStreakMilestonesExactMatchOnly(t *testing.T) {
	for _, milestone := range []int{7, 30, 100, 365} {
		profile := ProfileSnapshot{
			StreakCount:      milestone - 1,
			LastActivityDate: dayPtr(2026, time.March, 9),
		}
		d := ComputeDirectCompletion(5, profile, day(2026, time.March, 10))
		require.Len(t, d.Milestones, 1, "landing on %d", milestone)
		assert.Equal(t, milestone, d.Milestones[0].StreakCount)
	}

	// Crossing past a milestone without landing on it stays silent.
	profile := ProfileSnapshot{
		StreakCount:      7,
		LastActivityDate: dayPtr(2026, time.March, 9),
	}
	d := ComputeDirectCompletion(5, profile, day(2026, time.March, 10))
	assert.Equal(t, 8, d.StreakCount)
	assert.Empty(t, d.Milestones)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(day(2026, time.March, 10), day(2026, time.March, 10)))
	assert.Equal(t, 1, DaysBetween(day(2026, time.March, 9), day(2026, time.March, 10)))
	assert.Equal(t, 3, DaysBetween(day(2026, time.March, 7), day(2026, time.March, 10)))
	assert.Equal(t, -1, DaysBetween(day(2026, time.March, 10), day(2026, time.March, 9)))

	// Clock times inside the day never change the whole-day count.
	late := day(2026, time.March, 9).Add(23 * time.Hour)
	early := day(2026, time.March, 10).Add(1 * time.Minute)
	assert.Equal(t, 1, DaysBetween(late, early))
}

func TestQuizCompletionScenario(t *testing.T) {
	// A 4-question quiz worth 20 XP with 3 correct answers: 75% score,
	// floor(20*0.75)=15 XP.
	summary, err := Summarize(results(true, true, true, false), 4)
	require.NoError(t, err)
	assert.InDelta(t, 75, summary.ScorePercent, 1e-9)

	profile := ProfileSnapshot{
		XP:               90,
		StreakCount:      2,
		LastActivityDate: dayPtr(2026, time.March, 9),
	}
	d := ComputeProgression(20, summary.ScorePercent, profile, day(2026, time.March, 10))

	assert.Equal(t, 15, d.XPAwarded)
	assert.Equal(t, 105, d.NewXP)
	assert.Equal(t, 2, d.NewLevel)
	assert.True(t, d.LeveledUp)
	assert.Equal(t, 3, d.StreakCount)
}

func TestDirectCompletionScenario(t *testing.T) {
	// A video lesson worth 10 XP completes with full, unscaled credit on a
	// profile with no prior activity.
	d := ComputeDirectCompletion(10, ProfileSnapshot{}, day(2026, time.March, 10))

	assert.Equal(t, 10, d.XPAwarded)
	assert.Equal(t, 10, d.NewXP)
	assert.Equal(t, 1, d.NewLevel)
	assert.False(t, d.LeveledUp)
	assert.Equal(t, 1, d.StreakCount)
}
