package service

import (
	"math"
	"time"
)

// XPPerLevel is the fixed cost of one level; level is always derived from
// total XP so the progress bar (xp % 100) and the stored level agree.
const XPPerLevel = 100

// streakMilestones are the streak lengths that emit a feed entry, matched
// exactly: landing on 8 after a freeze bridge does not re-fire 7.
var streakMilestones = map[int]bool{7: true, 30: true, 100: true, 365: true}

// ProfileSnapshot is the slice of a user's profile the progression rules
// read. It is a value: the calculator never mutates stored state.
type ProfileSnapshot struct {
	XP                int
	StreakCount       int
	StreakFreezeCount int
	LastActivityDate  *time.Time
}

// MilestoneEvent asks the recorder to append one streak_milestone feed entry.
type MilestoneEvent struct {
	StreakCount int `json:"streak_count"`
}

// ProgressionDelta is everything a completed lesson changes on a profile.
// StreakChanged is false for a second completion on the same calendar day,
// in which case the streak fields and LastActivityDate must not be written.
type ProgressionDelta struct {
	XPAwarded         int
	NewXP             int
	NewLevel          int
	LeveledUp         bool
	StreakCount       int
	StreakFreezeCount int
	LastActivityDate  time.Time
	StreakChanged     bool
	Milestones        []MilestoneEvent
}

// LevelForXP derives the level implied by an XP total. Never below 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// ComputeProgression derives the XP, level and streak changes earned by a
// scored quiz completion. XP is the lesson reward scaled by the session
// score, floored. Pure with respect to its inputs; the milestone events it
// returns are side-effect requests for the recorder, not performed here.
func ComputeProgression(lessonXPReward int, scorePercent float64, profile ProfileSnapshot, today time.Time) ProgressionDelta {
	awarded := int(math.Floor(float64(lessonXPReward) * scorePercent / 100))
	if awarded < 0 {
		awarded = 0
	}
	return applyReward(awarded, profile, today)
}

// ComputeDirectCompletion is the unscaled call site: completing a non-quiz
// lesson gives full credit for the lesson's reward.
func ComputeDirectCompletion(lessonXPReward int, profile ProfileSnapshot, today time.Time) ProgressionDelta {
	awarded := lessonXPReward
	if awarded < 0 {
		awarded = 0
	}
	return applyReward(awarded, profile, today)
}

func applyReward(xpAwarded int, profile ProfileSnapshot, today time.Time) ProgressionDelta {
	d := ProgressionDelta{
		XPAwarded: xpAwarded,
		NewXP:     profile.XP + xpAwarded,
	}
	d.NewLevel = LevelForXP(d.NewXP)
	d.LeveledUp = d.NewLevel > LevelForXP(profile.XP)

	today = Midnight(today)
	d.StreakCount = profile.StreakCount
	d.StreakFreezeCount = profile.StreakFreezeCount
	d.LastActivityDate = today
	d.StreakChanged = true

	grew := false

	switch {
	case profile.LastActivityDate == nil:
		// First-ever activity.
		d.StreakCount = 1
		grew = true

	default:
		daysDiff := DaysBetween(*profile.LastActivityDate, today)
		switch {
		case daysDiff <= 0:
			// Already counted today; leave streak, freezes and the
			// activity date untouched. Distinct short-circuit so a second
			// same-day completion can never double-count.
			d.StreakChanged = false
			d.LastActivityDate = Midnight(*profile.LastActivityDate)

		case daysDiff == 1:
			d.StreakCount = profile.StreakCount + 1
			grew = true

		case profile.StreakFreezeCount > 0:
			// A freeze bridges the gap: the streak survives unchanged and
			// one freeze is consumed. No milestone can re-fire here.
			d.StreakFreezeCount = profile.StreakFreezeCount - 1

		default:
			d.StreakCount = 1
			grew = true
		}
	}

	if grew && streakMilestones[d.StreakCount] {
		d.Milestones = append(d.Milestones, MilestoneEvent{StreakCount: d.StreakCount})
	}

	return d
}

// Midnight truncates a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b, each truncated to
// midnight before subtracting.
func DaysBetween(a, b time.Time) int {
	return int(math.Floor(Midnight(b).Sub(Midnight(a)).Hours() / 24))
}
