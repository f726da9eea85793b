package services

import (
	"testing"
	"time"
)

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func TestNextStreakFirstActivity(t *testing.T) {
	now := day(2025, time.March, 10)
	if got := nextStreak(time.Time{}, now, 0); got != 1 {
		t.Errorf("expected first activity to start streak at 1, got %d", got)
	}
}

func TestNextStreakSameDay(t *testing.T) {
	// Morning activity, repeat in the evening of the same UTC day.
	last := time.Date(2025, time.March, 10, 8, 30, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 10, 22, 15, 0, 0, time.UTC)

	if got := nextStreak(last, now, 4); got != 4 {
		t.Errorf("expected same-day repeat to leave streak at 4, got %d", got)
	}
}

func TestNextStreakConsecutiveDay(t *testing.T) {
	last := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, time.March, 11, 0, 5, 0, 0, time.UTC)

	if got := nextStreak(last, now, 4); got != 5 {
		t.Errorf("expected next-day activity to extend streak to 5, got %d", got)
	}
}

func TestNextStreakGapResets(t *testing.T) {
	last := day(2025, time.March, 10)
	for _, gap := range []int{2, 3, 30} {
		now := last.AddDate(0, 0, gap)
		if got := nextStreak(last, now, 9); got != 1 {
			t.Errorf("expected %d-day gap to reset streak to 1, got %d", gap, got)
		}
	}
}

func TestNextStreakRepairsCorruptZero(t *testing.T) {
	last := day(2025, time.March, 10)
	if got := nextStreak(last, last, 0); got != 1 {
		t.Errorf("expected same-day with zero streak to report 1, got %d", got)
	}
}

func TestMilestoneFiresOnExactLanding(t *testing.T) {
	milestone, bonus := milestoneFor(true, 3)
	if milestone != 3 || bonus != streakMilestoneBonus[3] {
		t.Errorf("expected milestone 3 with bonus %d, got %d/%d", streakMilestoneBonus[3], milestone, bonus)
	}

	for _, streak := range []int{1, 2, 4, 6, 8} {
		if m, b := milestoneFor(true, streak); m != 0 || b != 0 {
			t.Errorf("expected no milestone at streak %d, got %d/%d", streak, m, b)
		}
	}
}

func TestMilestoneNeverFiresOnSameDayRepeat(t *testing.T) {
	if m, b := milestoneFor(false, 3); m != 0 || b != 0 {
		t.Errorf("expected no milestone on a same-day repeat, got %d/%d", m, b)
	}
}

func TestMilestoneRepeatsPerStreakRun(t *testing.T) {
	// Climb to 3, reset, climb back to 3: the milestone fires both times.
	last := day(2025, time.April, 1)
	streak := 2
	streak = nextStreak(last, last.AddDate(0, 0, 1), streak)
	if m, _ := milestoneFor(true, streak); m != 3 {
		t.Fatalf("expected first run to hit milestone 3, got %d", m)
	}

	streak = nextStreak(last, last.AddDate(0, 0, 10), streak) // long gap, reset
	if streak != 1 {
		t.Fatalf("expected reset to 1, got %d", streak)
	}
	reset := day(2025, time.April, 11)
	streak = nextStreak(reset, reset.AddDate(0, 0, 1), streak)
	streak = nextStreak(reset.AddDate(0, 0, 1), reset.AddDate(0, 0, 2), streak)
	if m, _ := milestoneFor(true, streak); m != 3 {
		t.Errorf("expected second run to hit milestone 3 again, got %d", m)
	}
}

func TestEveryActionHasPointsAndValidCounter(t *testing.T) {
	actions := []ActionKind{
		ActionGenerateSummary,
		ActionGenerateFlashcards,
		ActionCreateMindMap,
		ActionGeneratePodcast,
		ActionQuizCorrectAnswer,
		ActionQuizCompleted,
	}
	for _, action := range actions {
		if !ValidAction(action) {
			t.Errorf("expected %s to be a valid action", action)
		}
		if actionPoints[action] <= 0 {
			t.Errorf("expected %s to award points", action)
		}
		if _, ok := actionCounters[action]; !ok {
			t.Errorf("expected %s to increment a counter", action)
		}
	}

	if ValidAction("made-up-action") {
		t.Error("expected unknown action to be invalid")
	}
}

func TestSameUTCDay(t *testing.T) {
	a := time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	if !sameUTCDay(a, b) {
		t.Error("expected timestamps on the same UTC date to match")
	}
	if sameUTCDay(a, b.Add(2*time.Minute)) {
		t.Error("expected timestamps across midnight to differ")
	}
	if sameUTCDay(time.Time{}, b) {
		t.Error("expected zero time to never match")
	}
}
