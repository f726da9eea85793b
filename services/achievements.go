package services

import "studyhub/models"

// Counter names tracked on the user document. The current streak is
// mirrored into the counter map handed to Evaluate so streak-length
// badges use the same threshold mechanism as usage badges.
const (
	CounterSummaries       = "summariesGenerated"
	CounterFlashcards      = "flashcardSetsGenerated"
	CounterMindMaps        = "mindMapsCreated"
	CounterPodcasts        = "podcastsGenerated"
	CounterQuizCorrect     = "quizCorrectAnswers"
	CounterQuizzesComplete = "quizzesCompleted"
	CounterStreak          = "streak"
	CounterPoints          = "points"
)

// achievementCatalog is the static badge catalog. Thresholds apply to
// the named counter; a badge unlocks the first time its threshold is
// crossed and is never removed.
var achievementCatalog = []models.AchievementDefinition{
	{ID: "first-summary", CounterName: CounterSummaries, Threshold: 1, DisplayName: "First Steps", Description: "Generate your first summary"},
	{ID: "note-ninja", CounterName: CounterSummaries, Threshold: 50, DisplayName: "Note Ninja", Description: "Generate 50 summaries"},
	{ID: "flashcard-fan", CounterName: CounterFlashcards, Threshold: 10, DisplayName: "Flashcard Fan", Description: "Generate 10 flashcard sets"},
	{ID: "mind-mapper", CounterName: CounterMindMaps, Threshold: 5, DisplayName: "Mind Mapper", Description: "Create 5 mind maps"},
	{ID: "podcast-pro", CounterName: CounterPodcasts, Threshold: 5, DisplayName: "Podcast Pro", Description: "Generate 5 podcast scripts"},
	{ID: "quiz-rookie", CounterName: CounterQuizzesComplete, Threshold: 1, DisplayName: "Quiz Rookie", Description: "Complete your first quiz"},
	{ID: "quiz-whiz", CounterName: CounterQuizCorrect, Threshold: 100, DisplayName: "Quiz Whiz", Description: "Answer 100 quiz questions correctly"},
	{ID: "three-day-streak", CounterName: CounterStreak, Threshold: 3, DisplayName: "Warming Up", Description: "Study 3 days in a row"},
	{ID: "week-warrior", CounterName: CounterStreak, Threshold: 7, DisplayName: "Week Warrior", Description: "Study 7 days in a row"},
	{ID: "point-hoarder", CounterName: CounterPoints, Threshold: 1000, DisplayName: "Point Hoarder", Description: "Earn 1000 points"},
}

// AchievementCatalog returns the full static catalog.
func AchievementCatalog() []models.AchievementDefinition {
	return achievementCatalog
}

// EvaluateAchievements returns every catalog entry whose threshold is
// met by counters and whose id is not already unlocked. Pure and
// deterministic; the caller persists the result.
func EvaluateAchievements(counters map[string]int, unlockedIDs []string) []models.AchievementDefinition {
	unlocked := make(map[string]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlocked[id] = true
	}

	var newly []models.AchievementDefinition
	for _, def := range achievementCatalog {
		if unlocked[def.ID] {
			continue
		}
		if counters[def.CounterName] >= def.Threshold {
			newly = append(newly, def)
		}
	}
	return newly
}
