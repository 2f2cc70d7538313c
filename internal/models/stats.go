package models

type OverviewStats struct {
	TotalWords       int     `json:"total_words"`
	LearnedWords     int     `json:"learned_words"`
	MasteredWords    int     `json:"mastered_words"`
	NewWords         int     `json:"new_words"`
	DueToday         int     `json:"due_today"`
	LearningProgress float64 `json:"learning_progress"`
}

type DailyStat struct {
	Date         string  `json:"date"`
	TotalReviews int     `json:"total_reviews"`
	Correct      int     `json:"correct"`
	Incorrect    int     `json:"incorrect"`
	Accuracy     float64 `json:"accuracy"`
}

type StreakInfo struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastStudyDate string `json:"last_study_date,omitempty"`
}

type Dashboard struct {
	Overview OverviewStats `json:"overview"`
	Daily    []DailyStat   `json:"recent_daily_stats"`
	Streak   StreakInfo    `json:"streak"`
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
