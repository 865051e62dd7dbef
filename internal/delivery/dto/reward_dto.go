package dto

type AchievementResponse struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Points      int    `json:"points"`
	Threshold   int    `json:"threshold"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
}

type RewardsResponse struct {
	TotalPoints    int                   `json:"total_points"`
	ApprovedMeals  int                   `json:"approved_meals"`
	CurrentStreak  int                   `json:"current_streak"`
	Achievements   []AchievementResponse `json:"achievements"`
	UnlockedCount  int                   `json:"unlocked_count"`
}
