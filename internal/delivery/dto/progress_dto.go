package dto

type ProgressSummaryResponse struct {
	PatientID         string  `json:"patient_id"`
	From              string  `json:"from"`
	To                string  `json:"to"`
	ScheduledMeals    int     `json:"scheduled_meals"`
	ValidatedMeals    int     `json:"validated_meals"`
	ApprovedMeals     int     `json:"approved_meals"`
	AdherencePercent  float64 `json:"adherence_percent"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgNutritionMatch float64 `json:"avg_nutrition_match"`
}
