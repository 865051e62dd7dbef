package usecase

import (
	"context"
	"time"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Each approved meal is worth a fixed number of points; unlocked achievements
// add their own bonus on top.
const pointsPerApprovedMeal = 10

type RewardUsecase interface {
	GetRewards(ctx context.Context, patientID uuid.UUID) (*dto.RewardsResponse, error)
}

type rewardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	validationRepo  repository.MealValidationRepository
	achievementRepo repository.AchievementRepository
}

func NewRewardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validationRepo repository.MealValidationRepository,
	achievementRepo repository.AchievementRepository,
) RewardUsecase {
	return &rewardUsecase{
		db:              db,
		log:             log,
		validationRepo:  validationRepo,
		achievementRepo: achievementRepo,
	}
}

// GetRewards derives the whole rewards state from validation history. Nothing
// is persisted per patient, so the numbers can never drift out of sync.
func (u *rewardUsecase) GetRewards(ctx context.Context, patientID uuid.UUID) (*dto.RewardsResponse, error) {
	db := u.db.WithContext(ctx)

	validations, err := u.validationRepo.ListByPatient(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list validations: %+v", err)
		return nil, err
	}

	approved := 0
	approvedDates := make(map[string]bool)
	for _, validation := range validations {
		if validation.IsApproved() {
			approved++
			approvedDates[validation.MealDate.Format("2006-01-02")] = true
		}
	}

	catalog, err := u.achievementRepo.ListAll(db)
	if err != nil {
		u.log.Warnf("Failed to list achievements: %+v", err)
		return nil, err
	}

	totalPoints := approved * pointsPerApprovedMeal
	unlockedCount := 0

	achievements := make([]dto.AchievementResponse, len(catalog))
	for i, achievement := range catalog {
		unlocked := approved >= achievement.Threshold
		if unlocked {
			unlockedCount++
			totalPoints += achievement.Points
		}
		progress := approved
		if progress > achievement.Threshold {
			progress = achievement.Threshold
		}
		achievements[i] = dto.AchievementResponse{
			Code:        achievement.Code,
			Title:       achievement.Title,
			Description: achievement.Description,
			Points:      achievement.Points,
			Threshold:   achievement.Threshold,
			Unlocked:    unlocked,
			Progress:    progress,
		}
	}

	return &dto.RewardsResponse{
		TotalPoints:   totalPoints,
		ApprovedMeals: approved,
		CurrentStreak: currentStreak(approvedDates, time.Now()),
		Achievements:  achievements,
		UnlockedCount: unlockedCount,
	}, nil
}

// currentStreak counts consecutive days with at least one approved meal,
// walking back from today. A streak that ended yesterday still counts.
func currentStreak(approvedDates map[string]bool, now time.Time) int {
	day := now
	if !approvedDates[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for approvedDates[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
