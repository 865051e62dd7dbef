package usecase

import (
	"context"
	"errors"

	"nutritrack-backend/internal/converter"
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/domain/repository"
	"nutritrack-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPatientNotLinked     = errors.New("patient is not linked to this nutritionist")
	ErrNoNutritionistLinked = errors.New("no nutritionist linked to this patient")
	ErrInvalidImage         = errors.New("invalid image payload")
)

type ProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	GetPatientProfile(ctx context.Context, nutritionistID, patientID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, req *dto.UploadAvatarRequest) (*dto.ProfileResponse, error)
	ListPatients(ctx context.Context, nutritionistID uuid.UUID) (*dto.PatientListResponse, error)
	GetMyNutritionist(ctx context.Context, patientID uuid.UUID) (*dto.ProfileResponse, error)
}

type profileUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	profileRepo      repository.ProfileRepository
	relationshipRepo repository.RelationshipRepository
	photoStorage     service.PhotoStorage
	auditService     service.AuditService
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	relationshipRepo repository.RelationshipRepository,
	photoStorage service.PhotoStorage,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		relationshipRepo: relationshipRepo,
		photoStorage:     photoStorage,
		auditService:     auditService,
	}
}

func (u *profileUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	return u.loadProfile(ctx, userID)
}

func (u *profileUsecase) GetPatientProfile(ctx context.Context, nutritionistID, patientID uuid.UUID) (*dto.ProfileResponse, error) {
	relationship, err := u.relationshipRepo.FindByPair(u.db.WithContext(ctx), nutritionistID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return nil, err
	}
	if relationship == nil {
		return nil, ErrPatientNotLinked
	}

	return u.loadProfile(ctx, patientID)
}

func (u *profileUsecase) loadProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.profileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}

	return converter.ProfileToResponse(profile, user), nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Zero values mean "leave unchanged"; the username is immutable.
	if req.FullName != "" {
		user.FullName = req.FullName
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
	}
	if req.Age != 0 {
		profile.Age = req.Age
	}
	if req.HeightCm != 0 {
		profile.HeightCm = req.HeightCm
	}
	if req.WeightKg != 0 {
		profile.WeightKg = req.WeightKg
	}
	if req.ActivityLevel != "" {
		profile.ActivityLevel = req.ActivityLevel
	}
	if req.DietGoal != "" {
		profile.DietGoal = req.DietGoal
	}
	if req.DietaryRestrictions != nil {
		profile.DietaryRestrictions = datatypes.JSONSlice[string](req.DietaryRestrictions)
	}
	if req.Allergies != nil {
		profile.Allergies = datatypes.JSONSlice[string](req.Allergies)
	}

	if err := u.profileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(tx, &userID, entity.AuditActionProfileUpdate, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProfileToResponse(profile, user), nil
}

func (u *profileUsecase) UploadAvatar(ctx context.Context, userID uuid.UUID, req *dto.UploadAvatarRequest) (*dto.ProfileResponse, error) {
	profile, err := u.profileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	avatarURL, err := u.photoStorage.UploadBase64Image(ctx, req.ImageData, "avatars/"+userID.String())
	if err != nil {
		u.log.Warnf("Failed to upload avatar: %+v", err)
		return nil, ErrInvalidImage
	}

	profile.AvatarURL = avatarURL
	if err := u.profileRepo.Update(u.db.WithContext(ctx), profile); err != nil {
		u.log.Warnf("Failed to update profile: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}

	return converter.ProfileToResponse(profile, user), nil
}

func (u *profileUsecase) GetMyNutritionist(ctx context.Context, patientID uuid.UUID) (*dto.ProfileResponse, error) {
	relationship, err := u.relationshipRepo.FindByPatient(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find relationship: %+v", err)
		return nil, err
	}
	if relationship == nil {
		return nil, ErrNoNutritionistLinked
	}

	return u.loadProfile(ctx, relationship.NutritionistID)
}

func (u *profileUsecase) ListPatients(ctx context.Context, nutritionistID uuid.UUID) (*dto.PatientListResponse, error) {
	db := u.db.WithContext(ctx)

	relationships, err := u.relationshipRepo.ListByNutritionist(db, nutritionistID)
	if err != nil {
		u.log.Warnf("Failed to list relationships: %+v", err)
		return nil, err
	}

	if len(relationships) == 0 {
		return &dto.PatientListResponse{Patients: []dto.ProfileResponse{}}, nil
	}

	patientIDs := make([]uuid.UUID, len(relationships))
	for i, relationship := range relationships {
		patientIDs[i] = relationship.PatientID
	}

	profiles, err := u.profileRepo.ListByUserIDs(db, patientIDs)
	if err != nil {
		u.log.Warnf("Failed to list profiles: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.ProfilesToResponses(profiles),
		Total:    len(profiles),
	}, nil
}
