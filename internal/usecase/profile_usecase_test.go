package usecase

import (
	"context"
	"testing"

	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileUsecase(db *gorm.DB, storage *fakePhotoStorage) ProfileUsecase {
	return NewProfileUsecase(
		db,
		newTestLogger(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		repository.NewRelationshipRepository(),
		storage,
		newTestAuditService(),
	)
}

func TestGetMyProfile(t *testing.T) {
	db := newTestDB(t)
	u := newProfileUsecase(db, &fakePhotoStorage{})
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")

	resp, err := u.GetMyProfile(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "joao123", resp.Username)
	assert.Equal(t, patient.Email, resp.Email)
	assert.Equal(t, entity.RolePatient, resp.Role)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	u := newProfileUsecase(db, &fakePhotoStorage{})
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")

	t.Run("updates provided fields", func(t *testing.T) {
		resp, err := u.UpdateProfile(context.Background(), patient.ID, &dto.UpdateProfileRequest{
			FullName:            "Joao Silva",
			Age:                 31,
			HeightCm:            178,
			WeightKg:            82.5,
			DietaryRestrictions: []string{"lactose"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Joao Silva", resp.FullName)
		assert.Equal(t, 31, resp.Age)
		assert.Equal(t, []string{"lactose"}, resp.DietaryRestrictions)
	})

	t.Run("zero values leave fields unchanged", func(t *testing.T) {
		resp, err := u.UpdateProfile(context.Background(), patient.ID, &dto.UpdateProfileRequest{
			WeightKg: 81,
		})
		require.NoError(t, err)
		assert.Equal(t, 81.0, resp.WeightKg)
		assert.Equal(t, 31, resp.Age)
		assert.Equal(t, "Joao Silva", resp.FullName)
		assert.Equal(t, "joao123", resp.Username)
	})
}

func TestUploadAvatar(t *testing.T) {
	db := newTestDB(t)
	storage := &fakePhotoStorage{}
	u := newProfileUsecase(db, storage)
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")

	resp, err := u.UploadAvatar(context.Background(), patient.ID, &dto.UploadAvatarRequest{
		ImageData: "data:image/jpeg;base64,Zm9vYmFy",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, storage.uploads)
	assert.Contains(t, resp.AvatarURL, "avatars/"+patient.ID.String())

	t.Run("storage failure maps to invalid image", func(t *testing.T) {
		broken := newProfileUsecase(db, &fakePhotoStorage{err: assert.AnError})
		_, err := broken.UploadAvatar(context.Background(), patient.ID, &dto.UploadAvatarRequest{
			ImageData: "data:image/jpeg;base64,Zm9vYmFy",
		})
		assert.ErrorIs(t, err, ErrInvalidImage)
	})
}

func TestListPatients(t *testing.T) {
	db := newTestDB(t)
	u := newProfileUsecase(db, &fakePhotoStorage{})
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")

	t.Run("no relationships yields empty list", func(t *testing.T) {
		resp, err := u.ListPatients(context.Background(), nutritionist.ID)
		require.NoError(t, err)
		assert.Empty(t, resp.Patients)
	})

	patientA := createTestUser(t, db, entity.RoleIDPatient, "joao123")
	patientB := createTestUser(t, db, entity.RoleIDPatient, "maria456")
	linkPatient(t, db, nutritionist.ID, patientA.ID)
	linkPatient(t, db, nutritionist.ID, patientB.ID)

	t.Run("lists linked patients with user data", func(t *testing.T) {
		resp, err := u.ListPatients(context.Background(), nutritionist.ID)
		require.NoError(t, err)
		require.Equal(t, 2, resp.Total)

		usernames := []string{resp.Patients[0].Username, resp.Patients[1].Username}
		assert.ElementsMatch(t, []string{"joao123", "maria456"}, usernames)
		assert.NotEmpty(t, resp.Patients[0].Email)
	})
}

func TestGetPatientProfile(t *testing.T) {
	db := newTestDB(t)
	u := newProfileUsecase(db, &fakePhotoStorage{})
	nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")
	linkPatient(t, db, nutritionist.ID, patient.ID)

	t.Run("linked nutritionist reads the profile", func(t *testing.T) {
		resp, err := u.GetPatientProfile(context.Background(), nutritionist.ID, patient.ID)
		require.NoError(t, err)
		assert.Equal(t, "joao123", resp.Username)
	})

	t.Run("unlinked nutritionist is denied", func(t *testing.T) {
		other := createTestUser(t, db, entity.RoleIDNutritionist, "dr.jones")
		_, err := u.GetPatientProfile(context.Background(), other.ID, patient.ID)
		assert.ErrorIs(t, err, ErrPatientNotLinked)
	})
}

func TestGetMyNutritionist(t *testing.T) {
	db := newTestDB(t)
	u := newProfileUsecase(db, &fakePhotoStorage{})
	patient := createTestUser(t, db, entity.RoleIDPatient, "joao123")

	t.Run("unlinked patient has no nutritionist", func(t *testing.T) {
		_, err := u.GetMyNutritionist(context.Background(), patient.ID)
		assert.ErrorIs(t, err, ErrNoNutritionistLinked)
	})

	t.Run("linked patient reads the nutritionist profile", func(t *testing.T) {
		nutritionist := createTestUser(t, db, entity.RoleIDNutritionist, "dr.silva")
		linkPatient(t, db, nutritionist.ID, patient.ID)

		resp, err := u.GetMyNutritionist(context.Background(), patient.ID)
		require.NoError(t, err)
		assert.Equal(t, "dr.silva", resp.Username)
		assert.Equal(t, entity.RoleNutritionist, resp.Role)
	})
}
