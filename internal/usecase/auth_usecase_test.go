package usecase

import (
	"context"
	"testing"
	"time"

	"nutritrack-backend/config"
	"nutritrack-backend/internal/delivery/dto"
	"nutritrack-backend/internal/domain/entity"
	"nutritrack-backend/internal/repository"
	"nutritrack-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Registration never touches Redis, so a nil client is fine here.
func newAuthUsecase(db *gorm.DB) AuthUsecase {
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	return NewAuthUsecase(
		db,
		newTestLogger(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		jwtService,
		nil,
		newTestAuditService(),
	)
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	u := newAuthUsecase(db)

	t.Run("registers a patient with profile", func(t *testing.T) {
		resp, err := u.RegisterPatient(context.Background(), &dto.RegisterRequest{
			Email:    "Joao@Example.com",
			Password: "password123",
			FullName: "Joao Santos",
			Username: "Joao123",
		})
		require.NoError(t, err)

		assert.Equal(t, "joao@example.com", resp.Email)
		assert.Equal(t, "joao123", resp.Username)
		assert.Equal(t, entity.RolePatient, resp.Role)

		var profile entity.Profile
		require.NoError(t, db.First(&profile, "username = ?", "joao123").Error)
		assert.Equal(t, resp.ID, profile.UserID)
	})

	t.Run("registers a nutritionist", func(t *testing.T) {
		resp, err := u.RegisterNutritionist(context.Background(), &dto.RegisterRequest{
			Email:    "silva@example.com",
			Password: "password123",
			FullName: "Dr Silva",
			Username: "dr.silva",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleNutritionist, resp.Role)
	})

	t.Run("rejects invalid usernames before writing", func(t *testing.T) {
		for _, username := range []string{"ab", "has space", "UPPER CASE!", "way.too.long.username.that.exceeds.thirty.characters"} {
			var before int64
			db.Model(&entity.User{}).Count(&before)

			_, err := u.RegisterPatient(context.Background(), &dto.RegisterRequest{
				Email:    "new@example.com",
				Password: "password123",
				FullName: "New User",
				Username: username,
			})
			assert.ErrorIs(t, err, ErrInvalidUsername, "username %q", username)

			var after int64
			db.Model(&entity.User{}).Count(&after)
			assert.Equal(t, before, after)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := u.RegisterPatient(context.Background(), &dto.RegisterRequest{
			Email:    "joao@example.com",
			Password: "password123",
			FullName: "Someone Else",
			Username: "someone.else",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("rejects duplicate username and rolls back the user row", func(t *testing.T) {
		var before int64
		db.Model(&entity.User{}).Count(&before)

		_, err := u.RegisterPatient(context.Background(), &dto.RegisterRequest{
			Email:    "other@example.com",
			Password: "password123",
			FullName: "Other User",
			Username: "joao123",
		})
		assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

		var after int64
		db.Model(&entity.User{}).Count(&after)
		assert.Equal(t, before, after)
	})
}

func TestGetCurrentUser(t *testing.T) {
	db := newTestDB(t)
	u := newAuthUsecase(db)

	created, err := u.RegisterPatient(context.Background(), &dto.RegisterRequest{
		Email:    "joao@example.com",
		Password: "password123",
		FullName: "Joao Santos",
		Username: "joao123",
	})
	require.NoError(t, err)

	resp, err := u.GetCurrentUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "joao123", resp.Username)
	assert.Equal(t, entity.RolePatient, resp.Role)

	_, err = u.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
