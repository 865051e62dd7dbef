package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// usernamePattern is the only accepted username shape: lowercase letters,
// digits, dot and underscore, 3 to 30 characters.
var usernamePattern = regexp.MustCompile(`^[a-z0-9._]{3,30}$`)

// IsValidUsername reports whether s is an acceptable username. Callers are
// expected to lowercase input before checking.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// Profile carries the public identity and dietary attributes of a user.
// One row per user, created at registration, never hard-deleted.
type Profile struct {
	UserID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username            string                      `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	AvatarURL           string                      `gorm:"type:text" json:"avatar_url,omitempty"`
	Age                 int                         `json:"age,omitempty"`
	HeightCm            float64                     `json:"height_cm,omitempty"`
	WeightKg            float64                     `json:"weight_kg,omitempty"`
	ActivityLevel       string                      `gorm:"type:varchar(50)" json:"activity_level,omitempty"`
	DietGoal            string                      `gorm:"type:varchar(100)" json:"diet_goal,omitempty"`
	DietaryRestrictions datatypes.JSONSlice[string] `json:"dietary_restrictions,omitempty"`
	Allergies           datatypes.JSONSlice[string] `json:"allergies,omitempty"`
	CreatedAt           time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}
