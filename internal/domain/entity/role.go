package entity

// Role IDs are fixed and seeded at startup. The set is closed: every user is
// either a patient or a nutritionist.
const (
	RoleIDPatient      = 1
	RoleIDNutritionist = 2
)

const (
	RolePatient      = "patient"
	RoleNutritionist = "nutritionist"
)

type Role struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleName maps a role ID to its name. Unknown IDs return an empty string.
func RoleName(roleID int) string {
	switch roleID {
	case RoleIDPatient:
		return RolePatient
	case RoleIDNutritionist:
		return RoleNutritionist
	}
	return ""
}
