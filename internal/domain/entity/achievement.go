package entity

import "time"

// Achievement is a catalog entry of the rewards system. Unlocks are computed
// from validation history; only the catalog is persisted.
type Achievement struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Points      int       `gorm:"not null" json:"points"`
	Threshold   int       `gorm:"not null" json:"threshold"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
