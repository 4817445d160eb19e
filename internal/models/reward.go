package models

import "github.com/google/uuid"

// RewardRecord is the persisted gamification progress for a single user.
// Level is never stored; it is always derived from TotalPoints.
type RewardRecord struct {
	BaseModel
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	TotalPoints    int       `json:"total_points"`
	Badges         string    `json:"badges"`
	LastQuizDate   string    `json:"last_quiz_date"`
	LastSpinDate   string    `json:"last_spin_date"`
	QuizStreak     int       `json:"quiz_streak"`
	TotalOrders    int       `json:"total_orders"`
	SpinsUsed      int       `json:"spins_used"`
	MaxSpinsPerDay int       `json:"max_spins_per_day"`
}
