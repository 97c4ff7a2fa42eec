package model

import (
	"time"
)

// StudentProfile carries the readiness scores synced after each
// submission. Only the aptitude touchpoint is owned here; the rest of
// the profile is managed elsewhere.
type StudentProfile struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	AptitudeScore    float64 `gorm:"not null;default:0" json:"aptitude_score"`
	InterviewScore   float64 `gorm:"not null;default:0" json:"interview_score"`
	CodingScore      float64 `gorm:"not null;default:0" json:"coding_score"`
	OverallReadiness float64 `gorm:"not null;default:0" json:"overall_readiness"`

	PreferredRoles []string `gorm:"type:jsonb;serializer:json" json:"preferred_roles,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentProfile) TableName() string { return "student_profiles" }
