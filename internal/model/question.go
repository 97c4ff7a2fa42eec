package model

import (
	"time"
)

// AptitudeQuestion is a bank question. Rows are immutable per version;
// editing bumps VersionNumber and links the previous row.
type AptitudeQuestion struct {
	ID         string           `gorm:"type:uuid;primaryKey" json:"id"`
	Category   AptitudeCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	Difficulty DifficultyLevel  `gorm:"type:varchar(10);not null;index" json:"difficulty"`

	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	Options       OptionMap `gorm:"type:jsonb;not null" json:"options"`
	CorrectOption string    `gorm:"type:varchar(1);not null" json:"correct_option"`
	Explanation   *string   `gorm:"type:text" json:"explanation,omitempty"`

	SubTopic         *string        `gorm:"type:varchar(100)" json:"sub_topic,omitempty"`
	RoleTag          *string        `gorm:"type:varchar(100)" json:"role_tag,omitempty"`
	Marks            int            `gorm:"not null;default:1" json:"marks"`
	TimeLimitSeconds *int           `json:"time_limit_seconds,omitempty"`
	Status           QuestionStatus `gorm:"type:varchar(10);not null;default:'ACTIVE';index" json:"status"`
	ApprovalStatus   ApprovalStatus `gorm:"type:varchar(10);not null;default:'APPROVED';index" json:"approval_status"`
	ApprovedBy       *string        `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt       *time.Time     `json:"approved_at,omitempty"`
	VersionNumber    int            `gorm:"not null;default:1" json:"version_number"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedBy *string   `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AptitudeQuestion) TableName() string { return "aptitude_questions" }
