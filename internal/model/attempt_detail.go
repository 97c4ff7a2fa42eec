package model

import (
	"time"
)

// AptitudeAttemptDetail is a durable row-per-question review record
// written at submission. Options are stored in the order presented to
// the student, not canonical order.
type AptitudeAttemptDetail struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID string  `gorm:"type:uuid;not null;index" json:"attempt_id"`
	QuestionID *string `gorm:"type:uuid;index" json:"question_id,omitempty"` // nil for generated questions

	QuestionText   string    `gorm:"type:text;not null" json:"question_text"`
	Options        OptionMap `gorm:"type:jsonb" json:"options"`
	OptionOrder    []string  `gorm:"type:jsonb;serializer:json" json:"option_order,omitempty"`
	Generated      bool      `gorm:"not null;default:false" json:"generated"`
	SelectedOption *string   `gorm:"type:varchar(1)" json:"selected_option,omitempty"`
	CorrectOption  string    `gorm:"type:varchar(1);not null" json:"correct_option"`
	IsCorrect      bool      `gorm:"not null;default:false" json:"is_correct"`
	Marks          int       `gorm:"not null;default:1" json:"marks"`
	Category       string    `gorm:"type:varchar(50);not null" json:"category"`

	CreatedAt time.Time `json:"created_at"`
}

func (AptitudeAttemptDetail) TableName() string { return "aptitude_attempt_details" }
