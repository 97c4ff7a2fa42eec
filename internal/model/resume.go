package model

import (
	"time"
)

// Resume is the student's uploaded resume with its extracted text.
type Resume struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	FileName   string    `gorm:"type:varchar(255)" json:"file_name"`
	Text       string    `gorm:"type:text" json:"-"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`
}

func (Resume) TableName() string { return "resumes" }

// ResumeAnalysis is the stored output of a resume analysis run.
type ResumeAnalysis struct {
	ID              string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string         `gorm:"type:uuid;not null;index" json:"user_id"`
	ExtractedSkills []string       `gorm:"type:jsonb;serializer:json" json:"extracted_skills"`
	StructuredData  map[string]any `gorm:"type:jsonb;serializer:json" json:"structured_data,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (ResumeAnalysis) TableName() string { return "resume_analyses" }
