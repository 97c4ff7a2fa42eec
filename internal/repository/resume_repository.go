package repository

import (
	"github.com/google/uuid"
	"github.com/placeprep/backend/internal/model"
	"gorm.io/gorm"
)

type ResumeRepository interface {
	FindLatestByUser(userID string) (*model.Resume, error)
	FindLatestAnalysisByUser(userID string) (*model.ResumeAnalysis, error)
	CreateAnalysis(analysis *model.ResumeAnalysis) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) FindLatestByUser(userID string) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) FindLatestAnalysisByUser(userID string) (*model.ResumeAnalysis, error) {
	var analysis model.ResumeAnalysis
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *resumeRepository) CreateAnalysis(analysis *model.ResumeAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.NewString()
	}
	return r.db.Create(analysis).Error
}
