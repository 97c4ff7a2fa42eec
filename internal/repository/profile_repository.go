package repository

import (
	"github.com/placeprep/backend/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByUserID(userID string) (*model.StudentProfile, error)
	Update(profile *model.StudentProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(userID string) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *model.StudentProfile) error {
	return r.db.Save(profile).Error
}
