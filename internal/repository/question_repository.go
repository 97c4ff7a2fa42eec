package repository

import (
	"github.com/placeprep/backend/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter narrows bank question listings.
type QuestionFilter struct {
	Category   *model.AptitudeCategory
	Difficulty *model.DifficultyLevel
	Approval   *model.ApprovalStatus
	Search     string
	Limit      int
	Offset     int
}

type QuestionRepository interface {
	Create(question *model.AptitudeQuestion) error
	FindByID(id string) (*model.AptitudeQuestion, error)
	List(filter QuestionFilter) ([]model.AptitudeQuestion, error)
	Count(filter QuestionFilter) (int64, error)
	// ListApproved returns active, approved questions for attempt
	// composition.
	ListApproved(category *model.AptitudeCategory, difficulty *model.DifficultyLevel, limit int) ([]model.AptitudeQuestion, error)
	Update(question *model.AptitudeQuestion) error
	Delete(id string) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.AptitudeQuestion) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id string) (*model.AptitudeQuestion, error) {
	var question model.AptitudeQuestion
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) applyFilter(query *gorm.DB, filter QuestionFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Difficulty != nil {
		query = query.Where("difficulty = ?", *filter.Difficulty)
	}
	if filter.Approval != nil {
		query = query.Where("approval_status = ?", *filter.Approval)
	}
	if filter.Search != "" {
		query = query.Where("question_text ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func (r *questionRepository) List(filter QuestionFilter) ([]model.AptitudeQuestion, error) {
	var questions []model.AptitudeQuestion
	query := r.applyFilter(r.db.Model(&model.AptitudeQuestion{}), filter).
		Where("is_active = ?", true).
		Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Count(filter QuestionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.Model(&model.AptitudeQuestion{}), filter).
		Where("is_active = ?", true)
	err := query.Count(&count).Error
	return count, err
}

func (r *questionRepository) ListApproved(category *model.AptitudeCategory, difficulty *model.DifficultyLevel, limit int) ([]model.AptitudeQuestion, error) {
	var questions []model.AptitudeQuestion
	query := r.db.
		Where("is_active = ?", true).
		Where("status = ?", model.QuestionActive).
		Where("approval_status = ?", model.ApprovalApproved)
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	if difficulty != nil {
		query = query.Where("difficulty = ?", *difficulty)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.AptitudeQuestion) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id string) error {
	return r.db.Model(&model.AptitudeQuestion{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
