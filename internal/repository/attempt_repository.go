package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/placeprep/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrActiveAttemptExists is returned by CreateActive when the user
// already has an IN_PROGRESS attempt.
var ErrActiveAttemptExists = errors.New("an in-progress attempt already exists for this user")

// ErrAttemptNotActive is returned by Update and FinalizeSubmission when
// the stored attempt is no longer IN_PROGRESS, so a writer racing a
// submit cannot overwrite a completed row.
var ErrAttemptNotActive = errors.New("attempt is no longer in progress")

// OverallStats summarize a student's completed attempts.
type OverallStats struct {
	TotalAttempts int64
	AverageScore  float64
	BestScore     float64
}

type AttemptRepository interface {
	// CreateActive inserts a new IN_PROGRESS attempt, failing with
	// ErrActiveAttemptExists if the user already has one. The
	// check-then-insert runs in one transaction with the existing row
	// (if any) locked, so two concurrent starts cannot both succeed.
	CreateActive(attempt *model.AptitudeAttempt) error
	// Update persists in-progress state. It locks the stored row and
	// fails with ErrAttemptNotActive if the attempt has been completed
	// in the meantime, so a stale autosave cannot resurrect it.
	Update(attempt *model.AptitudeAttempt) error
	FindByID(id string) (*model.AptitudeAttempt, error)
	FindActiveByUser(userID string) (*model.AptitudeAttempt, error)
	ListByUser(userID string, limit, offset int) ([]model.AptitudeAttempt, error)
	// FinalizeSubmission persists the completed attempt and replaces
	// its detail rows atomically.
	FinalizeSubmission(attempt *model.AptitudeAttempt, details []model.AptitudeAttemptDetail) error
	ListDetails(attemptID string) ([]model.AptitudeAttemptDetail, error)
	DeleteByID(id string) (bool, error)
	GetOverallStats(userID string) (*OverallStats, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) CreateActive(attempt *model.AptitudeAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.AptitudeAttempt
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status = ?", attempt.UserID, model.AttemptInProgress).
			First(&existing).Error
		if err == nil {
			return ErrActiveAttemptExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(attempt).Error
	})
}

func (r *attemptRepository) Update(attempt *model.AptitudeAttempt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockInProgress(tx, attempt.ID); err != nil {
			return err
		}
		return tx.Save(attempt).Error
	})
}

// lockInProgress takes a row lock on the attempt and verifies it is
// still IN_PROGRESS. The lock is held until the surrounding
// transaction commits, serializing autosave and submit writers.
func lockInProgress(tx *gorm.DB, attemptID string) error {
	var stored model.AptitudeAttempt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&stored, "id = ?", attemptID).Error
	if err != nil {
		return err
	}
	if stored.Status != model.AttemptInProgress {
		return ErrAttemptNotActive
	}
	return nil
}

func (r *attemptRepository) FindByID(id string) (*model.AptitudeAttempt, error) {
	var attempt model.AptitudeAttempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindActiveByUser(userID string) (*model.AptitudeAttempt, error) {
	var attempt model.AptitudeAttempt
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.AttemptInProgress).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) ListByUser(userID string, limit, offset int) ([]model.AptitudeAttempt, error) {
	var attempts []model.AptitudeAttempt
	query := r.db.Where("user_id = ?", userID).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) FinalizeSubmission(attempt *model.AptitudeAttempt, details []model.AptitudeAttemptDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Only one writer may finalize; a second racing submit (or a
		// stale autosave committing after us) sees ErrAttemptNotActive.
		if err := lockInProgress(tx, attempt.ID); err != nil {
			return err
		}
		if err := tx.Save(attempt).Error; err != nil {
			return err
		}
		// Recovery paths may recompute details; stale rows go first.
		if err := tx.Where("attempt_id = ?", attempt.ID).Delete(&model.AptitudeAttemptDetail{}).Error; err != nil {
			return err
		}
		if len(details) == 0 {
			return nil
		}
		for i := range details {
			if details[i].ID == "" {
				details[i].ID = uuid.NewString()
			}
		}
		return tx.Create(&details).Error
	})
}

func (r *attemptRepository) ListDetails(attemptID string) ([]model.AptitudeAttemptDetail, error) {
	var details []model.AptitudeAttemptDetail
	err := r.db.
		Where("attempt_id = ?", attemptID).
		Order("created_at ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *attemptRepository) DeleteByID(id string) (bool, error) {
	result := r.db.Delete(&model.AptitudeAttempt{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *attemptRepository) GetOverallStats(userID string) (*OverallStats, error) {
	var row struct {
		TotalAttempts int64
		AverageScore  *float64
		BestScore     *float64
	}
	err := r.db.Model(&model.AptitudeAttempt{}).
		Select("COUNT(id) AS total_attempts, AVG(score) AS average_score, MAX(score) AS best_score").
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	stats := &OverallStats{TotalAttempts: row.TotalAttempts}
	if row.AverageScore != nil {
		stats.AverageScore = *row.AverageScore
	}
	if row.BestScore != nil {
		stats.BestScore = *row.BestScore
	}
	return stats, nil
}
