package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placeprep/backend/internal/model"
	"github.com/placeprep/backend/internal/repository"
)

// In-memory repository doubles. Transactional guarantees are mimicked
// just enough for lifecycle tests.

type fakeQuestionRepo struct {
	questions map[string]*model.AptitudeQuestion
}

func newFakeQuestionRepo(questions ...*model.AptitudeQuestion) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{questions: map[string]*model.AptitudeQuestion{}}
	for _, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		repo.questions[q.ID] = q
	}
	return repo
}

func (r *fakeQuestionRepo) Create(q *model.AptitudeQuestion) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) FindByID(id string) (*model.AptitudeQuestion, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) List(filter repository.QuestionFilter) ([]model.AptitudeQuestion, error) {
	var out []model.AptitudeQuestion
	for _, q := range r.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) Count(filter repository.QuestionFilter) (int64, error) {
	return int64(len(r.questions)), nil
}

func (r *fakeQuestionRepo) ListApproved(category *model.AptitudeCategory, difficulty *model.DifficultyLevel, limit int) ([]model.AptitudeQuestion, error) {
	var out []model.AptitudeQuestion
	for _, q := range r.questions {
		if !q.IsActive || q.ApprovalStatus != model.ApprovalApproved {
			continue
		}
		if category != nil && q.Category != *category {
			continue
		}
		if difficulty != nil && q.Difficulty != *difficulty {
			continue
		}
		out = append(out, *q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(q *model.AptitudeQuestion) error {
	r.questions[q.ID] = q
	return nil
}

func (r *fakeQuestionRepo) Delete(id string) error {
	if q, ok := r.questions[id]; ok {
		q.IsActive = false
	}
	return nil
}

type fakeAttemptRepo struct {
	attempts map[string]*model.AptitudeAttempt
	details  map[string][]model.AptitudeAttemptDetail

	// Interleaving hooks, invoked before the write is applied. Tests
	// use them to commit a competing writer in the gap between a
	// service's load and its store.
	beforeUpdate   func()
	beforeFinalize func()
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts: map[string]*model.AptitudeAttempt{},
		details:  map[string][]model.AptitudeAttemptDetail{},
	}
}

// cloneAttempt detaches reads and writes from stored rows the way a
// real database round-trip would.
func cloneAttempt(attempt *model.AptitudeAttempt) *model.AptitudeAttempt {
	clone := *attempt
	if attempt.Answers != nil {
		clone.Answers = make(model.AnswerMap, len(attempt.Answers))
		for ref, record := range attempt.Answers {
			clone.Answers[ref] = record
		}
	}
	return &clone
}

func (r *fakeAttemptRepo) CreateActive(attempt *model.AptitudeAttempt) error {
	for _, existing := range r.attempts {
		if existing.UserID == attempt.UserID && existing.Status == model.AttemptInProgress {
			return repository.ErrActiveAttemptExists
		}
	}
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	r.attempts[attempt.ID] = cloneAttempt(attempt)
	return nil
}

func (r *fakeAttemptRepo) Update(attempt *model.AptitudeAttempt) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	stored, ok := r.attempts[attempt.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != model.AttemptInProgress {
		return repository.ErrAttemptNotActive
	}
	r.attempts[attempt.ID] = cloneAttempt(attempt)
	return nil
}

func (r *fakeAttemptRepo) FindByID(id string) (*model.AptitudeAttempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneAttempt(attempt), nil
}

func (r *fakeAttemptRepo) FindActiveByUser(userID string) (*model.AptitudeAttempt, error) {
	for _, attempt := range r.attempts {
		if attempt.UserID == userID && attempt.Status == model.AttemptInProgress {
			return cloneAttempt(attempt), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) ListByUser(userID string, limit, offset int) ([]model.AptitudeAttempt, error) {
	var out []model.AptitudeAttempt
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			out = append(out, *attempt)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAttemptRepo) FinalizeSubmission(attempt *model.AptitudeAttempt, details []model.AptitudeAttemptDetail) error {
	if r.beforeFinalize != nil {
		r.beforeFinalize()
	}
	stored, ok := r.attempts[attempt.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != model.AttemptInProgress {
		return repository.ErrAttemptNotActive
	}
	r.attempts[attempt.ID] = cloneAttempt(attempt)
	for i := range details {
		if details[i].ID == "" {
			details[i].ID = uuid.NewString()
		}
	}
	r.details[attempt.ID] = details
	return nil
}

func (r *fakeAttemptRepo) ListDetails(attemptID string) ([]model.AptitudeAttemptDetail, error) {
	return r.details[attemptID], nil
}

func (r *fakeAttemptRepo) DeleteByID(id string) (bool, error) {
	if _, ok := r.attempts[id]; !ok {
		return false, nil
	}
	delete(r.attempts, id)
	delete(r.details, id)
	return true, nil
}

func (r *fakeAttemptRepo) GetOverallStats(userID string) (*repository.OverallStats, error) {
	stats := &repository.OverallStats{}
	var sum float64
	for _, attempt := range r.attempts {
		if attempt.UserID != userID || attempt.CompletedAt == nil {
			continue
		}
		stats.TotalAttempts++
		sum += attempt.Score
		if attempt.Score > stats.BestScore {
			stats.BestScore = attempt.Score
		}
	}
	if stats.TotalAttempts > 0 {
		stats.AverageScore = sum / float64(stats.TotalAttempts)
	}
	return stats, nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.StudentProfile
}

func newFakeProfileRepo(profiles ...*model.StudentProfile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: map[string]*model.StudentProfile{}}
	for _, p := range profiles {
		repo.profiles[p.UserID] = p
	}
	return repo
}

func (r *fakeProfileRepo) FindByUserID(userID string) (*model.StudentProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) Update(profile *model.StudentProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

type fakeResumeService struct {
	text     string
	hints    []string
	textErr  error
	hintsErr error
}

func (s *fakeResumeService) GetResumeText(userID string) (string, error) {
	return s.text, s.textErr
}

func (s *fakeResumeService) GetSkillHints(userID string, resumeText string) ([]string, error) {
	return s.hints, s.hintsErr
}

func (s *fakeResumeService) AnalyzeAndStore(ctx context.Context, userID string) error {
	return nil
}

type fakeGenerator struct {
	candidates []GeneratedCandidate
	err        error
	skills     []string
}

func (g *fakeGenerator) GenerateResumeQuestions(ctx context.Context, req GenerationRequest) ([]GeneratedCandidate, error) {
	if g.err != nil {
		return nil, g.err
	}
	out := g.candidates
	if len(out) > req.Count {
		out = out[:req.Count]
	}
	return out, nil
}

func (g *fakeGenerator) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	return g.skills, nil
}
