package service

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/placeprep/backend/internal/dto"
	"github.com/placeprep/backend/internal/model"
	"github.com/placeprep/backend/internal/repository"
)

// AttemptService owns the attempt lifecycle: start, autosave, resume,
// submit, discard, and the read paths over finished attempts.
type AttemptService interface {
	StartAssessment(ctx context.Context, req dto.StartAssessmentRequest) (*dto.AssessmentStartResponse, error)
	GetActiveAttempt(userID string) (*dto.ActiveAssessmentResponse, error)
	GetAttemptForResume(attemptID, userID string) (*dto.ActiveAssessmentResponse, error)
	AutosaveAnswers(attemptID string, req dto.AutoSaveAssessmentRequest) error
	SubmitAssessment(attemptID string, req dto.SubmitAssessmentRequest) (*dto.AttemptSummary, error)
	DiscardAttempt(attemptID, userID string) error
	GetTestHistory(userID string, limit, offset int) ([]dto.AttemptSummary, error)
	GetAttemptDetails(attemptID, userID string) (*dto.AttemptDetailResponse, error)
	GetDashboard(userID string) (*dto.StudentAptitudeDashboard, error)
}

type attemptService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
	profileRepo  repository.ProfileRepository
	source       QuestionSource

	// now is swappable so deadline behavior is testable.
	now func() time.Time
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	questionRepo repository.QuestionRepository,
	profileRepo repository.ProfileRepository,
	source QuestionSource,
) AttemptService {
	return &attemptService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		profileRepo:  profileRepo,
		source:       source,
		now:          time.Now,
	}
}

func (s *attemptService) StartAssessment(ctx context.Context, req dto.StartAssessmentRequest) (*dto.AssessmentStartResponse, error) {
	mode := model.ModePractice
	if req.Mode != "" {
		mode = model.AptitudeMode(req.Mode)
	}
	if !mode.Valid() {
		return nil, ErrValidation
	}

	// An attempt that only looks active because its total deadline
	// passed gets auto-submitted instead of blocking the new start.
	if existing, err := s.attemptRepo.FindActiveByUser(req.UserID); err == nil {
		if s.sessionExpired(existing) {
			if err := s.autoSubmitExpired(existing); err != nil {
				return nil, err
			}
		} else {
			return nil, ErrAttemptInProgress
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var category *model.AptitudeCategory
	if req.Category != nil {
		c := model.AptitudeCategory(*req.Category)
		category = &c
	}
	var difficulty *model.DifficultyLevel
	if req.Difficulty != nil {
		d := model.DifficultyLevel(*req.Difficulty)
		difficulty = &d
	}
	exclude := make([]model.AptitudeCategory, 0, len(req.ExcludeCategories))
	for _, c := range req.ExcludeCategories {
		exclude = append(exclude, model.AptitudeCategory(c))
	}

	composition, err := s.source.Compose(ctx, ComposeRequest{
		UserID:              req.UserID,
		Category:            category,
		Difficulty:          difficulty,
		Count:               req.Count,
		Mode:                mode,
		ResumeQuestionCount: req.ResumeQuestionCount,
		ExcludeCategories:   exclude,
	})
	if err != nil {
		return nil, err
	}

	timed := IsTimedMode(mode)
	refs := make(model.QuestionRefList, 0, len(composition.Bank)+len(composition.Generated))
	orders := make(model.OptionOrderMap, len(composition.Bank)+len(composition.Generated))
	for _, q := range composition.Bank {
		ref := model.BankRef(q.ID)
		refs = append(refs, ref)
		orders[ref] = ShuffleOptions(q.Options)
	}
	for ref, gq := range composition.Generated {
		refs = append(refs, ref)
		orders[ref] = ShuffleOptions(gq.Options)
	}
	rand.Shuffle(len(refs), func(i, j int) {
		refs[i], refs[j] = refs[j], refs[i]
	})

	attempt := &model.AptitudeAttempt{
		UserID:             req.UserID,
		Category:           category,
		Difficulty:         difficulty,
		Mode:               mode,
		Status:             model.AttemptInProgress,
		TotalQuestions:     len(refs),
		QuestionRefs:       refs,
		OptionOrders:       orders,
		GeneratedQuestions: composition.Generated,
		Answers:            model.AnswerMap{},
		StartedAt:          s.now().UTC(),
	}

	if err := s.attemptRepo.CreateActive(attempt); err != nil {
		if errors.Is(err, repository.ErrActiveAttemptExists) {
			return nil, ErrAttemptInProgress
		}
		log.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to create attempt")
		return nil, err
	}

	briefs := s.buildBriefs(attempt, timed)
	log.Info().
		Str("attempt_id", attempt.ID).
		Str("user_id", req.UserID).
		Str("mode", string(mode)).
		Int("bank", len(composition.Bank)).
		Int("generated", len(composition.Generated)).
		Msg("Assessment started")

	return &dto.AssessmentStartResponse{
		AttemptID:      attempt.ID,
		Questions:      briefs,
		TotalQuestions: attempt.TotalQuestions,
		StartedAt:      attempt.StartedAt,
		Mode:           string(mode),
		Category:       req.Category,
		Difficulty:     req.Difficulty,
	}, nil
}

func (s *attemptService) GetActiveAttempt(userID string) (*dto.ActiveAssessmentResponse, error) {
	attempt, err := s.attemptRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.activeResponse(attempt)
}

func (s *attemptService) GetAttemptForResume(attemptID, userID string) (*dto.ActiveAssessmentResponse, error) {
	attempt, err := s.loadOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed() {
		return nil, ErrAlreadySubmitted
	}
	return s.activeResponse(attempt)
}

func (s *attemptService) activeResponse(attempt *model.AptitudeAttempt) (*dto.ActiveAssessmentResponse, error) {
	if s.sessionExpired(attempt) {
		if err := s.autoSubmitExpired(attempt); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	}

	timed := IsTimedMode(attempt.Mode)
	deadlines := s.deadlines(attempt)
	answers := make(map[string]*string, len(attempt.Answers))
	for ref, record := range attempt.Answers {
		if lateAnswer(record, deadlines[ref]) {
			answers[ref.String()] = nil
			continue
		}
		answers[ref.String()] = record.Selected
	}

	var category, difficulty *string
	if attempt.Category != nil {
		c := string(*attempt.Category)
		category = &c
	}
	if attempt.Difficulty != nil {
		d := string(*attempt.Difficulty)
		difficulty = &d
	}

	return &dto.ActiveAssessmentResponse{
		AttemptID:      attempt.ID,
		Questions:      s.buildBriefs(attempt, timed),
		TotalQuestions: attempt.TotalQuestions,
		StartedAt:      attempt.StartedAt,
		Mode:           string(attempt.Mode),
		Category:       category,
		Difficulty:     difficulty,
		UserAnswers:    answers,
	}, nil
}

func (s *attemptService) AutosaveAnswers(attemptID string, req dto.AutoSaveAssessmentRequest) error {
	attempt, err := s.loadOwned(attemptID, req.UserID)
	if err != nil {
		return err
	}
	if attempt.Completed() {
		return ErrAlreadySubmitted
	}
	if s.sessionExpired(attempt) {
		if err := s.autoSubmitExpired(attempt); err != nil {
			return err
		}
		return ErrSessionExpired
	}

	elapsed := s.elapsedSeconds(attempt)
	deadlines := s.deadlines(attempt)
	known := make(map[model.QuestionRef]bool, len(attempt.QuestionRefs))
	for _, ref := range attempt.QuestionRefs {
		known[ref] = true
	}
	if attempt.Answers == nil {
		attempt.Answers = model.AnswerMap{}
	}

	saved, dropped := 0, 0
	for key, selected := range req.UserAnswers {
		ref := model.QuestionRef(key)
		if !known[ref] {
			continue
		}
		// A write past the question's cumulative deadline is dropped
		// silently; any earlier saved answer for it survives.
		if deadline := deadlines[ref]; deadline != nil && elapsed > *deadline {
			dropped++
			continue
		}
		savedAt := elapsed
		attempt.Answers[ref] = model.AnswerRecord{Selected: selected, SavedAtSeconds: &savedAt}
		saved++
	}

	if err := s.attemptRepo.Update(attempt); err != nil {
		// A submit that committed after our load wins; the completed
		// row stays untouched.
		if errors.Is(err, repository.ErrAttemptNotActive) {
			return ErrAlreadySubmitted
		}
		log.Error().Err(err).Str("attempt_id", attemptID).Msg("Failed to autosave answers")
		return err
	}
	if dropped > 0 {
		log.Debug().
			Str("attempt_id", attemptID).
			Int("saved", saved).
			Int("dropped", dropped).
			Msg("Autosave dropped late answers")
	}
	return nil
}

func (s *attemptService) SubmitAssessment(attemptID string, req dto.SubmitAssessmentRequest) (*dto.AttemptSummary, error) {
	attempt, err := s.loadOwned(attemptID, req.UserID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed() {
		return nil, ErrAlreadySubmitted
	}
	if s.sessionExpired(attempt) {
		if err := s.autoSubmitExpired(attempt); err != nil {
			return nil, err
		}
		return nil, ErrSessionExpired
	}

	elapsed := s.elapsedSeconds(attempt)
	if attempt.Answers == nil {
		attempt.Answers = model.AnswerMap{}
	}
	known := make(map[model.QuestionRef]bool, len(attempt.QuestionRefs))
	for _, ref := range attempt.QuestionRefs {
		known[ref] = true
	}
	for key, selected := range req.UserAnswers {
		ref := model.QuestionRef(key)
		if !known[ref] {
			continue
		}
		// An unchanged resend keeps its autosave timestamp so answers
		// saved in time are not re-stamped late at submission.
		if existing, ok := attempt.Answers[ref]; ok && equalSelection(existing.Selected, selected) {
			continue
		}
		savedAt := elapsed
		attempt.Answers[ref] = model.AnswerRecord{Selected: selected, SavedAtSeconds: &savedAt}
	}

	if err := s.finalize(attempt, elapsed); err != nil {
		return nil, err
	}
	s.syncProfile(attempt.UserID)

	summary := toAttemptSummary(attempt)
	return &summary, nil
}

func (s *attemptService) DiscardAttempt(attemptID, userID string) error {
	attempt, err := s.loadOwned(attemptID, userID)
	if err != nil {
		return err
	}
	if attempt.Completed() {
		return ErrAlreadySubmitted
	}
	deleted, err := s.attemptRepo.DeleteByID(attemptID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	log.Info().Str("attempt_id", attemptID).Str("user_id", userID).Msg("Attempt discarded")
	return nil
}

func (s *attemptService) GetTestHistory(userID string, limit, offset int) ([]dto.AttemptSummary, error) {
	attempts, err := s.attemptRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.AttemptSummary, 0, len(attempts))
	for i := range attempts {
		summaries = append(summaries, toAttemptSummary(&attempts[i]))
	}
	return summaries, nil
}

func (s *attemptService) GetAttemptDetails(attemptID, userID string) (*dto.AttemptDetailResponse, error) {
	attempt, err := s.loadOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if !attempt.Completed() {
		return nil, ErrAttemptInProgress
	}

	details, err := s.attemptRepo.ListDetails(attemptID)
	if err != nil {
		return nil, err
	}

	answers := make([]dto.DetailedAnswer, 0, len(details))
	for _, d := range details {
		answers = append(answers, dto.DetailedAnswer{
			ID:             d.ID,
			QuestionText:   d.QuestionText,
			Options:        PresentOptions(d.Options, d.OptionOrder),
			CorrectOption:  d.CorrectOption,
			SelectedOption: d.SelectedOption,
			IsCorrect:      d.IsCorrect,
			Explanation:    s.explanationFor(attempt, &d),
			Generated:      d.Generated,
			Marks:          d.Marks,
			Category:       d.Category,
		})
	}

	return &dto.AttemptDetailResponse{
		AttemptSummary:  toAttemptSummary(attempt),
		UserID:          attempt.UserID,
		DetailedAnswers: answers,
	}, nil
}

func (s *attemptService) GetDashboard(userID string) (*dto.StudentAptitudeDashboard, error) {
	stats, err := s.attemptRepo.GetOverallStats(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.ListByUser(userID, 100, 0)
	if err != nil {
		return nil, err
	}
	type tally struct{ correct, total int }
	byCategory := map[string]*tally{}
	var order []string
	for i := range attempts {
		if !attempts[i].Completed() {
			continue
		}
		for _, result := range attempts[i].Results {
			t, ok := byCategory[result.Category]
			if !ok {
				t = &tally{}
				byCategory[result.Category] = t
				order = append(order, result.Category)
			}
			t.total++
			if result.IsCorrect {
				t.correct++
			}
		}
	}

	analysis := make([]dto.TopicAnalysisItem, 0, len(order))
	for _, category := range order {
		t := byCategory[category]
		accuracy := 0.0
		if t.total > 0 {
			accuracy = math.Round(float64(t.correct)/float64(t.total)*1000) / 10
		}
		analysis = append(analysis, dto.TopicAnalysisItem{
			Category: category,
			Correct:  t.correct,
			Total:    t.total,
			Accuracy: accuracy,
		})
	}

	return &dto.StudentAptitudeDashboard{
		TotalAttempts: stats.TotalAttempts,
		AverageScore:  math.Round(stats.AverageScore*10) / 10,
		BestScore:     stats.BestScore,
		TopicAnalysis: analysis,
	}, nil
}

// loadOwned fetches an attempt and hides other users' attempts behind
// ErrNotFound.
func (s *attemptService) loadOwned(attemptID, userID string) (*model.AptitudeAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrNotFound
	}
	return attempt, nil
}

func (s *attemptService) elapsedSeconds(attempt *model.AptitudeAttempt) int {
	elapsed := int(s.now().UTC().Sub(attempt.StartedAt).Seconds())
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (s *attemptService) deadlines(attempt *model.AptitudeAttempt) map[model.QuestionRef]*int {
	return BuildDeadlines(attempt.QuestionRefs, attempt.Mode, func(ref model.QuestionRef) *int {
		if gq, ok := attempt.GeneratedQuestions[ref]; ok {
			return gq.TimeLimitSeconds
		}
		if id, ok := ref.BankID(); ok {
			if q, err := s.questionRepo.FindByID(id); err == nil {
				return q.TimeLimitSeconds
			}
		}
		return nil
	})
}

func (s *attemptService) sessionExpired(attempt *model.AptitudeAttempt) bool {
	if attempt.Completed() || !IsTimedMode(attempt.Mode) {
		return false
	}
	total := MaxDeadline(s.deadlines(attempt))
	return total > 0 && s.elapsedSeconds(attempt) > total
}

// autoSubmitExpired finalizes an overrun attempt with whatever answers
// were saved in time. Elapsed time is capped at the total budget.
func (s *attemptService) autoSubmitExpired(attempt *model.AptitudeAttempt) error {
	total := MaxDeadline(s.deadlines(attempt))
	elapsed := s.elapsedSeconds(attempt)
	if total > 0 && elapsed > total {
		elapsed = total
	}
	log.Info().
		Str("attempt_id", attempt.ID).
		Str("user_id", attempt.UserID).
		Int("elapsed", elapsed).
		Msg("Auto-submitting expired attempt")
	if err := s.finalize(attempt, elapsed); err != nil {
		// A concurrent writer already finalized the attempt; its
		// outcome stands.
		if errors.Is(err, ErrAlreadySubmitted) {
			return nil
		}
		return err
	}
	s.syncProfile(attempt.UserID)
	return nil
}

// finalize scores the attempt and persists it with its detail rows in
// one transaction. Answers saved past their question's cumulative
// deadline count as skipped, never as correct or wrong.
func (s *attemptService) finalize(attempt *model.AptitudeAttempt, elapsed int) error {
	deadlines := s.deadlines(attempt)
	resolver := s.canonicalResolver(attempt)

	effective := make(map[model.QuestionRef]*string, len(attempt.Answers))
	for ref, record := range attempt.Answers {
		if lateAnswer(record, deadlines[ref]) {
			effective[ref] = nil
			continue
		}
		effective[ref] = record.Selected
	}

	summary := ScoreAttempt(attempt.QuestionRefs, resolver, effective)

	now := s.now().UTC()
	attempt.Status = model.AttemptCompleted
	attempt.CompletedAt = &now
	attempt.CorrectAnswers = summary.Correct
	attempt.WrongAnswers = summary.Wrong
	attempt.Skipped = summary.Skipped
	attempt.Score = summary.Score
	attempt.TimeTakenSeconds = elapsed

	attempt.Results = make(model.ResultMap, len(summary.Results))
	details := make([]model.AptitudeAttemptDetail, 0, len(summary.Results))
	for _, result := range summary.Results {
		attempt.Results[result.Ref] = model.AnswerResult{
			Selected:      result.Selected,
			IsCorrect:     result.IsCorrect,
			CorrectOption: result.CorrectOption,
			Category:      result.Category,
			Marks:         result.Marks,
		}
		question, _ := resolver(result.Ref)
		detail := model.AptitudeAttemptDetail{
			AttemptID:      attempt.ID,
			QuestionText:   question.Text,
			Options:        question.Options,
			OptionOrder:    attempt.OptionOrders[result.Ref],
			Generated:      result.Ref.IsGenerated(),
			SelectedOption: result.Selected,
			CorrectOption:  result.CorrectOption,
			IsCorrect:      result.IsCorrect,
			Marks:          result.Marks,
			Category:       result.Category,
		}
		if id, ok := result.Ref.BankID(); ok {
			detail.QuestionID = &id
		}
		details = append(details, detail)
	}

	if err := s.attemptRepo.FinalizeSubmission(attempt, details); err != nil {
		if errors.Is(err, repository.ErrAttemptNotActive) {
			return ErrAlreadySubmitted
		}
		log.Error().Err(err).Str("attempt_id", attempt.ID).Msg("Failed to finalize submission")
		return err
	}
	log.Info().
		Str("attempt_id", attempt.ID).
		Float64("score", attempt.Score).
		Int("correct", attempt.CorrectAnswers).
		Int("skipped", attempt.Skipped).
		Msg("Assessment submitted")
	return nil
}

// canonicalResolver resolves refs against the attempt's embedded
// generated questions first, then the bank.
func (s *attemptService) canonicalResolver(attempt *model.AptitudeAttempt) func(ref model.QuestionRef) (*CanonicalQuestion, bool) {
	bankCache := make(map[string]*model.AptitudeQuestion)
	return func(ref model.QuestionRef) (*CanonicalQuestion, bool) {
		if gq, ok := attempt.GeneratedQuestions[ref]; ok {
			return &CanonicalQuestion{
				Text:             gq.QuestionText,
				Options:          gq.Options,
				CorrectOption:    gq.CorrectOption,
				Explanation:      gq.Explanation,
				Category:         gq.Category,
				Difficulty:       gq.Difficulty,
				Marks:            gq.Marks,
				TimeLimitSeconds: gq.TimeLimitSeconds,
			}, true
		}
		id, ok := ref.BankID()
		if !ok {
			return nil, false
		}
		question, cached := bankCache[id]
		if !cached {
			var err error
			question, err = s.questionRepo.FindByID(id)
			if err != nil {
				log.Warn().Err(err).Str("question_id", id).Msg("Bank question missing during scoring")
				bankCache[id] = nil
				return nil, false
			}
			bankCache[id] = question
		}
		if question == nil {
			return nil, false
		}
		return &CanonicalQuestion{
			Text:             question.QuestionText,
			Options:          question.Options,
			CorrectOption:    question.CorrectOption,
			Explanation:      question.Explanation,
			Category:         string(question.Category),
			Difficulty:       question.Difficulty,
			SubTopic:         question.SubTopic,
			Marks:            question.Marks,
			TimeLimitSeconds: question.TimeLimitSeconds,
		}, true
	}
}

func (s *attemptService) buildBriefs(attempt *model.AptitudeAttempt, timed bool) []dto.QuestionBrief {
	resolver := s.canonicalResolver(attempt)
	briefs := make([]dto.QuestionBrief, 0, len(attempt.QuestionRefs))
	for _, ref := range attempt.QuestionRefs {
		question, ok := resolver(ref)
		if !ok {
			continue
		}
		marks := question.Marks
		if marks <= 0 {
			marks = 1
		}
		briefs = append(briefs, dto.QuestionBrief{
			ID:               ref.String(),
			QuestionText:     question.Text,
			Options:          PresentOptions(question.Options, attempt.OptionOrders[ref]),
			Category:         question.Category,
			Difficulty:       string(question.Difficulty),
			SubTopic:         question.SubTopic,
			Marks:            marks,
			TimeLimitSeconds: EffectiveTimeLimit(question.TimeLimitSeconds, timed),
		})
	}
	return briefs
}

// syncProfile updates the student's aptitude readiness from the last
// five completed attempts. Failures are logged, never surfaced; the
// submission already committed.
func (s *attemptService) syncProfile(userID string) {
	attempts, err := s.attemptRepo.ListByUser(userID, 25, 0)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Profile sync skipped: history unavailable")
		return
	}
	var sum float64
	var counted int
	for i := range attempts {
		if !attempts[i].Completed() {
			continue
		}
		sum += attempts[i].Score
		counted++
		if counted == 5 {
			break
		}
	}
	if counted == 0 {
		return
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("user_id", userID).Msg("Profile sync skipped: lookup failed")
		}
		return
	}
	profile.AptitudeScore = math.Round(sum/float64(counted)*10) / 10
	profile.OverallReadiness = math.Round((profile.AptitudeScore+profile.InterviewScore+profile.CodingScore)/3*10) / 10
	if err := s.profileRepo.Update(profile); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Profile sync failed")
	}
}

// explanationFor recovers the explanation for a review row. Bank rows
// carry a question id; generated rows are matched against the
// attempt's embedded questions by text.
func (s *attemptService) explanationFor(attempt *model.AptitudeAttempt, detail *model.AptitudeAttemptDetail) *string {
	if detail.QuestionID != nil {
		if question, err := s.questionRepo.FindByID(*detail.QuestionID); err == nil {
			return question.Explanation
		}
		return nil
	}
	for _, gq := range attempt.GeneratedQuestions {
		if gq.QuestionText == detail.QuestionText {
			return gq.Explanation
		}
	}
	return nil
}

func equalSelection(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func lateAnswer(record model.AnswerRecord, deadline *int) bool {
	return deadline != nil && record.SavedAtSeconds != nil && *record.SavedAtSeconds > *deadline
}

func toAttemptSummary(attempt *model.AptitudeAttempt) dto.AttemptSummary {
	summary := dto.AttemptSummary{
		ID:               attempt.ID,
		Mode:             string(attempt.Mode),
		Status:           string(attempt.Status),
		TotalQuestions:   attempt.TotalQuestions,
		CorrectAnswers:   attempt.CorrectAnswers,
		WrongAnswers:     attempt.WrongAnswers,
		Skipped:          attempt.Skipped,
		Score:            attempt.Score,
		TimeTakenSeconds: attempt.TimeTakenSeconds,
		StartedAt:        attempt.StartedAt,
		CompletedAt:      attempt.CompletedAt,
	}
	if attempt.Category != nil {
		c := string(*attempt.Category)
		summary.Category = &c
	}
	if attempt.Difficulty != nil {
		d := string(*attempt.Difficulty)
		summary.Difficulty = &d
	}
	return summary
}
