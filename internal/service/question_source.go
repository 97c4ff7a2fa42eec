package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/placeprep/backend/internal/model"
	"github.com/placeprep/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// recentAttemptWindow is how many past attempts feed anti-repetition.
const recentAttemptWindow = 5

// ComposeRequest asks the question source for an attempt's question
// set. ResumeQuestionCount overrides the mode's default generated
// quota; it is clamped to [0, Count].
type ComposeRequest struct {
	UserID              string
	Category            *model.AptitudeCategory
	Difficulty          *model.DifficultyLevel
	Count               int
	Mode                model.AptitudeMode
	ResumeQuestionCount *int
	ExcludeCategories   []model.AptitudeCategory
}

// Composition is the uniform result: bank questions plus generated
// questions keyed by their ephemeral refs.
type Composition struct {
	Bank      []model.AptitudeQuestion
	Generated model.GeneratedQuestionMap
}

// QuestionSource composes an attempt's question set from the approved
// bank and the resume-based generation capability.
type QuestionSource interface {
	Compose(ctx context.Context, req ComposeRequest) (*Composition, error)
}

type questionSource struct {
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	profileRepo  repository.ProfileRepository
	resumeSvc    ResumeService
	generator    QuestionGenerationService
}

func NewQuestionSource(
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	profileRepo repository.ProfileRepository,
	resumeSvc ResumeService,
	generator QuestionGenerationService,
) QuestionSource {
	return &questionSource{
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		profileRepo:  profileRepo,
		resumeSvc:    resumeSvc,
		generator:    generator,
	}
}

func (s *questionSource) Compose(ctx context.Context, req ComposeRequest) (*Composition, error) {
	timed := IsTimedMode(req.Mode)
	recentIDs, recentTexts := s.recentAttemptContext(req.UserID)

	var resumeRequest *int
	if req.ResumeQuestionCount != nil {
		clamped := *req.ResumeQuestionCount
		if clamped < 0 {
			clamped = 0
		}
		if clamped > req.Count {
			clamped = req.Count
		}
		resumeRequest = &clamped
	}

	generated := make(model.GeneratedQuestionMap)

	switch req.Mode {
	case model.ModeResumeOnly:
		desired := req.Count
		if resumeRequest != nil {
			desired = *resumeRequest
		}
		if desired <= 0 {
			return nil, fmt.Errorf("%w: resume question count must be greater than 0", ErrValidation)
		}
		if err := s.generateInto(ctx, generated, req, desired, recentTexts, timed, true); err != nil {
			return nil, err
		}
		if len(generated) == 0 {
			return nil, ErrResumeQuestionsUnavailable
		}
		return &Composition{Generated: generated}, nil

	case model.ModeTest:
		desired := defaultGeneratedQuota(req.Count)
		if resumeRequest != nil {
			desired = *resumeRequest
		}
		if desired > 0 {
			// TEST degrades to bank-only without a resume.
			if err := s.generateInto(ctx, generated, req, desired, recentTexts, timed, false); err != nil {
				return nil, err
			}
		}
	}

	bank, err := s.selectBankQuestions(req, req.Count-len(generated), recentIDs)
	if err != nil {
		return nil, err
	}

	if len(bank) == 0 && len(generated) == 0 {
		if resumeRequest != nil && *resumeRequest > 0 {
			return nil, ErrResumeQuestionsUnavailable
		}
		return nil, ErrNoQuestionsAvailable
	}
	return &Composition{Bank: bank, Generated: generated}, nil
}

// defaultGeneratedQuota is the minority share of a TEST attempt devoted
// to resume-derived questions: min(3, max(1, count/4)).
func defaultGeneratedQuota(count int) int {
	quota := count / 4
	if quota < 1 {
		quota = 1
	}
	if quota > 3 {
		quota = 3
	}
	if quota > count {
		quota = count
	}
	return quota
}

// generateInto fills the generated map up to desired questions. When
// mandatory is set, a missing resume is a hard failure; otherwise the
// quota silently collapses to zero.
func (s *questionSource) generateInto(
	ctx context.Context,
	generated model.GeneratedQuestionMap,
	req ComposeRequest,
	desired int,
	recentTexts []string,
	timed bool,
	mandatory bool,
) error {
	resumeText, err := s.resumeSvc.GetResumeText(req.UserID)
	if err != nil {
		return err
	}
	if resumeText == "" {
		if mandatory {
			return ErrNoResumeAvailable
		}
		return nil
	}

	skillHints, err := s.resumeSvc.GetSkillHints(req.UserID, resumeText)
	if err != nil {
		return err
	}
	if len(skillHints) == 0 {
		// Try an on-the-fly analysis; best-effort.
		if analyzeErr := s.resumeSvc.AnalyzeAndStore(ctx, req.UserID); analyzeErr != nil {
			log.Warn().Err(analyzeErr).Str("userID", req.UserID).Msg("On-the-fly resume analysis failed")
		} else if skillHints, err = s.resumeSvc.GetSkillHints(req.UserID, resumeText); err != nil {
			return err
		}
	}

	difficulty := model.DifficultyMedium
	if req.Difficulty != nil {
		difficulty = *req.Difficulty
	}

	candidates, genErr := s.generator.GenerateResumeQuestions(ctx, GenerationRequest{
		ResumeText:    resumeText,
		PreferredRole: s.preferredRole(req.UserID),
		SkillHints:    skillHints,
		Difficulty:    difficulty,
		Count:         desired,
		AvoidTexts:    recentTexts,
	})
	if genErr != nil {
		// The capability being unreachable is recovered locally.
		log.Warn().Err(genErr).Int("desired", desired).Msg("Question generation failed, relying on fallback table")
	}
	if len(candidates) < desired && len(skillHints) > 0 {
		candidates = append(candidates, buildFallbackSkillQuestions(skillHints, desired-len(candidates))...)
	}

	for _, c := range candidates {
		ref := model.NewGeneratedRef()
		generated[ref] = model.GeneratedQuestion{
			QuestionText:     c.QuestionText,
			Options:          c.Options,
			CorrectOption:    c.CorrectOption,
			Explanation:      c.Explanation,
			Category:         c.Category,
			Difficulty:       difficulty,
			Marks:            c.Marks,
			TimeLimitSeconds: EffectiveTimeLimit(c.TimeLimitSeconds, timed),
		}
	}
	return nil
}

// selectBankQuestions fetches a superset of approved questions,
// filters excluded categories, shuffles, and prefers questions the
// user has not seen in recent attempts.
func (s *questionSource) selectBankQuestions(req ComposeRequest, bankCount int, recentIDs map[string]bool) ([]model.AptitudeQuestion, error) {
	if req.Mode == model.ModeResumeOnly || bankCount <= 0 {
		return nil, nil
	}

	// Overfetch so shuffling has room.
	limit := req.Count * 3
	if req.Category != nil {
		limit = req.Count * 2
	}
	questions, err := s.questionRepo.ListApproved(req.Category, req.Difficulty, limit)
	if err != nil {
		return nil, err
	}

	if len(req.ExcludeCategories) > 0 {
		excluded := make(map[model.AptitudeCategory]bool, len(req.ExcludeCategories))
		for _, c := range req.ExcludeCategories {
			excluded[c] = true
		}
		filtered := questions[:0]
		for _, q := range questions {
			if !excluded[q.Category] {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	fresh := make([]model.AptitudeQuestion, 0, len(questions))
	for _, q := range questions {
		if !recentIDs[q.ID] {
			fresh = append(fresh, q)
		}
	}
	// Anti-repetition is best-effort: reuse recent questions rather
	// than come up short.
	if len(fresh) >= bankCount {
		questions = fresh
	}
	if len(questions) > bankCount {
		questions = questions[:bankCount]
	}
	return questions, nil
}

func (s *questionSource) preferredRole(userID string) *string {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("userID", userID).Msg("Could not load profile for preferred role")
		}
		return nil
	}
	if len(profile.PreferredRoles) == 0 {
		return nil
	}
	return &profile.PreferredRoles[0]
}

// recentAttemptContext gathers bank question ids and generated
// question texts from the user's last few attempts so neither is
// repeated.
func (s *questionSource) recentAttemptContext(userID string) (map[string]bool, []string) {
	recentIDs := make(map[string]bool)
	var recentTexts []string

	attempts, err := s.attemptRepo.ListByUser(userID, recentAttemptWindow, 0)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("Could not load recent attempts for anti-repetition")
		return recentIDs, recentTexts
	}
	for _, attempt := range attempts {
		for _, ref := range attempt.QuestionRefs {
			if id, ok := ref.BankID(); ok {
				recentIDs[id] = true
			}
		}
		for _, gen := range attempt.GeneratedQuestions {
			if gen.QuestionText != "" {
				recentTexts = append(recentTexts, gen.QuestionText)
			}
		}
	}
	return recentIDs, recentTexts
}
