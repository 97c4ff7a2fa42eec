package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/placeprep/backend/internal/dto"
	"github.com/placeprep/backend/internal/model"
	"github.com/placeprep/backend/internal/repository"
)

// QuestionService is the admin surface over the question bank:
// authoring, versioned edits, approval workflow, retirement.
type QuestionService interface {
	CreateQuestion(req dto.CreateQuestionRequest, createdBy *string) (*dto.QuestionResponse, error)
	GetQuestion(id string) (*dto.QuestionResponse, error)
	ListQuestions(filter repository.QuestionFilter) (*dto.QuestionListResponse, error)
	UpdateQuestion(id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	ReviewQuestion(id string, req dto.ReviewQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(id string) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) CreateQuestion(req dto.CreateQuestionRequest, createdBy *string) (*dto.QuestionResponse, error) {
	options, err := normalizeOptions(req.Options, req.CorrectOption)
	if err != nil {
		return nil, err
	}
	marks := req.Marks
	if marks <= 0 {
		marks = 1
	}

	question := &model.AptitudeQuestion{
		ID:               uuid.NewString(),
		Category:         model.AptitudeCategory(req.Category),
		Difficulty:       model.DifficultyLevel(req.Difficulty),
		QuestionText:     req.QuestionText,
		Options:          options,
		CorrectOption:    strings.ToUpper(req.CorrectOption),
		Explanation:      req.Explanation,
		SubTopic:         req.SubTopic,
		RoleTag:          req.RoleTag,
		Marks:            marks,
		TimeLimitSeconds: req.TimeLimitSeconds,
		Status:           model.QuestionActive,
		ApprovalStatus:   model.ApprovalPending,
		VersionNumber:    1,
		IsActive:         true,
		CreatedBy:        createdBy,
	}
	if err := s.questionRepo.Create(question); err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		return nil, err
	}
	log.Info().Str("question_id", question.ID).Str("category", req.Category).Msg("Question created")
	return toQuestionResponse(question)
}

func (s *questionService) GetQuestion(id string) (*dto.QuestionResponse, error) {
	question, err := s.loadQuestion(id)
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(question)
}

func (s *questionService) ListQuestions(filter repository.QuestionFilter) (*dto.QuestionListResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	questions, err := s.questionRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := s.questionRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp, err := toQuestionResponse(&questions[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return &dto.QuestionListResponse{
		Questions: responses,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

func (s *questionService) UpdateQuestion(id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.loadQuestion(id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		question.Category = model.AptitudeCategory(*req.Category)
	}
	if req.Difficulty != nil {
		question.Difficulty = model.DifficultyLevel(*req.Difficulty)
	}
	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.CorrectOption != nil {
		question.CorrectOption = strings.ToUpper(*req.CorrectOption)
	}
	if req.Options != nil {
		options, err := normalizeOptions(req.Options, question.CorrectOption)
		if err != nil {
			return nil, err
		}
		question.Options = options
	}
	if req.Explanation != nil {
		question.Explanation = req.Explanation
	}
	if req.SubTopic != nil {
		question.SubTopic = req.SubTopic
	}
	if req.Marks != nil {
		question.Marks = *req.Marks
	}
	if req.TimeLimitSeconds != nil {
		question.TimeLimitSeconds = req.TimeLimitSeconds
	}

	// Any edit re-enters review so a changed answer key cannot reach
	// live attempts unchecked.
	question.VersionNumber++
	question.ApprovalStatus = model.ApprovalPending
	question.ApprovedBy = nil
	question.ApprovedAt = nil

	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Str("question_id", id).Msg("Failed to update question")
		return nil, err
	}
	return toQuestionResponse(question)
}

func (s *questionService) ReviewQuestion(id string, req dto.ReviewQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.loadQuestion(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.Approve {
		question.ApprovalStatus = model.ApprovalApproved
	} else {
		question.ApprovalStatus = model.ApprovalRejected
	}
	question.ApprovedBy = &req.ReviewerID
	question.ApprovedAt = &now

	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Str("question_id", id).Msg("Failed to review question")
		return nil, err
	}
	log.Info().
		Str("question_id", id).
		Str("approval_status", string(question.ApprovalStatus)).
		Str("reviewer_id", req.ReviewerID).
		Msg("Question reviewed")
	return toQuestionResponse(question)
}

func (s *questionService) DeleteQuestion(id string) error {
	if _, err := s.loadQuestion(id); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(id); err != nil {
		log.Error().Err(err).Str("question_id", id).Msg("Failed to retire question")
		return err
	}
	log.Info().Str("question_id", id).Msg("Question retired")
	return nil
}

func (s *questionService) loadQuestion(id string) (*model.AptitudeQuestion, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return question, nil
}

// normalizeOptions uppercases keys, requires at least two options, and
// requires the correct key to exist among them.
func normalizeOptions(raw map[string]string, correct string) (model.OptionMap, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("%w: at least two options required", ErrValidation)
	}
	options := make(model.OptionMap, len(raw))
	for key, text := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" || strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: option keys and texts must be non-empty", ErrValidation)
		}
		options[k] = text
	}
	if _, ok := options[strings.ToUpper(correct)]; !ok {
		return nil, fmt.Errorf("%w: correct option %q not among options", ErrValidation, correct)
	}
	return options, nil
}

func toQuestionResponse(question *model.AptitudeQuestion) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, err
	}
	resp.Category = string(question.Category)
	resp.Difficulty = string(question.Difficulty)
	resp.Options = map[string]string(question.Options)
	resp.Status = string(question.Status)
	resp.ApprovalStatus = string(question.ApprovalStatus)
	return &resp, nil
}
