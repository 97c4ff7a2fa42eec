package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/placeprep/backend/internal/model"
	"github.com/placeprep/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// commonSkills is scanned against raw resume text when no stored
// analysis yields hints.
var commonSkills = []string{
	"Python", "Java", "C++", "C#", "JavaScript", "TypeScript", "React", "Node.js",
	"Express", "Django", "Flask", "FastAPI", "Spring", "Spring Boot", "SQL",
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Docker", "Kubernetes", "AWS",
	"Azure", "GCP", "HTML", "CSS", "Git", "Linux", "Pandas", "NumPy",
	"TensorFlow", "PyTorch", "Scikit-learn", "Power BI", "Tableau",
	"Excel", "REST", "GraphQL",
}

// ResumeService exposes resume text and skill hints to the question
// source adapter.
type ResumeService interface {
	GetResumeText(userID string) (string, error)
	// GetSkillHints returns skill hints from the latest stored
	// analysis, falling back to a keyword scan of the resume text.
	GetSkillHints(userID string, resumeText string) ([]string, error)
	// AnalyzeAndStore runs skill extraction over the latest resume and
	// persists the result.
	AnalyzeAndStore(ctx context.Context, userID string) error
}

type resumeService struct {
	resumeRepo repository.ResumeRepository
	generator  QuestionGenerationService
}

func NewResumeService(resumeRepo repository.ResumeRepository, generator QuestionGenerationService) ResumeService {
	return &resumeService{resumeRepo: resumeRepo, generator: generator}
}

func (s *resumeService) GetResumeText(userID string) (string, error) {
	resume, err := s.resumeRepo.FindLatestByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("error fetching resume for user %s: %w", userID, err)
	}
	return resume.Text, nil
}

func (s *resumeService) GetSkillHints(userID string, resumeText string) ([]string, error) {
	var hints []string

	analysis, err := s.resumeRepo.FindLatestAnalysisByUser(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error fetching resume analysis for user %s: %w", userID, err)
	}
	if analysis != nil {
		for _, skill := range analysis.ExtractedSkills {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				hints = append(hints, trimmed)
			}
		}
		if structured, ok := analysis.StructuredData["skills"].([]any); ok {
			for _, item := range structured {
				if skill, ok := item.(string); ok && strings.TrimSpace(skill) != "" {
					hints = append(hints, strings.TrimSpace(skill))
				}
			}
		}
	}

	if len(hints) == 0 && resumeText != "" {
		normalized := strings.ToLower(resumeText)
		for _, skill := range commonSkills {
			if strings.Contains(normalized, strings.ToLower(skill)) {
				hints = append(hints, skill)
			}
		}
	}

	return dedupeOrdered(hints), nil
}

func (s *resumeService) AnalyzeAndStore(ctx context.Context, userID string) error {
	resume, err := s.resumeRepo.FindLatestByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoResumeAvailable
		}
		return fmt.Errorf("error fetching resume for analysis: %w", err)
	}

	skills, err := s.generator.ExtractSkills(ctx, resume.Text)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("Skill extraction failed")
		return fmt.Errorf("skill extraction failed: %w", err)
	}

	analysis := &model.ResumeAnalysis{
		UserID:          userID,
		ExtractedSkills: dedupeOrdered(skills),
	}
	if err := s.resumeRepo.CreateAnalysis(analysis); err != nil {
		return fmt.Errorf("failed to store resume analysis: %w", err)
	}
	log.Info().Str("userID", userID).Int("skills", len(analysis.ExtractedSkills)).Msg("Resume analysis stored")
	return nil
}

func dedupeOrdered(items []string) []string {
	seen := make(map[string]bool, len(items))
	deduped := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, item)
	}
	return deduped
}
