package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/placeprep/backend/config"
	"github.com/placeprep/backend/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GenerationRequest describes one call to the question authoring
// capability. AvoidTexts carries question texts the student saw in
// recent attempts so the model does not repeat them.
type GenerationRequest struct {
	ResumeText    string
	PreferredRole *string
	SkillHints    []string
	Difficulty    model.DifficultyLevel
	Count         int
	AvoidTexts    []string
}

// GeneratedCandidate is one MCQ proposed by the generation capability,
// already in the canonical bank-question shape.
type GeneratedCandidate struct {
	QuestionText     string          `json:"question_text"`
	Options          model.OptionMap `json:"options"`
	CorrectOption    string          `json:"correct_option"`
	Explanation      *string         `json:"explanation,omitempty"`
	Category         string          `json:"category"`
	Marks            int             `json:"marks"`
	TimeLimitSeconds *int            `json:"time_limit_seconds,omitempty"`
}

// QuestionGenerationService is the external question authoring
// capability. Implementations must tolerate being unavailable; the
// attempt engine degrades to the fallback table on error.
type QuestionGenerationService interface {
	GenerateResumeQuestions(ctx context.Context, req GenerationRequest) ([]GeneratedCandidate, error)
	ExtractSkills(ctx context.Context, resumeText string) ([]string, error)
}

type geminiQuestionService struct {
	client  *genai.GenerativeModel
	cfg     *config.Config
	timeout time.Duration
}

func NewGeminiQuestionService(cfg *config.Config) (QuestionGenerationService, error) {
	timeout := time.Duration(cfg.Generation.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question generation will rely on the fallback table.")
		return &geminiQuestionService{cfg: cfg, client: nil, timeout: timeout}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	generativeModel := client.GenerativeModel("gemini-1.5-flash")
	return &geminiQuestionService{client: generativeModel, cfg: cfg, timeout: timeout}, nil
}

func (s *geminiQuestionService) GenerateResumeQuestions(ctx context.Context, req GenerationRequest) ([]GeneratedCandidate, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	if req.Count <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := s.buildGenerationPrompt(req)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Int("count", req.Count).Msg("Gemini API error during question generation")
		return nil, err
	}

	raw := collectText(resp)
	if raw == "" {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	candidates, err := parseCandidates(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse generated questions from Gemini response")
		return nil, err
	}
	if len(candidates) > req.Count {
		candidates = candidates[:req.Count]
	}
	return candidates, nil
}

func (s *geminiQuestionService) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var b strings.Builder
	b.WriteString("Extract the distinct technical skills mentioned in the resume below.\n")
	b.WriteString("Respond with a JSON array of skill name strings only, no prose, no markdown.\n\n")
	b.WriteString("Resume:\n---\n")
	b.WriteString(resumeText)
	b.WriteString("\n---\n")

	resp, err := s.client.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during skill extraction")
		return nil, err
	}
	raw := stripCodeFences(collectText(resp))
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, fmt.Errorf("could not parse skill list from AI response: %w", err)
	}
	return skills, nil
}

func (s *geminiQuestionService) buildGenerationPrompt(req GenerationRequest) string {
	var b strings.Builder
	b.WriteString("You are an expert technical interviewer preparing a campus placement aptitude test.\n")
	fmt.Fprintf(&b, "Author exactly %d multiple-choice questions grounded in the candidate's resume below.\n", req.Count)
	if req.PreferredRole != nil && *req.PreferredRole != "" {
		fmt.Fprintf(&b, "The candidate is targeting a %s role.\n", *req.PreferredRole)
	}
	fmt.Fprintf(&b, "Difficulty: %s.\n", req.Difficulty)
	if len(req.SkillHints) > 0 {
		fmt.Fprintf(&b, "Focus on these skills: %s.\n", strings.Join(req.SkillHints, ", "))
	}
	b.WriteString("\nResume:\n---\n")
	b.WriteString(req.ResumeText)
	b.WriteString("\n---\n")
	if len(req.AvoidTexts) > 0 {
		b.WriteString("\nDo NOT repeat any of these previously asked questions:\n")
		for _, text := range req.AvoidTexts {
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}
	b.WriteString(`
Respond with a JSON array only, no prose and no markdown fences. Each element:
{
  "question_text": "...",
  "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
  "correct_option": "A",
  "explanation": "...",
  "category": "RESUME",
  "marks": 1
}
`)
	return b.String()
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return strings.TrimSpace(trimmed)
}

func parseCandidates(raw string) ([]GeneratedCandidate, error) {
	var parsed []GeneratedCandidate
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("response is not a valid question array: %w", err)
	}
	valid := make([]GeneratedCandidate, 0, len(parsed))
	for _, c := range parsed {
		if c.QuestionText == "" || len(c.Options) < 2 {
			continue
		}
		if _, ok := c.Options[strings.ToUpper(c.CorrectOption)]; !ok {
			continue
		}
		c.CorrectOption = strings.ToUpper(c.CorrectOption)
		if c.Category == "" {
			c.Category = string(model.CategoryResume)
		}
		if c.Marks <= 0 {
			c.Marks = 1
		}
		valid = append(valid, c)
	}
	return valid, nil
}
