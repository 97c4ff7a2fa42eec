package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/placeprep/backend/internal/model"
)

func approvedQuestion(id string, category model.AptitudeCategory) *model.AptitudeQuestion {
	return &model.AptitudeQuestion{
		ID:             id,
		Category:       category,
		Difficulty:     model.DifficultyMedium,
		QuestionText:   "question " + id,
		Options:        model.OptionMap{"A": "1", "B": "2", "C": "3", "D": "4"},
		CorrectOption:  "A",
		Marks:          1,
		Status:         model.QuestionActive,
		ApprovalStatus: model.ApprovalApproved,
		IsActive:       true,
	}
}

func seedBank(n int) []*model.AptitudeQuestion {
	questions := make([]*model.AptitudeQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, approvedQuestion(fmt.Sprintf("bank-%02d", i), model.CategoryQuantitative))
	}
	return questions
}

func newSource(bank []*model.AptitudeQuestion, resume *fakeResumeService, gen *fakeGenerator) QuestionSource {
	return NewQuestionSource(
		newFakeQuestionRepo(bank...),
		newFakeAttemptRepo(),
		newFakeProfileRepo(),
		resume,
		gen,
	)
}

func generatedCandidates(n int) []GeneratedCandidate {
	out := make([]GeneratedCandidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, GeneratedCandidate{
			QuestionText:  fmt.Sprintf("generated %d", i),
			Options:       model.OptionMap{"A": "1", "B": "2", "C": "3", "D": "4"},
			CorrectOption: "A",
			Category:      string(model.CategoryResume),
			Marks:         1,
		})
	}
	return out
}

func TestDefaultGeneratedQuota(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 1},
		{4, 1},
		{5, 1},
		{8, 2},
		{12, 3},
		{40, 3},
	}
	for _, tt := range tests {
		if got := defaultGeneratedQuota(tt.count); got != tt.want {
			t.Errorf("defaultGeneratedQuota(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestComposePracticeIsBankOnly(t *testing.T) {
	source := newSource(seedBank(30), &fakeResumeService{text: "resume"}, &fakeGenerator{candidates: generatedCandidates(3)})

	composition, err := source.Compose(context.Background(), ComposeRequest{
		UserID: "user-1",
		Count:  10,
		Mode:   model.ModePractice,
	})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if len(composition.Generated) != 0 {
		t.Errorf("practice generated %d questions, want 0", len(composition.Generated))
	}
	if len(composition.Bank) != 10 {
		t.Errorf("bank questions = %d, want 10", len(composition.Bank))
	}
}

func TestComposeTestReservesGeneratedQuota(t *testing.T) {
	source := newSource(seedBank(60), &fakeResumeService{text: "resume", hints: []string{"python"}}, &fakeGenerator{candidates: generatedCandidates(5)})

	composition, err := source.Compose(context.Background(), ComposeRequest{
		UserID: "user-1",
		Count:  12,
		Mode:   model.ModeTest,
	})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if len(composition.Generated) != 3 {
		t.Errorf("generated = %d, want quota 3", len(composition.Generated))
	}
	if total := len(composition.Bank) + len(composition.Generated); total != 12 {
		t.Errorf("total questions = %d, want 12", total)
	}
}

func TestComposeTestDegradesWithoutResume(t *testing.T) {
	source := newSource(seedBank(30), &fakeResumeService{text: ""}, &fakeGenerator{})

	composition, err := source.Compose(context.Background(), ComposeRequest{
		UserID: "user-1",
		Count:  8,
		Mode:   model.ModeTest,
	})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if len(composition.Generated) != 0 {
		t.Errorf("generated = %d, want 0 without a resume", len(composition.Generated))
	}
	if len(composition.Bank) != 8 {
		t.Errorf("bank = %d, want 8", len(composition.Bank))
	}
}

func TestComposeResumeOnlyRequiresResume(t *testing.T) {
	source := newSource(seedBank(10), &fakeResumeService{text: ""}, &fakeGenerator{})

	_, err := source.Compose(context.Background(), ComposeRequest{
		UserID: "user-1",
		Count:  5,
		Mode:   model.ModeResumeOnly,
	})
	if !errors.Is(err, ErrNoResumeAvailable) {
		t.Fatalf("err = %v, want ErrNoResumeAvailable", err)
	}
}

func TestComposeResumeOnlyRejectsZeroCount(t *testing.T) {
	zero := 0
	source := newSource(nil, &fakeResumeService{text: "resume"}, &fakeGenerator{})

	_, err := source.Compose(context.Background(), ComposeRequest{
		UserID:              "user-1",
		Count:               5,
		Mode:                model.ModeResumeOnly,
		ResumeQuestionCount: &zero,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestComposeResumeOnlyFailsWhenNothingGenerates(t *testing.T) {
	source := newSource(nil, &fakeResumeService{text: "resume"}, &fakeGenerator{err: errors.New("upstream down")})

	_, err := source.Compose(context.Background(), ComposeRequest{
		UserID: "user-1",
		Count:  5,
		Mode:   model.ModeResumeOnly,
	})
	if !errors.Is(err, ErrResumeQuestionsUnavailable) {
		t.Fatalf("err = %v, want ErrResumeQuestionsUnavailable", err)
	}
}

func TestComposeResumeOnlyUsesFallbackWhenGeneratorFails(t *testing.T) {
	resume := &fakeResumeService{text: "resume", hints: []string{"python", "docker"}}
	source := newSource(nil, resume, &fakeGenerator{err: errors.New("upstream down")})

	composition, err := source.Compose(context.Background(), ComposeRequest{
		UserID: "user-1",
		Count:  4,
		Mode:   model.ModeResumeOnly,
	})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if len(composition.Generated) == 0 {
		t.Fatal("expected fallback questions, got none")
	}
	for ref, q := range composition.Generated {
		if !ref.IsGenerated() {
			t.Errorf("ref %s not marked generated", ref)
		}
		if q.TimeLimitSeconds == nil {
			t.Errorf("generated question %q missing time limit in timed mode", q.QuestionText)
		}
	}
}

func TestComposeEmptyBank(t *testing.T) {
	source := newSource(nil, &fakeResumeService{}, &fakeGenerator{})

	_, err := source.Compose(context.Background(), ComposeRequest{
		UserID: "user-1",
		Count:  10,
		Mode:   model.ModePractice,
	})
	if !errors.Is(err, ErrNoQuestionsAvailable) {
		t.Fatalf("err = %v, want ErrNoQuestionsAvailable", err)
	}
}

func TestComposeExcludesCategories(t *testing.T) {
	bank := seedBank(10)
	bank = append(bank, approvedQuestion("verbal-1", model.CategoryVerbal))
	source := newSource(bank, &fakeResumeService{}, &fakeGenerator{})

	composition, err := source.Compose(context.Background(), ComposeRequest{
		UserID:            "user-1",
		Count:             11,
		Mode:              model.ModePractice,
		ExcludeCategories: []model.AptitudeCategory{model.CategoryVerbal},
	})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	for _, q := range composition.Bank {
		if q.Category == model.CategoryVerbal {
			t.Fatalf("excluded category %s present in composition", q.Category)
		}
	}
}

func TestBuildFallbackSkillQuestions(t *testing.T) {
	questions := buildFallbackSkillQuestions([]string{"Python"}, 2)
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	for _, q := range questions {
		if q.CorrectOption == "" || len(q.Options) < 2 {
			t.Errorf("malformed fallback question: %+v", q)
		}
	}

	if got := buildFallbackSkillQuestions([]string{"underwater basket weaving"}, 2); len(got) != 0 {
		t.Errorf("unknown skill produced %d questions, want 0", len(got))
	}
}
