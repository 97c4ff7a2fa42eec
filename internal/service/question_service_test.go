package service

import (
	"errors"
	"testing"

	"github.com/placeprep/backend/internal/dto"
	"github.com/placeprep/backend/internal/model"
)

func validCreateRequest() dto.CreateQuestionRequest {
	return dto.CreateQuestionRequest{
		Category:      "QUANTITATIVE",
		Difficulty:    "MEDIUM",
		QuestionText:  "What is 6 x 7?",
		Options:       map[string]string{"A": "42", "B": "36", "C": "48", "D": "40"},
		CorrectOption: "A",
	}
}

func TestCreateQuestionStartsPending(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)

	resp, err := svc.CreateQuestion(validCreateRequest(), nil)
	if err != nil {
		t.Fatalf("CreateQuestion returned error: %v", err)
	}
	if resp.ApprovalStatus != string(model.ApprovalPending) {
		t.Errorf("approval status = %s, want PENDING", resp.ApprovalStatus)
	}
	if resp.Marks != 1 {
		t.Errorf("marks = %d, want default 1", resp.Marks)
	}
	if resp.VersionNumber != 1 {
		t.Errorf("version = %d, want 1", resp.VersionNumber)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo())

	tests := []struct {
		name   string
		mutate func(*dto.CreateQuestionRequest)
	}{
		{
			name: "correct option not among options",
			mutate: func(r *dto.CreateQuestionRequest) {
				r.CorrectOption = "D"
				r.Options = map[string]string{"A": "1", "B": "2"}
			},
		},
		{
			name: "single option",
			mutate: func(r *dto.CreateQuestionRequest) {
				r.Options = map[string]string{"A": "42"}
			},
		},
		{
			name: "blank option text",
			mutate: func(r *dto.CreateQuestionRequest) {
				r.Options = map[string]string{"A": "42", "B": "  "}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			if _, err := svc.CreateQuestion(req, nil); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateQuestionBumpsVersionAndResetsApproval(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)
	created, err := svc.CreateQuestion(validCreateRequest(), nil)
	if err != nil {
		t.Fatalf("CreateQuestion returned error: %v", err)
	}

	// Approve, then edit.
	if _, err := svc.ReviewQuestion(created.ID, dto.ReviewQuestionRequest{ReviewerID: "admin-1", Approve: true}); err != nil {
		t.Fatalf("ReviewQuestion returned error: %v", err)
	}
	text := "What is 7 x 8?"
	updated, err := svc.UpdateQuestion(created.ID, dto.UpdateQuestionRequest{QuestionText: &text})
	if err != nil {
		t.Fatalf("UpdateQuestion returned error: %v", err)
	}

	if updated.VersionNumber != 2 {
		t.Errorf("version = %d, want 2", updated.VersionNumber)
	}
	if updated.ApprovalStatus != string(model.ApprovalPending) {
		t.Errorf("approval status = %s, want PENDING after edit", updated.ApprovalStatus)
	}
	if updated.QuestionText != text {
		t.Errorf("question text = %q, want %q", updated.QuestionText, text)
	}
}

func TestReviewQuestion(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)
	created, _ := svc.CreateQuestion(validCreateRequest(), nil)

	rejected, err := svc.ReviewQuestion(created.ID, dto.ReviewQuestionRequest{ReviewerID: "admin-1", Approve: false})
	if err != nil {
		t.Fatalf("ReviewQuestion returned error: %v", err)
	}
	if rejected.ApprovalStatus != string(model.ApprovalRejected) {
		t.Errorf("approval status = %s, want REJECTED", rejected.ApprovalStatus)
	}

	if _, err := svc.ReviewQuestion("missing", dto.ReviewQuestionRequest{ReviewerID: "admin-1", Approve: true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteQuestionRetiresFromComposition(t *testing.T) {
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)
	created, _ := svc.CreateQuestion(validCreateRequest(), nil)
	if _, err := svc.ReviewQuestion(created.ID, dto.ReviewQuestionRequest{ReviewerID: "admin-1", Approve: true}); err != nil {
		t.Fatalf("ReviewQuestion returned error: %v", err)
	}

	if err := svc.DeleteQuestion(created.ID); err != nil {
		t.Fatalf("DeleteQuestion returned error: %v", err)
	}

	approved, err := repo.ListApproved(nil, nil, 10)
	if err != nil {
		t.Fatalf("ListApproved returned error: %v", err)
	}
	if len(approved) != 0 {
		t.Errorf("retired question still approved for composition: %d rows", len(approved))
	}
}
