package attempt

import (
	"errors"
	"testing"

	"github.com/abiral/quizforge/internal/quiz"
)

func TestBuildSubmissionOrdersByQuestionOrder(t *testing.T) {
	// Storage order deliberately disagrees with the declared order index.
	q := &quiz.Quiz{
		ID: 1,
		Questions: []quiz.Question{
			{ID: 1, Order: 2},
			{ID: 2, Order: 1},
		},
	}

	ledger := NewLedger()
	// Answered id=1 first, id=2 second: insertion order must not matter.
	ledger.Select(1, 100)
	ledger.Select(2, 200)

	bindings, err := BuildSubmission(q, ledger)
	if err != nil {
		t.Fatalf("BuildSubmission: %v", err)
	}

	if len(bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(bindings))
	}
	if bindings[0].QuestionID != 2 {
		t.Errorf("bindings[0].QuestionID = %d, want 2 (order index 1)", bindings[0].QuestionID)
	}
	if bindings[1].QuestionID != 1 {
		t.Errorf("bindings[1].QuestionID = %d, want 1 (order index 2)", bindings[1].QuestionID)
	}
}

func TestBuildSubmissionIncompleteLedger(t *testing.T) {
	q := &quiz.Quiz{
		ID: 1,
		Questions: []quiz.Question{
			{ID: 1, Order: 1},
			{ID: 2, Order: 2},
		},
	}
	ledger := NewLedger()
	ledger.Select(1, 100)

	_, err := BuildSubmission(q, ledger)
	if err == nil {
		t.Fatal("expected error for incomplete ledger")
	}
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Errorf("error = %T, want *PreconditionError", err)
	}
}

func TestBuildSubmissionReflectsFinalSelections(t *testing.T) {
	q := &quiz.Quiz{
		ID: 1,
		Questions: []quiz.Question{
			{ID: 1, Order: 1},
			{ID: 2, Order: 2},
		},
	}
	ledger := NewLedger()
	ledger.Select(1, 100)
	ledger.Select(2, 200)
	ledger.Select(1, 101) // changed mind on question 1

	bindings, err := BuildSubmission(q, ledger)
	if err != nil {
		t.Fatalf("BuildSubmission: %v", err)
	}
	if bindings[0].OptionID != 101 {
		t.Errorf("bindings[0].OptionID = %d, want final selection 101", bindings[0].OptionID)
	}
}
