package attempt

import (
	"fmt"
	"sort"

	"github.com/abiral/quizforge/internal/quiz"
)

// PreconditionError indicates a caller invoked an operation without
// satisfying its contract (for example building a submission from an
// incomplete ledger). It is a programming error, not a user-facing one:
// UI gating is expected to prevent it.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated in %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// BuildSubmission converts a complete ledger into the ordered binding
// sequence for submission. Bindings are sorted by each question's declared
// order index, independent of the order the user answered in.
// Returns a PreconditionError when the ledger is incomplete; callers must
// check IsComplete first.
func BuildSubmission(q *quiz.Quiz, ledger *Ledger) ([]quiz.AnswerBinding, error) {
	if !ledger.IsComplete(len(q.Questions)) {
		return nil, &PreconditionError{
			Op:  "BuildSubmission",
			Err: fmt.Errorf("ledger has %d of %d answers", ledger.AnsweredCount(), len(q.Questions)),
		}
	}

	questions := make([]quiz.Question, len(q.Questions))
	copy(questions, q.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	out := make([]quiz.AnswerBinding, 0, len(questions))
	for _, question := range questions {
		optionID, ok := ledger.Get(question.ID)
		if !ok {
			// Complete ledger with a missing binding means the ledger was
			// built against a different quiz.
			return nil, &PreconditionError{
				Op:  "BuildSubmission",
				Err: fmt.Errorf("no binding for question %d", question.ID),
			}
		}
		out = append(out, quiz.AnswerBinding{QuestionID: question.ID, OptionID: optionID})
	}
	return out, nil
}
