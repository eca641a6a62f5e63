// Package attempt holds the state of a single quiz attempt: the answer
// ledger, the question navigator, and the submission builder.
package attempt

// Ledger records the user's current option selection per question.
// Selecting a new option for an already-answered question replaces the
// previous binding. All operations are total.
type Ledger struct {
	bindings map[int64]int64 // question id → selected option id
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{bindings: make(map[int64]int64)}
}

// Select inserts or overwrites the binding for questionID.
func (l *Ledger) Select(questionID, optionID int64) {
	l.bindings[questionID] = optionID
}

// Get returns the current binding for questionID. ok is false when the
// question has not been answered.
func (l *Ledger) Get(questionID int64) (optionID int64, ok bool) {
	optionID, ok = l.bindings[questionID]
	return optionID, ok
}

// AnsweredCount returns the number of distinct questions with a binding.
func (l *Ledger) AnsweredCount() int {
	return len(l.bindings)
}

// IsComplete reports whether every one of totalQuestions questions has a
// binding. Vacuously true for totalQuestions == 0.
func (l *Ledger) IsComplete(totalQuestions int) bool {
	return l.AnsweredCount() == totalQuestions
}
