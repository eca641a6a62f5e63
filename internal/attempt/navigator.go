package attempt

import "github.com/abiral/quizforge/internal/quiz"

// Navigator tracks the active question index and enforces movement rules.
// The index is always within [0, len(questions)-1].
type Navigator struct {
	questions []quiz.Question
	ledger    *Ledger
	index     int
}

// NewNavigator creates a navigator positioned on the first question.
// The questions slice must be in canonical order.
func NewNavigator(questions []quiz.Question, ledger *Ledger) *Navigator {
	return &Navigator{questions: questions, ledger: ledger}
}

// Index returns the current 0-based question index.
func (n *Navigator) Index() int {
	return n.index
}

// Current returns the question at the current index, or nil for an empty
// quiz.
func (n *Navigator) Current() *quiz.Question {
	if len(n.questions) == 0 {
		return nil
	}
	return &n.questions[n.index]
}

// Count returns the total number of questions.
func (n *Navigator) Count() int {
	return len(n.questions)
}

// AtLast reports whether the current index is the final question.
func (n *Navigator) AtLast() bool {
	return len(n.questions) > 0 && n.index == len(n.questions)-1
}

// CanNext reports whether Next would advance: the current question must be
// answered and there must be a question after it.
func (n *Navigator) CanNext() bool {
	cur := n.Current()
	if cur == nil || n.AtLast() {
		return false
	}
	_, answered := n.ledger.Get(cur.ID)
	return answered
}

// Next advances to the following question. No-op when the current question
// is unanswered or already the last. Returns whether the index moved.
func (n *Navigator) Next() bool {
	if !n.CanNext() {
		return false
	}
	n.index++
	return true
}

// Previous moves back one question. No-op at index 0. Returns whether the
// index moved.
func (n *Navigator) Previous() bool {
	if n.index == 0 {
		return false
	}
	n.index--
	return true
}

// JumpTo moves directly to the given index regardless of answered state,
// so earlier questions can be revisited. Out-of-range indices are ignored.
// Returns whether the index moved.
func (n *Navigator) JumpTo(index int) bool {
	if index < 0 || index >= len(n.questions) || index == n.index {
		return false
	}
	n.index = index
	return true
}

// ReadyToSubmit reports whether the attempt may be submitted: every
// question must be answered. Position does not gate submission since the
// user may revisit earlier questions after reaching the end.
func (n *Navigator) ReadyToSubmit() bool {
	return n.ledger.IsComplete(len(n.questions))
}
