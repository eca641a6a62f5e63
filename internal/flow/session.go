package flow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abiral/quizforge/internal/attempt"
	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/quiz"
)

// Phase is where the session currently is in its lifecycle.
type Phase int

const (
	// PhaseIdle means no quiz is loaded.
	PhaseIdle Phase = iota
	// PhaseGenerating means a quiz request is in flight.
	PhaseGenerating
	// PhaseTaking means the user is answering questions.
	PhaseTaking
	// PhaseSubmitting means a grading request is in flight.
	PhaseSubmitting
	// PhaseResults means a graded result is available.
	PhaseResults
	// PhaseError means the last transition failed. Recover returns the
	// session to the phase it failed from.
	PhaseError
)

// String returns the phase name for logs and status lines.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseTaking:
		return "taking"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResults:
		return "results"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrBusy is returned when a request of the same kind is already in flight.
var ErrBusy = errors.New("request already in flight")

// ErrWrongPhase is returned when an operation is not valid in the current
// phase.
var ErrWrongPhase = errors.New("operation not valid in current phase")

// Session drives one quiz attempt from topic entry through results. It is
// not safe for concurrent use: Begin and Complete calls are made from the
// UI event loop, with the slow work happening in commands between them.
//
// Every Begin call issues a fresh token, and Complete calls carrying any
// other token are dropped. A completion from an abandoned attempt can never
// overwrite the current one.
type Session struct {
	phase      Phase
	failedFrom Phase
	err        error

	quiz      *quiz.Quiz
	ledger    *attempt.Ledger
	navigator *attempt.Navigator
	result    *quiz.GradedResult
	feedback  *feedback.Result

	genToken      string
	submitToken   string
	feedbackToken string
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Err returns the failure that moved the session into PhaseError, or nil.
func (s *Session) Err() error {
	return s.err
}

// Quiz returns the loaded quiz, or nil before generation completes.
func (s *Session) Quiz() *quiz.Quiz {
	return s.quiz
}

// Ledger returns the answer ledger for the active attempt.
func (s *Session) Ledger() *attempt.Ledger {
	return s.ledger
}

// Navigator returns the question navigator for the active attempt.
func (s *Session) Navigator() *attempt.Navigator {
	return s.navigator
}

// Result returns the graded result, or nil before submission completes.
func (s *Session) Result() *quiz.GradedResult {
	return s.result
}

// Feedback returns the feedback result, or nil if none has been fetched.
func (s *Session) Feedback() *feedback.Result {
	return s.feedback
}

// FeedbackPending reports whether a feedback request is in flight.
func (s *Session) FeedbackPending() bool {
	return s.feedbackToken != ""
}

// BeginGeneration moves the session into PhaseGenerating and returns the
// token the eventual CompleteGeneration call must carry. Valid from idle,
// results, or a generation error; a second call while one is in flight
// returns ErrBusy.
func (s *Session) BeginGeneration() (string, error) {
	switch s.phase {
	case PhaseGenerating:
		return "", ErrBusy
	case PhaseIdle, PhaseResults:
	case PhaseError:
		if s.failedFrom != PhaseGenerating {
			return "", ErrWrongPhase
		}
	default:
		return "", ErrWrongPhase
	}

	s.reset()
	s.phase = PhaseGenerating
	s.genToken = uuid.NewString()
	return s.genToken, nil
}

// CompleteGeneration delivers the outcome of a generation request. Returns
// false when the token does not match the active request, in which case the
// session is untouched.
func (s *Session) CompleteGeneration(token string, q *quiz.Quiz, err error) bool {
	if token == "" || token != s.genToken {
		return false
	}
	s.genToken = ""

	if err != nil {
		s.fail(PhaseGenerating, err)
		return true
	}

	s.quiz = q
	s.ledger = attempt.NewLedger()
	s.navigator = attempt.NewNavigator(q.Questions, s.ledger)
	s.phase = PhaseTaking
	s.err = nil
	return true
}

// LoadQuiz starts an attempt on an already generated quiz, skipping the
// generation phase. Used when resuming a saved quiz.
func (s *Session) LoadQuiz(q *quiz.Quiz) error {
	switch s.phase {
	case PhaseGenerating, PhaseSubmitting:
		return ErrBusy
	}

	s.reset()
	s.quiz = q
	s.ledger = attempt.NewLedger()
	s.navigator = attempt.NewNavigator(q.Questions, s.ledger)
	s.phase = PhaseTaking
	return nil
}

// BeginSubmission builds the ordered submission and moves the session into
// PhaseSubmitting. The ledger must be complete.
func (s *Session) BeginSubmission() (string, []quiz.AnswerBinding, error) {
	switch s.phase {
	case PhaseSubmitting:
		return "", nil, ErrBusy
	case PhaseTaking:
	case PhaseError:
		if s.failedFrom != PhaseSubmitting {
			return "", nil, ErrWrongPhase
		}
	default:
		return "", nil, ErrWrongPhase
	}

	answers, err := attempt.BuildSubmission(s.quiz, s.ledger)
	if err != nil {
		return "", nil, err
	}

	s.phase = PhaseSubmitting
	s.err = nil
	s.submitToken = uuid.NewString()
	return s.submitToken, answers, nil
}

// CompleteSubmission delivers the outcome of a grading request. Returns
// false when the token does not match the active request.
func (s *Session) CompleteSubmission(token string, result *quiz.GradedResult, err error) bool {
	if token == "" || token != s.submitToken {
		return false
	}
	s.submitToken = ""

	if err != nil {
		s.fail(PhaseSubmitting, err)
		return true
	}

	s.result = result
	s.phase = PhaseResults
	s.err = nil
	return true
}

// BeginFeedback starts a feedback request for the graded result. Only one
// may be in flight, and once feedback is held no further requests are made.
func (s *Session) BeginFeedback() (string, *quiz.GradedResult, error) {
	if s.phase != PhaseResults {
		return "", nil, ErrWrongPhase
	}
	if s.feedbackToken != "" {
		return "", nil, ErrBusy
	}
	if s.feedback != nil {
		return "", nil, ErrWrongPhase
	}

	s.feedbackToken = uuid.NewString()
	return s.feedbackToken, s.result, nil
}

// CompleteFeedback delivers the outcome of a feedback request. Failures do
// not leave PhaseResults: the results screen simply shows no feedback.
func (s *Session) CompleteFeedback(token string, res *feedback.Result, err error) bool {
	if token == "" || token != s.feedbackToken {
		return false
	}
	s.feedbackToken = ""

	if err != nil {
		return true
	}
	s.feedback = res
	return true
}

// Recover leaves PhaseError. A failed generation returns to idle, a failed
// submission returns to taking with all answers intact.
func (s *Session) Recover() error {
	if s.phase != PhaseError {
		return ErrWrongPhase
	}

	switch s.failedFrom {
	case PhaseSubmitting:
		s.phase = PhaseTaking
	default:
		s.reset()
	}
	s.err = nil
	s.failedFrom = PhaseIdle
	return nil
}

// Abandon discards the attempt and returns the session to idle, dropping
// any in-flight request.
func (s *Session) Abandon() {
	s.reset()
}

func (s *Session) fail(from Phase, err error) {
	s.phase = PhaseError
	s.failedFrom = from
	s.err = err
}

func (s *Session) reset() {
	s.phase = PhaseIdle
	s.failedFrom = PhaseIdle
	s.err = nil
	s.quiz = nil
	s.ledger = nil
	s.navigator = nil
	s.result = nil
	s.feedback = nil
	s.genToken = ""
	s.submitToken = ""
	s.feedbackToken = ""
}
