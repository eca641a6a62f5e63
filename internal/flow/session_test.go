package flow

import (
	"errors"
	"testing"

	"github.com/abiral/quizforge/internal/attempt"
	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/quiz"
)

func sessionQuiz() *quiz.Quiz {
	q := &quiz.Quiz{ID: 1, Topic: "planets"}
	for i := 0; i < 3; i++ {
		question := quiz.Question{ID: int64(i + 1), Text: "q", Order: i}
		for j, letter := range quiz.OptionLetters {
			question.Options = append(question.Options, quiz.Option{
				ID:      int64(i*10 + j + 1),
				Text:    "o",
				Letter:  letter,
				Correct: j == 0,
			})
		}
		q.Questions = append(q.Questions, question)
	}
	return q
}

func answerAll(s *Session) {
	for _, question := range s.Quiz().Questions {
		s.Ledger().Select(question.ID, question.Options[0].ID)
	}
}

func TestSessionFullLifecycle(t *testing.T) {
	s := NewSession()
	if s.Phase() != PhaseIdle {
		t.Fatalf("expected idle, got %s", s.Phase())
	}

	token, err := s.BeginGeneration()
	if err != nil {
		t.Fatalf("begin generation: %v", err)
	}
	if s.Phase() != PhaseGenerating {
		t.Fatalf("expected generating, got %s", s.Phase())
	}

	if !s.CompleteGeneration(token, sessionQuiz(), nil) {
		t.Fatal("expected completion to be accepted")
	}
	if s.Phase() != PhaseTaking {
		t.Fatalf("expected taking, got %s", s.Phase())
	}
	if s.Navigator() == nil || s.Ledger() == nil {
		t.Fatal("expected navigator and ledger after generation")
	}

	answerAll(s)
	if !s.Navigator().ReadyToSubmit() {
		t.Fatal("expected ready to submit with complete ledger")
	}

	subToken, answers, err := s.BeginSubmission()
	if err != nil {
		t.Fatalf("begin submission: %v", err)
	}
	if len(answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(answers))
	}
	if s.Phase() != PhaseSubmitting {
		t.Fatalf("expected submitting, got %s", s.Phase())
	}

	result := &quiz.GradedResult{QuizID: 1, Score: 3, TotalQuestions: 3, Percentage: 100}
	if !s.CompleteSubmission(subToken, result, nil) {
		t.Fatal("expected completion to be accepted")
	}
	if s.Phase() != PhaseResults {
		t.Fatalf("expected results, got %s", s.Phase())
	}
	if s.Result() != result {
		t.Error("expected graded result held by session")
	}
}

func TestSessionGenerationOneInFlight(t *testing.T) {
	s := NewSession()
	if _, err := s.BeginGeneration(); err != nil {
		t.Fatalf("begin generation: %v", err)
	}
	if _, err := s.BeginGeneration(); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
}

func TestSessionStaleGenerationDropped(t *testing.T) {
	s := NewSession()
	first, err := s.BeginGeneration()
	if err != nil {
		t.Fatalf("begin generation: %v", err)
	}

	// The user abandons the first attempt and starts over.
	s.Abandon()
	second, err := s.BeginGeneration()
	if err != nil {
		t.Fatalf("second begin: %v", err)
	}

	// The first request completes late. It must be dropped.
	if s.CompleteGeneration(first, sessionQuiz(), nil) {
		t.Error("expected stale completion to be dropped")
	}
	if s.Phase() != PhaseGenerating {
		t.Errorf("expected still generating, got %s", s.Phase())
	}

	if !s.CompleteGeneration(second, sessionQuiz(), nil) {
		t.Error("expected live completion to be accepted")
	}
	if s.Phase() != PhaseTaking {
		t.Errorf("expected taking, got %s", s.Phase())
	}
}

func TestSessionGenerationFailureAndRecovery(t *testing.T) {
	s := NewSession()
	token, _ := s.BeginGeneration()

	genErr := errors.New("provider down")
	if !s.CompleteGeneration(token, nil, genErr) {
		t.Fatal("expected completion to be accepted")
	}
	if s.Phase() != PhaseError {
		t.Fatalf("expected error phase, got %s", s.Phase())
	}
	if !errors.Is(s.Err(), genErr) {
		t.Errorf("expected held error, got %v", s.Err())
	}

	// Retrying generation from the error state is allowed.
	if _, err := s.BeginGeneration(); err != nil {
		t.Errorf("expected retry allowed from generation error, got %v", err)
	}
}

func TestSessionSubmissionRequiresCompleteLedger(t *testing.T) {
	s := NewSession()
	token, _ := s.BeginGeneration()
	s.CompleteGeneration(token, sessionQuiz(), nil)

	// Answer only one question.
	s.Ledger().Select(1, 1)

	_, _, err := s.BeginSubmission()
	var pre *attempt.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if s.Phase() != PhaseTaking {
		t.Errorf("expected still taking, got %s", s.Phase())
	}
}

func TestSessionSubmissionFailureKeepsAnswers(t *testing.T) {
	s := NewSession()
	token, _ := s.BeginGeneration()
	s.CompleteGeneration(token, sessionQuiz(), nil)
	answerAll(s)

	subToken, _, err := s.BeginSubmission()
	if err != nil {
		t.Fatalf("begin submission: %v", err)
	}
	s.CompleteSubmission(subToken, nil, errors.New("store down"))
	if s.Phase() != PhaseError {
		t.Fatalf("expected error phase, got %s", s.Phase())
	}

	if err := s.Recover(); err != nil {
		t.Fatalf("recover: %v", err)
	}
	if s.Phase() != PhaseTaking {
		t.Fatalf("expected taking after recovery, got %s", s.Phase())
	}
	if s.Ledger().AnsweredCount() != 3 {
		t.Errorf("expected answers intact after recovery, got %d", s.Ledger().AnsweredCount())
	}

	// The retry can submit again.
	if _, _, err := s.BeginSubmission(); err != nil {
		t.Errorf("expected resubmission allowed, got %v", err)
	}
}

func TestSessionFeedbackOnce(t *testing.T) {
	s := NewSession()
	token, _ := s.BeginGeneration()
	s.CompleteGeneration(token, sessionQuiz(), nil)
	answerAll(s)
	subToken, _, _ := s.BeginSubmission()
	s.CompleteSubmission(subToken, &quiz.GradedResult{QuizID: 1, Score: 2, TotalQuestions: 3}, nil)

	fbToken, result, err := s.BeginFeedback()
	if err != nil {
		t.Fatalf("begin feedback: %v", err)
	}
	if result == nil {
		t.Fatal("expected graded result handed to feedback request")
	}

	// Only one in flight.
	if _, _, err := s.BeginFeedback(); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	res := &feedback.Result{Items: []quiz.FeedbackItem{{QuestionID: 2, Explanation: "x"}}}
	if !s.CompleteFeedback(fbToken, res, nil) {
		t.Fatal("expected completion to be accepted")
	}
	if s.Feedback() != res {
		t.Error("expected feedback held by session")
	}

	// Once held, no further requests are made.
	if _, _, err := s.BeginFeedback(); err == nil {
		t.Error("expected no second feedback request once feedback is held")
	}
}

func TestSessionLoadQuizSkipsGeneration(t *testing.T) {
	s := NewSession()
	if err := s.LoadQuiz(sessionQuiz()); err != nil {
		t.Fatalf("load quiz: %v", err)
	}
	if s.Phase() != PhaseTaking {
		t.Fatalf("expected taking, got %s", s.Phase())
	}
	if s.Navigator().Count() != 3 {
		t.Errorf("expected 3 questions, got %d", s.Navigator().Count())
	}
}

func TestSessionWrongPhaseOperations(t *testing.T) {
	s := NewSession()

	if _, _, err := s.BeginSubmission(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase for submission while idle, got %v", err)
	}
	if _, _, err := s.BeginFeedback(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase for feedback while idle, got %v", err)
	}
	if err := s.Recover(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase for recover while idle, got %v", err)
	}
}
