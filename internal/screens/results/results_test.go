package results

import (
	"strings"
	"testing"
	"time"

	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/flow"
	"github.com/abiral/quizforge/internal/quiz"
)

// resultsSession drives a two-question quiz to PhaseResults with the first
// question missed.
func resultsSession(t *testing.T) *flow.Session {
	t.Helper()

	q := &quiz.Quiz{ID: 1, Topic: "Astronomy", CreatedAt: time.Now()}
	for i := 0; i < 2; i++ {
		question := quiz.Question{
			ID:    int64(i + 1),
			Text:  "Which planet is closest to the sun?",
			Order: i,
		}
		for j, letter := range quiz.OptionLetters {
			question.Options = append(question.Options, quiz.Option{
				ID:      int64(i*10 + j + 1),
				Text:    "Mercury",
				Letter:  letter,
				Correct: j == 0,
			})
		}
		q.Questions = append(q.Questions, question)
	}

	session := flow.NewSession()
	if err := session.LoadQuiz(q); err != nil {
		t.Fatalf("LoadQuiz: %v", err)
	}
	session.Ledger().Select(1, 2) // wrong
	session.Ledger().Select(2, 11)

	token, _, err := session.BeginSubmission()
	if err != nil {
		t.Fatalf("BeginSubmission: %v", err)
	}
	result := &quiz.GradedResult{
		QuizID:         1,
		Topic:          "Astronomy",
		Score:          1,
		TotalQuestions: 2,
		Percentage:     50,
		Review: []quiz.ReviewItem{
			{QuestionID: 1, QuestionText: "Which planet is closest to the sun?",
				UserLabel: "B", UserText: "Venus", CorrectLabel: "A", CorrectText: "Mercury"},
			{QuestionID: 2, QuestionText: "Which planet is closest to the sun?",
				UserLabel: "A", UserText: "Mercury", CorrectLabel: "A", CorrectText: "Mercury", Correct: true},
		},
	}
	if !session.CompleteSubmission(token, result, nil) {
		t.Fatal("CompleteSubmission dropped the result")
	}
	return session
}

func deliverFeedback(t *testing.T, session *flow.Session, res *feedback.Result) {
	t.Helper()
	token, _, err := session.BeginFeedback()
	if err != nil {
		t.Fatalf("BeginFeedback: %v", err)
	}
	if !session.CompleteFeedback(token, res, nil) {
		t.Fatal("CompleteFeedback dropped the result")
	}
}

func TestResultsScreen_View_FallbackNotice(t *testing.T) {
	session := resultsSession(t)
	deliverFeedback(t, session, &feedback.Result{
		Items:    []quiz.FeedbackItem{{QuestionID: 1, Explanation: "You chose B. Venus. The correct answer is A. Mercury."}},
		Fallback: true,
	})

	r := New(session, nil, nil)
	view := r.View(100, 40)
	if !strings.Contains(view, "quick recaps") {
		t.Error("expected the fallback notice in the view")
	}
}

func TestResultsScreen_View_NoNoticeForRealExplanations(t *testing.T) {
	session := resultsSession(t)
	deliverFeedback(t, session, &feedback.Result{
		Items: []quiz.FeedbackItem{{QuestionID: 1, Explanation: "Mercury orbits closest to the sun."}},
	})

	r := New(session, nil, nil)
	view := r.View(100, 40)
	if strings.Contains(view, "quick recaps") {
		t.Error("did not expect the fallback notice")
	}
	if !strings.Contains(view, "Mercury orbits closest to the sun.") {
		t.Error("expected the explanation in the view")
	}
}

func TestResultsScreen_View_Score(t *testing.T) {
	session := resultsSession(t)

	r := New(session, nil, nil)
	view := r.View(100, 40)
	if !strings.Contains(view, "1 / 2") {
		t.Error("expected the score banner in the view")
	}
}
