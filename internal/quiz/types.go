package quiz

import "time"

// OptionLetters are the allowed option labels, in display order.
var OptionLetters = []string{"A", "B", "C", "D"}

// OptionsPerQuestion is the required number of options on every question.
const OptionsPerQuestion = 4

// QuestionsPerQuiz is the number of questions a generated quiz must contain.
const QuestionsPerQuiz = 5

// Quiz is an AI-generated multiple-choice quiz. Immutable once generated.
type Quiz struct {
	ID        int64
	Topic     string
	CreatedAt time.Time

	// Questions are held in canonical order (ascending Order index).
	Questions []Question
}

// Question is a single multiple-choice question.
type Question struct {
	ID    int64
	Text  string
	Order int

	// Options holds exactly 4 entries with unique letters A-D,
	// exactly one of which is correct.
	Options []Option

	// Explanation is the generator's note on why the correct answer is
	// correct. Shown on the results screen.
	Explanation string
}

// Option is one answer choice on a question.
type Option struct {
	ID      int64
	Text    string
	Letter  string
	Correct bool
}

// AnswerBinding pairs a question with the option the user selected.
type AnswerBinding struct {
	QuestionID int64
	OptionID   int64
}

// ReviewItem describes the outcome of a single question after grading.
type ReviewItem struct {
	QuestionID   int64
	QuestionText string
	UserLabel    string
	UserText     string
	CorrectLabel string
	CorrectText  string
	Correct      bool
}

// GradedResult is the outcome of one submission. Immutable once produced.
type GradedResult struct {
	QuizID         int64
	Topic          string
	Score          int
	TotalQuestions int
	Percentage     float64
	Review         []ReviewItem
}

// FeedbackItem is a natural-language explanation for one missed question.
type FeedbackItem struct {
	QuestionID  int64  `json:"question_id"`
	Explanation string `json:"explanation"`
}

// Summary identifies a previously generated quiz in the saved registry.
type Summary struct {
	ID        int64
	Topic     string
	CreatedAt time.Time
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(id int64) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}

// OptionByID returns the option with the given id, or nil.
func (q *Question) OptionByID(id int64) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectOption returns the option flagged correct, or nil if the question
// is malformed.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].Correct {
			return &q.Options[i]
		}
	}
	return nil
}

// IncorrectQuestionIDs extracts the ids of questions the user missed,
// in review order.
func (r *GradedResult) IncorrectQuestionIDs() []int64 {
	var ids []int64
	for _, item := range r.Review {
		if !item.Correct {
			ids = append(ids, item.QuestionID)
		}
	}
	return ids
}
