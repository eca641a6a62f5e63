package quiz

import (
	"fmt"
	"strings"
)

// MaxTopicLength bounds the topic a user may request a quiz for.
const MaxTopicLength = 100

// blockedTopicWords is a crude content filter applied before any quiz is
// requested from the generator.
var blockedTopicWords = []string{"explicit", "nsfw", "adult", "violence"}

// ValidateTopic reports whether a topic is acceptable for quiz generation.
// Returns a user-facing reason when it is not.
func ValidateTopic(topic string) error {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return fmt.Errorf("topic must not be empty")
	}
	if len(topic) > MaxTopicLength {
		return fmt.Errorf("topic must be at most %d characters", MaxTopicLength)
	}
	lower := strings.ToLower(topic)
	for _, word := range blockedTopicWords {
		if strings.Contains(lower, word) {
			return fmt.Errorf("topic is not appropriate for quiz generation")
		}
	}
	return nil
}

// Validate checks the structural invariants on a quiz: the question count,
// per-question option letters, and the single-correct-option rule.
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Validate checks a single question: non-empty text, exactly 4 options with
// unique letters drawn from A-D, non-empty option text, and exactly one
// option flagged correct.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("has %d options, want %d", len(q.Options), OptionsPerQuestion)
	}

	seen := make(map[string]bool, OptionsPerQuestion)
	correct := 0
	for _, opt := range q.Options {
		if !validLetter(opt.Letter) {
			return fmt.Errorf("invalid option letter %q", opt.Letter)
		}
		if seen[opt.Letter] {
			return fmt.Errorf("duplicate option letter %q", opt.Letter)
		}
		seen[opt.Letter] = true
		if strings.TrimSpace(opt.Text) == "" {
			return fmt.Errorf("option %s has empty text", opt.Letter)
		}
		if opt.Correct {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("has %d correct options, want exactly 1", correct)
	}
	return nil
}

func validLetter(letter string) bool {
	for _, l := range OptionLetters {
		if l == letter {
			return true
		}
	}
	return false
}
