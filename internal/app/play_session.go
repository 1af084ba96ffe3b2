package app

import (
	"sync"

	"quizcraft-service/internal/domain"
)

// PlaySession drives a single play-through of one loaded quiz: linear
// navigation, one immutable answer per question, score computed when the last
// question is passed. Sessions live in memory only and are never persisted;
// two sessions over the same quiz do not observe each other.
type PlaySession struct {
	mu        sync.Mutex
	quiz      domain.Quiz
	current   int
	answers   map[string]string
	completed bool
	score     int
}

// NewPlaySession starts a session at the first question.
func NewPlaySession(quiz domain.Quiz) *PlaySession {
	return &PlaySession{
		quiz:    quiz,
		answers: make(map[string]string),
	}
}

// SelectChoice records choiceID as the answer to the current question.
// An already-answered question keeps its first answer; re-selecting is a no-op.
func (s *PlaySession) SelectChoice(questionID, choiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.ErrSessionCompleted
	}
	if len(s.quiz.Questions) == 0 {
		return domain.ErrNoQuestions
	}
	question := s.quiz.Questions[s.current]
	if question.ID != questionID {
		return domain.ErrQuestionNotCurrent
	}
	if !hasChoice(question, choiceID) {
		return domain.ErrChoiceNotFound
	}
	if _, answered := s.answers[questionID]; answered {
		return nil
	}
	s.answers[questionID] = choiceID
	return nil
}

// Next advances past an answered question, or completes the session when the
// current question is the last one. Unanswered questions cannot be skipped.
func (s *PlaySession) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.ErrSessionCompleted
	}
	if len(s.quiz.Questions) == 0 {
		return domain.ErrNoQuestions
	}
	if _, answered := s.answers[s.quiz.Questions[s.current].ID]; !answered {
		return domain.ErrAnswerRequired
	}
	if s.current == len(s.quiz.Questions)-1 {
		s.score = s.scoreLocked()
		s.completed = true
		return nil
	}
	s.current++
	return nil
}

// Previous steps back one question. Answers already recorded are kept.
func (s *PlaySession) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.ErrSessionCompleted
	}
	if len(s.quiz.Questions) == 0 {
		return domain.ErrNoQuestions
	}
	if s.current == 0 {
		return domain.ErrAtFirstQuestion
	}
	s.current--
	return nil
}

// CurrentQuestion returns the question under the cursor, or false once the
// session has completed or when the quiz has no questions.
func (s *PlaySession) CurrentQuestion() (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed || len(s.quiz.Questions) == 0 {
		return domain.Question{}, false
	}
	return s.quiz.Questions[s.current], true
}

// IsAnswered reports whether questionID has a recorded answer.
func (s *PlaySession) IsAnswered(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, answered := s.answers[questionID]
	return answered
}

// Answer returns the recorded answer for questionID, if any.
func (s *PlaySession) Answer(questionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	choiceID, ok := s.answers[questionID]
	return choiceID, ok
}

// Result returns (score, total) once the session is completed; ok is false
// while it is still in progress. A zero-question quiz reports a vacuous 0 of 0.
func (s *PlaySession) Result() (score, total int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.completed && len(s.quiz.Questions) > 0 {
		return 0, 0, false
	}
	return s.score, len(s.quiz.Questions), true
}

// Progress reports the zero-based cursor position and the question total.
func (s *PlaySession) Progress() (index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, len(s.quiz.Questions)
}

// HasQuestions reports whether there is anything to play.
func (s *PlaySession) HasQuestions() bool {
	return len(s.quiz.Questions) > 0
}

// scoreLocked counts questions whose recorded answer equals the designated
// correct choice. Unanswered questions and dangling correctChoiceIds never score.
func (s *PlaySession) scoreLocked() int {
	correct := 0
	for _, q := range s.quiz.Questions {
		if choiceID, ok := s.answers[q.ID]; ok && choiceID == q.CorrectChoiceID {
			correct++
		}
	}
	return correct
}

func hasChoice(q domain.Question, choiceID string) bool {
	for _, c := range q.Choices {
		if c.ID == choiceID {
			return true
		}
	}
	return false
}
