package domain

import "errors"

var (
	// ErrQuizNotFound indicates the referenced quiz id has no stored record.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidQuiz is returned when a quiz is missing required fields (title, description).
	ErrInvalidQuiz = errors.New("quiz requires a title and a description")
	// ErrStoreUnavailable wraps transient document-store failures; callers may retry, the engine does not.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrAtomicityUnsupported is returned when the store cannot apply a batch all-or-nothing.
	ErrAtomicityUnsupported = errors.New("store cannot guarantee atomic batches")

	// ErrSessionCompleted is returned for any mutation on a finished play session.
	ErrSessionCompleted = errors.New("session already completed")
	// ErrAnswerRequired is returned by Next when the current question has no recorded answer.
	ErrAnswerRequired = errors.New("current question must be answered first")
	// ErrAtFirstQuestion is returned by Previous at index zero.
	ErrAtFirstQuestion = errors.New("already at the first question")
	// ErrQuestionNotCurrent is returned when an answer targets a question other than the current one.
	ErrQuestionNotCurrent = errors.New("question is not the current question")
	// ErrChoiceNotFound indicates a selected choice id is not among the question's choices.
	ErrChoiceNotFound = errors.New("choice not found")
	// ErrNoQuestions is returned when navigation is attempted on a quiz with no questions.
	ErrNoQuestions = errors.New("quiz has no questions")
)
