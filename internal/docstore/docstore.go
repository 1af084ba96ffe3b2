// Package docstore defines the document-store port the reconciliation engine
// writes through: one quiz record per quiz plus a child collection of question
// records, mutated only via all-or-nothing batches.
package docstore

import (
	"context"

	"quizcraft-service/internal/domain"
)

// QuizRecord is the stored quiz metadata document. QuestionCount mirrors the
// size of the child collection and is rewritten in the same batch as the children.
type QuizRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
}

// QuestionRecord is a child document, keyed by question id under its quiz.
type QuestionRecord struct {
	Text            string          `json:"text"`
	Choices         []domain.Choice `json:"choices"`
	CorrectChoiceID string          `json:"correctChoiceId"`
}

// OpKind discriminates batch operations.
type OpKind string

const (
	OpSet    OpKind = "set"
	OpDelete OpKind = "delete"
)

// Op is one write or delete inside a batch. QuestionID empty targets the quiz
// record itself; non-empty targets the child record with that id.
type Op struct {
	Kind       OpKind
	QuizID     string
	QuestionID string
	Quiz       *QuizRecord
	Question   *QuestionRecord
}

// SetQuiz builds an op that writes a quiz record.
func SetQuiz(rec QuizRecord) Op {
	return Op{Kind: OpSet, QuizID: rec.ID, Quiz: &rec}
}

// SetQuestion builds an op that upserts a child question record.
func SetQuestion(quizID, questionID string, rec QuestionRecord) Op {
	return Op{Kind: OpSet, QuizID: quizID, QuestionID: questionID, Question: &rec}
}

// DeleteQuiz builds an op that removes a quiz record.
func DeleteQuiz(quizID string) Op {
	return Op{Kind: OpDelete, QuizID: quizID}
}

// DeleteQuestion builds an op that removes a child question record.
func DeleteQuestion(quizID, questionID string) Op {
	return Op{Kind: OpDelete, QuizID: quizID, QuestionID: questionID}
}

// Store is the transactional document interface drivers implement.
//
// ApplyBatch must apply every op or none: drivers that cannot uphold this
// return domain.ErrAtomicityUnsupported rather than degrading silently.
// GetQuestionRecords makes no ordering promise; the map is keyed by question id.
type Store interface {
	GetQuizRecord(ctx context.Context, id string) (QuizRecord, error)
	ListQuizRecords(ctx context.Context) ([]QuizRecord, error)
	GetQuestionRecords(ctx context.Context, quizID string) (map[string]QuestionRecord, error)
	ApplyBatch(ctx context.Context, ops []Op) error
}
