package memory

import (
	"context"
	"sync"

	"quizcraft-service/internal/docstore"
	"quizcraft-service/internal/domain"
)

// Store is an in-memory implementation of docstore.Store, the default driver
// when no redis or postgres is configured and the unit-test backend.
// A batch is applied under one lock, so it is trivially all-or-nothing.
type Store struct {
	mu        sync.RWMutex
	quizzes   map[string]docstore.QuizRecord
	questions map[string]map[string]docstore.QuestionRecord
}

func NewStore() *Store {
	return &Store{
		quizzes:   make(map[string]docstore.QuizRecord),
		questions: make(map[string]map[string]docstore.QuestionRecord),
	}
}

func (s *Store) GetQuizRecord(_ context.Context, id string) (docstore.QuizRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.quizzes[id]
	if !ok {
		return docstore.QuizRecord{}, domain.ErrQuizNotFound
	}
	return rec, nil
}

func (s *Store) ListQuizRecords(_ context.Context) ([]docstore.QuizRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]docstore.QuizRecord, 0, len(s.quizzes))
	for _, rec := range s.quizzes {
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) GetQuestionRecords(_ context.Context, quizID string) (map[string]docstore.QuestionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	children := make(map[string]docstore.QuestionRecord, len(s.questions[quizID]))
	for id, rec := range s.questions[quizID] {
		children[id] = rec
	}
	return children, nil
}

func (s *Store) ApplyBatch(_ context.Context, ops []docstore.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		switch {
		case op.Kind == docstore.OpSet && op.QuestionID == "":
			s.quizzes[op.QuizID] = *op.Quiz
		case op.Kind == docstore.OpSet:
			if s.questions[op.QuizID] == nil {
				s.questions[op.QuizID] = make(map[string]docstore.QuestionRecord)
			}
			s.questions[op.QuizID][op.QuestionID] = *op.Question
		case op.QuestionID == "":
			delete(s.quizzes, op.QuizID)
			if children, ok := s.questions[op.QuizID]; ok && len(children) == 0 {
				delete(s.questions, op.QuizID)
			}
		default:
			delete(s.questions[op.QuizID], op.QuestionID)
		}
	}
	return nil
}
