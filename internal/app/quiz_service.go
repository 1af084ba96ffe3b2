package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizcraft-service/internal/docstore"
	"quizcraft-service/internal/domain"
)

// QuizService reconciles in-memory quizzes against the document store: one
// quiz record plus a child collection of question records, every write a
// single atomic batch with the derived question count recomputed inside it.
type QuizService struct {
	store docstore.Store
	cache *quizCache
	newID func() string
}

// NewQuizService builds the service. cacheTTL > 0 enables a read-through
// cache for full-quiz reads, invalidated on every write.
func NewQuizService(store docstore.Store, cacheTTL time.Duration) *QuizService {
	s := &QuizService{store: store, newID: uuid.NewString}
	if cacheTTL > 0 {
		s.cache = newQuizCache(cacheTTL)
	}
	return s
}

// Create persists a new quiz and its questions in one batch, assigning an id
// when the caller left it empty. Returns the quiz id.
func (s *QuizService) Create(ctx context.Context, quiz domain.Quiz) (string, error) {
	if err := validate(quiz); err != nil {
		return "", err
	}
	if quiz.ID == "" {
		quiz.ID = s.newID()
	}

	ops := make([]docstore.Op, 0, len(quiz.Questions)+1)
	ops = append(ops, docstore.SetQuiz(quizRecord(quiz)))
	for _, q := range quiz.Questions {
		ops = append(ops, docstore.SetQuestion(quiz.ID, q.ID, questionRecord(q)))
	}
	if err := s.store.ApplyBatch(ctx, ops); err != nil {
		return "", err
	}
	return quiz.ID, nil
}

// Get returns the quiz record merged with its reassembled questions.
// Question order is whatever the store reports; callers must not rely on it.
func (s *QuizService) Get(ctx context.Context, id string) (domain.Quiz, error) {
	if s.cache != nil {
		return s.cache.get(ctx, id, s.load)
	}
	return s.load(ctx, id)
}

// GetSummary returns quiz metadata without fetching children.
func (s *QuizService) GetSummary(ctx context.Context, id string) (domain.QuizSummary, error) {
	rec, err := s.store.GetQuizRecord(ctx, id)
	if err != nil {
		return domain.QuizSummary{}, err
	}
	return summary(rec), nil
}

// ListSummaries returns metadata for every stored quiz, children untouched.
func (s *QuizService) ListSummaries(ctx context.Context) ([]domain.QuizSummary, error) {
	records, err := s.store.ListQuizRecords(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.QuizSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, summary(rec))
	}
	return summaries, nil
}

// Update makes the stored state match quiz exactly: children absent from
// quiz.Questions are deleted, every present question is upserted, and the quiz
// record (title, description, question count) is rewritten — all in one batch.
// Upserting unchanged questions trades redundant writes for correctness under
// partial edits; no separate change detection is attempted.
func (s *QuizService) Update(ctx context.Context, quiz domain.Quiz) error {
	if err := validate(quiz); err != nil {
		return err
	}
	if _, err := s.store.GetQuizRecord(ctx, quiz.ID); err != nil {
		return err
	}
	existing, err := s.store.GetQuestionRecords(ctx, quiz.ID)
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(quiz.Questions))
	for _, q := range quiz.Questions {
		keep[q.ID] = struct{}{}
	}

	ops := []docstore.Op{docstore.SetQuiz(quizRecord(quiz))}
	for id := range existing {
		if _, ok := keep[id]; !ok {
			ops = append(ops, docstore.DeleteQuestion(quiz.ID, id))
		}
	}
	for _, q := range quiz.Questions {
		ops = append(ops, docstore.SetQuestion(quiz.ID, q.ID, questionRecord(q)))
	}

	if err := s.store.ApplyBatch(ctx, ops); err != nil {
		return err
	}
	s.invalidate(quiz.ID)
	return nil
}

// Delete removes every child question record and then the quiz record itself,
// in one batch, so no orphaned children can remain.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetQuizRecord(ctx, id); err != nil {
		return err
	}
	existing, err := s.store.GetQuestionRecords(ctx, id)
	if err != nil {
		return err
	}

	ops := make([]docstore.Op, 0, len(existing)+1)
	for childID := range existing {
		ops = append(ops, docstore.DeleteQuestion(id, childID))
	}
	ops = append(ops, docstore.DeleteQuiz(id))

	if err := s.store.ApplyBatch(ctx, ops); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *QuizService) load(ctx context.Context, id string) (domain.Quiz, error) {
	rec, err := s.store.GetQuizRecord(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}
	children, err := s.store.GetQuestionRecords(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}

	questions := make([]domain.Question, 0, len(children))
	for childID, child := range children {
		questions = append(questions, domain.Question{
			ID:              childID,
			Text:            child.Text,
			Choices:         child.Choices,
			CorrectChoiceID: child.CorrectChoiceID,
		})
	}
	return domain.Quiz{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		QuestionCount: rec.QuestionCount,
		Questions:     questions,
	}, nil
}

func (s *QuizService) invalidate(id string) {
	if s.cache != nil {
		s.cache.invalidate(id)
	}
}

// validate enforces the caller contract: title and description are required.
// A correctChoiceId that names no choice is deliberately allowed; it simply
// never matches any recorded answer.
func validate(quiz domain.Quiz) error {
	if strings.TrimSpace(quiz.Title) == "" || strings.TrimSpace(quiz.Description) == "" {
		return domain.ErrInvalidQuiz
	}
	return nil
}

func quizRecord(quiz domain.Quiz) docstore.QuizRecord {
	return docstore.QuizRecord{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		QuestionCount: len(quiz.Questions),
	}
}

func questionRecord(q domain.Question) docstore.QuestionRecord {
	return docstore.QuestionRecord{
		Text:            q.Text,
		Choices:         q.Choices,
		CorrectChoiceID: q.CorrectChoiceID,
	}
}

func summary(rec docstore.QuizRecord) domain.QuizSummary {
	return domain.QuizSummary{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		QuestionCount: rec.QuestionCount,
	}
}
