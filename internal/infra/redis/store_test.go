package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizcraft-service/internal/docstore"
	"quizcraft-service/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	err := store.ApplyBatch(ctx, []docstore.Op{
		docstore.SetQuiz(docstore.QuizRecord{ID: "quiz-1", Title: "Capitals", Description: "Geography", QuestionCount: 1}),
		docstore.SetQuestion("quiz-1", "q1", docstore.QuestionRecord{
			Text: "Capital of France?",
			Choices: []domain.Choice{
				{ID: "c1", Text: "Paris"},
				{ID: "c2", Text: "Lyon"},
			},
			CorrectChoiceID: "c1",
		}),
	})
	if err != nil {
		t.Fatalf("apply batch: %v", err)
	}

	if !mr.Exists("quiz:quiz-1") || !mr.Exists("quiz:quiz-1:questions") {
		t.Fatalf("expected quiz keys to be written")
	}

	rec, err := store.GetQuizRecord(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get quiz record: %v", err)
	}
	if rec.Title != "Capitals" || rec.QuestionCount != 1 {
		t.Fatalf("unexpected record %+v", rec)
	}

	children, err := store.GetQuestionRecords(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get question records: %v", err)
	}
	child, ok := children["q1"]
	if !ok {
		t.Fatalf("expected child q1, got %+v", children)
	}
	if child.CorrectChoiceID != "c1" || len(child.Choices) != 2 {
		t.Fatalf("unexpected child %+v", child)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	for _, id := range []string{"quiz-1", "quiz-2"} {
		err := store.ApplyBatch(ctx, []docstore.Op{
			docstore.SetQuiz(docstore.QuizRecord{ID: id, Title: "T " + id, Description: "D", QuestionCount: 0}),
		})
		if err != nil {
			t.Fatalf("apply batch: %v", err)
		}
	}

	records, err := store.ListQuizRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	err = store.ApplyBatch(ctx, []docstore.Op{docstore.DeleteQuiz("quiz-1")})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected quiz-1 keys removed")
	}
	if _, err := store.GetQuizRecord(ctx, "quiz-1"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}

	records, err = store.ListQuizRecords(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(records) != 1 || records[0].ID != "quiz-2" {
		t.Fatalf("expected only quiz-2, got %+v", records)
	}
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client), mr
}
