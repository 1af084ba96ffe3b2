package memory

import (
	"context"
	"testing"

	"quizcraft-service/internal/docstore"
	"quizcraft-service/internal/domain"
)

func TestStoreBatchAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.ApplyBatch(ctx, []docstore.Op{
		docstore.SetQuiz(docstore.QuizRecord{ID: "quiz-1", Title: "Capitals", Description: "Geography", QuestionCount: 2}),
		docstore.SetQuestion("quiz-1", "q1", docstore.QuestionRecord{Text: "Capital of France?", CorrectChoiceID: "c1"}),
		docstore.SetQuestion("quiz-1", "q2", docstore.QuestionRecord{Text: "Capital of Japan?", CorrectChoiceID: "c2"}),
	})
	if err != nil {
		t.Fatalf("apply batch: %v", err)
	}

	rec, err := store.GetQuizRecord(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get quiz record: %v", err)
	}
	if rec.Title != "Capitals" || rec.QuestionCount != 2 {
		t.Fatalf("unexpected record %+v", rec)
	}

	children, err := store.GetQuestionRecords(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get children: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children["q1"].CorrectChoiceID != "c1" {
		t.Fatalf("unexpected child %+v", children["q1"])
	}
}

func TestStoreDeleteOps(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_ = store.ApplyBatch(ctx, []docstore.Op{
		docstore.SetQuiz(docstore.QuizRecord{ID: "quiz-1", Title: "T", Description: "D", QuestionCount: 1}),
		docstore.SetQuestion("quiz-1", "q1", docstore.QuestionRecord{Text: "?"}),
	})

	err := store.ApplyBatch(ctx, []docstore.Op{
		docstore.DeleteQuestion("quiz-1", "q1"),
		docstore.DeleteQuiz("quiz-1"),
	})
	if err != nil {
		t.Fatalf("apply delete batch: %v", err)
	}

	if _, err := store.GetQuizRecord(ctx, "quiz-1"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
	children, _ := store.GetQuestionRecords(ctx, "quiz-1")
	if len(children) != 0 {
		t.Fatalf("expected no children, got %d", len(children))
	}
}

func TestGetQuizRecordMissing(t *testing.T) {
	store := NewStore()
	if _, err := store.GetQuizRecord(context.Background(), "nope"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}
