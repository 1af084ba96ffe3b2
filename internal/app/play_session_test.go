package app_test

import (
	"errors"
	"testing"

	"quizcraft-service/internal/app"
	"quizcraft-service/internal/domain"
)

func TestPlayThroughScoresAnsweredQuestions(t *testing.T) {
	session := app.NewPlaySession(threeQuestionQuiz())

	mustSelect(t, session, "q1", "c1") // correct
	mustNext(t, session)
	mustSelect(t, session, "q2", "c4") // wrong
	mustNext(t, session)
	mustSelect(t, session, "q3", "c5") // correct
	mustNext(t, session)

	score, total, ok := session.Result()
	if !ok {
		t.Fatalf("expected completed session")
	}
	if score != 2 || total != 3 {
		t.Fatalf("expected 2/3, got %d/%d", score, total)
	}
	if _, ok := session.CurrentQuestion(); ok {
		t.Fatalf("completed session should have no current question")
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	session := app.NewPlaySession(threeQuestionQuiz())

	if err := session.Next(); !errors.Is(err, domain.ErrAnswerRequired) {
		t.Fatalf("expected ErrAnswerRequired, got %v", err)
	}
	if index, _ := session.Progress(); index != 0 {
		t.Fatalf("rejected Next must not advance, index=%d", index)
	}
}

func TestFirstAnswerIsLocked(t *testing.T) {
	session := app.NewPlaySession(threeQuestionQuiz())

	mustSelect(t, session, "q1", "c2")
	if err := session.SelectChoice("q1", "c1"); err != nil {
		t.Fatalf("re-select should be a no-op, got %v", err)
	}
	if choiceID, _ := session.Answer("q1"); choiceID != "c2" {
		t.Fatalf("expected first answer kept, got %s", choiceID)
	}
}

func TestSelectValidation(t *testing.T) {
	session := app.NewPlaySession(threeQuestionQuiz())

	if err := session.SelectChoice("q2", "c3"); !errors.Is(err, domain.ErrQuestionNotCurrent) {
		t.Fatalf("expected ErrQuestionNotCurrent, got %v", err)
	}
	if err := session.SelectChoice("q1", "nope"); !errors.Is(err, domain.ErrChoiceNotFound) {
		t.Fatalf("expected ErrChoiceNotFound, got %v", err)
	}
}

func TestPreviousKeepsAnswers(t *testing.T) {
	session := app.NewPlaySession(threeQuestionQuiz())

	if err := session.Previous(); !errors.Is(err, domain.ErrAtFirstQuestion) {
		t.Fatalf("expected ErrAtFirstQuestion, got %v", err)
	}

	mustSelect(t, session, "q1", "c1")
	mustNext(t, session)
	if err := session.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}

	question, ok := session.CurrentQuestion()
	if !ok || question.ID != "q1" {
		t.Fatalf("expected cursor back on q1, got %+v", question)
	}
	if !session.IsAnswered("q1") {
		t.Fatalf("previous must not clear recorded answers")
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.Questions = quiz.Questions[:1]
	session := app.NewPlaySession(quiz)

	mustSelect(t, session, "q1", "c1")
	mustNext(t, session)

	if err := session.Next(); !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on Next, got %v", err)
	}
	if err := session.Previous(); !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on Previous, got %v", err)
	}
	if err := session.SelectChoice("q1", "c2"); !errors.Is(err, domain.ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on SelectChoice, got %v", err)
	}
}

func TestZeroQuestionQuiz(t *testing.T) {
	session := app.NewPlaySession(domain.Quiz{ID: "quiz-1", Title: "Empty", Description: "D"})

	if session.HasQuestions() {
		t.Fatalf("expected no questions")
	}
	if err := session.Next(); !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	score, total, ok := session.Result()
	if !ok || score != 0 || total != 0 {
		t.Fatalf("expected vacuous 0/0, got %d/%d ok=%v", score, total, ok)
	}
}

func TestDanglingCorrectChoiceNeverScores(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.Questions = quiz.Questions[:1]
	quiz.Questions[0].CorrectChoiceID = "ghost"
	session := app.NewPlaySession(quiz)

	mustSelect(t, session, "q1", "c1")
	mustNext(t, session)

	score, _, _ := session.Result()
	if score != 0 {
		t.Fatalf("dangling correctChoiceId must never match, score=%d", score)
	}
}

func mustSelect(t *testing.T, s *app.PlaySession, questionID, choiceID string) {
	t.Helper()
	if err := s.SelectChoice(questionID, choiceID); err != nil {
		t.Fatalf("select %s/%s: %v", questionID, choiceID, err)
	}
}

func mustNext(t *testing.T, s *app.PlaySession) {
	t.Helper()
	if err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
}

func threeQuestionQuiz() domain.Quiz {
	return domain.Quiz{
		ID:          "quiz-1",
		Title:       "Capitals",
		Description: "Guess the capitals",
		Questions: []domain.Question{
			{
				ID:   "q1",
				Text: "Capital of France?",
				Choices: []domain.Choice{
					{ID: "c1", Text: "Paris"},
					{ID: "c2", Text: "Lyon"},
				},
				CorrectChoiceID: "c1",
			},
			{
				ID:   "q2",
				Text: "Capital of Japan?",
				Choices: []domain.Choice{
					{ID: "c3", Text: "Tokyo"},
					{ID: "c4", Text: "Osaka"},
				},
				CorrectChoiceID: "c3",
			},
			{
				ID:   "q3",
				Text: "Capital of Peru?",
				Choices: []domain.Choice{
					{ID: "c5", Text: "Lima"},
					{ID: "c6", Text: "Cusco"},
				},
				CorrectChoiceID: "c5",
			},
		},
	}
}
