package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizcraft-service/internal/docstore"
	"quizcraft-service/internal/domain"
)

// Store implements docstore.Store on Postgres: quiz metadata in quiz_records,
// children in question_records with the choice list as JSONB. Batches run in
// one transaction.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) GetQuizRecord(ctx context.Context, id string) (docstore.QuizRecord, error) {
	rec := docstore.QuizRecord{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT title, description, question_count FROM quiz_records WHERE id=$1`, id,
	).Scan(&rec.Title, &rec.Description, &rec.QuestionCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.QuizRecord{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return docstore.QuizRecord{}, unavailable("get quiz record", err)
	}
	return rec, nil
}

func (s *Store) ListQuizRecords(ctx context.Context) ([]docstore.QuizRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, question_count FROM quiz_records`)
	if err != nil {
		return nil, unavailable("list quiz records", err)
	}
	defer rows.Close()

	var records []docstore.QuizRecord
	for rows.Next() {
		var rec docstore.QuizRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.QuestionCount); err != nil {
			return nil, unavailable("scan quiz record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list quiz records", err)
	}
	return records, nil
}

func (s *Store) GetQuestionRecords(ctx context.Context, quizID string) (map[string]docstore.QuestionRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM question_records WHERE quiz_id=$1`, quizID)
	if err != nil {
		return nil, unavailable("get question records", err)
	}
	defer rows.Close()

	children := make(map[string]docstore.QuestionRecord)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, unavailable("scan question record", err)
		}
		var rec docstore.QuestionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode question %s: %w", id, err)
		}
		children[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("get question records", err)
	}
	return children, nil
}

func (s *Store) ApplyBatch(ctx context.Context, ops []docstore.Op) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return unavailable("begin batch", err)
	}
	defer tx.Rollback(ctx)

	for _, op := range ops {
		if err := applyOp(ctx, tx, op); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return unavailable("commit batch", err)
	}
	return nil
}

func applyOp(ctx context.Context, tx pgx.Tx, op docstore.Op) error {
	switch {
	case op.Kind == docstore.OpSet && op.QuestionID == "":
		_, err := tx.Exec(ctx,
			`INSERT INTO quiz_records (id, title, description, question_count)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET title=EXCLUDED.title, description=EXCLUDED.description, question_count=EXCLUDED.question_count`,
			op.QuizID, op.Quiz.Title, op.Quiz.Description, op.Quiz.QuestionCount)
		if err != nil {
			return unavailable("upsert quiz record", err)
		}
	case op.Kind == docstore.OpSet:
		data, err := json.Marshal(op.Question)
		if err != nil {
			return fmt.Errorf("encode question %s: %w", op.QuestionID, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO question_records (quiz_id, id, data)
			 VALUES ($1, $2, $3::jsonb)
			 ON CONFLICT (quiz_id, id) DO UPDATE SET data=EXCLUDED.data`,
			op.QuizID, op.QuestionID, data)
		if err != nil {
			return unavailable("upsert question record", err)
		}
	case op.QuestionID == "":
		if _, err := tx.Exec(ctx, `DELETE FROM quiz_records WHERE id=$1`, op.QuizID); err != nil {
			return unavailable("delete quiz record", err)
		}
	default:
		_, err := tx.Exec(ctx,
			`DELETE FROM question_records WHERE quiz_id=$1 AND id=$2`, op.QuizID, op.QuestionID)
		if err != nil {
			return unavailable("delete question record", err)
		}
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
