package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"quizcraft-service/internal/docstore"
	"quizcraft-service/internal/domain"
)

// Store implements docstore.Store on Redis.
// Layout:
//
//	HSET quiz:{id}            title {t} description {d} questionCount {n}
//	HSET quiz:{id}:questions  {questionID} {json QuestionRecord}
//	SADD quizzes              {id}
//
// Batches run inside one MULTI/EXEC via TxPipelined, which gives the
// all-or-nothing guarantee the port requires. The questions hash has no
// ordering, so reassembled question order is unspecified.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

const indexKey = "quizzes"

func (s *Store) GetQuizRecord(ctx context.Context, id string) (docstore.QuizRecord, error) {
	fields, err := s.client.HGetAll(ctx, quizKey(id)).Result()
	if err != nil {
		return docstore.QuizRecord{}, unavailable("get quiz record", err)
	}
	if len(fields) == 0 {
		return docstore.QuizRecord{}, domain.ErrQuizNotFound
	}
	return recordFromFields(id, fields), nil
}

func (s *Store) ListQuizRecords(ctx context.Context) ([]docstore.QuizRecord, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, unavailable("list quiz ids", err)
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.MapStringStringCmd, len(ids))
	for _, id := range ids {
		cmds[id] = pipe.HGetAll(ctx, quizKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, unavailable("list quiz records", err)
	}

	records := make([]docstore.QuizRecord, 0, len(ids))
	for _, id := range ids {
		fields, err := cmds[id].Result()
		if err != nil || len(fields) == 0 {
			continue // index entry without a record; skip rather than fail the listing
		}
		records = append(records, recordFromFields(id, fields))
	}
	return records, nil
}

func (s *Store) GetQuestionRecords(ctx context.Context, quizID string) (map[string]docstore.QuestionRecord, error) {
	raw, err := s.client.HGetAll(ctx, questionsKey(quizID)).Result()
	if err != nil {
		return nil, unavailable("get question records", err)
	}
	children := make(map[string]docstore.QuestionRecord, len(raw))
	for id, payload := range raw {
		var rec docstore.QuestionRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decode question %s: %w", id, err)
		}
		children[id] = rec
	}
	return children, nil
}

func (s *Store) ApplyBatch(ctx context.Context, ops []docstore.Op) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range ops {
			switch {
			case op.Kind == docstore.OpSet && op.QuestionID == "":
				pipe.HSet(ctx, quizKey(op.QuizID),
					"title", op.Quiz.Title,
					"description", op.Quiz.Description,
					"questionCount", op.Quiz.QuestionCount,
				)
				pipe.SAdd(ctx, indexKey, op.QuizID)
			case op.Kind == docstore.OpSet:
				payload, err := json.Marshal(op.Question)
				if err != nil {
					return fmt.Errorf("encode question %s: %w", op.QuestionID, err)
				}
				pipe.HSet(ctx, questionsKey(op.QuizID), op.QuestionID, payload)
			case op.QuestionID == "":
				pipe.Del(ctx, quizKey(op.QuizID), questionsKey(op.QuizID))
				pipe.SRem(ctx, indexKey, op.QuizID)
			default:
				pipe.HDel(ctx, questionsKey(op.QuizID), op.QuestionID)
			}
		}
		return nil
	})
	if err != nil {
		return unavailable("apply batch", err)
	}
	return nil
}

func quizKey(id string) string {
	return "quiz:" + id
}

func questionsKey(id string) string {
	return "quiz:" + id + ":questions"
}

func recordFromFields(id string, fields map[string]string) docstore.QuizRecord {
	count, _ := strconv.Atoi(fields["questionCount"])
	return docstore.QuizRecord{
		ID:            id,
		Title:         fields["title"],
		Description:   fields["description"],
		QuestionCount: count,
	}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
