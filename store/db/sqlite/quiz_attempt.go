package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func (d *DB) CreateQuizAttempt(ctx context.Context, create *store.QuizAttempt) (*store.QuizAttempt, error) {
	fields := []string{"`uid`", "`student_id`", "`quiz_title`", "`score`", "`total_questions`", "`accuracy`", "`hint_usage_count`", "`consecutive_wrong`", "`mistake_repetitions`", "`post_revision_accuracy`", "`time_per_question`", "`answers`", "`completed_ts`"}
	args := []any{create.UID, create.StudentID, create.QuizTitle, create.Score, create.TotalQuestions, create.Accuracy, create.HintUsageCount, create.ConsecutiveWrong, create.MistakeRepetitions, create.PostRevisionAccuracy, create.TimePerQuestion, create.Answers, create.CompletedTs}

	stmt := "INSERT INTO `quiz_attempt` (" + strings.Join(fields, ", ") + ") VALUES (" + placeholders(len(args)) + ") RETURNING `id`, `created_ts`"
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, err
	}

	return create, nil
}

func (d *DB) ListQuizAttempts(ctx context.Context, find *store.FindQuizAttempt) ([]*store.QuizAttempt, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, fmt.Sprintf("`id` = %s", placeholder(len(args)+1))), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, fmt.Sprintf("`uid` = %s", placeholder(len(args)+1))), append(args, *v)
	}
	if v := find.StudentID; v != nil {
		where, args = append(where, fmt.Sprintf("`student_id` = %s", placeholder(len(args)+1))), append(args, *v)
	}

	stmt := "SELECT `id`, `uid`, `student_id`, `quiz_title`, `score`, `total_questions`, `accuracy`, `hint_usage_count`, `consecutive_wrong`, `mistake_repetitions`, `post_revision_accuracy`, `time_per_question`, `answers`, `completed_ts`, `created_ts` FROM `quiz_attempt` WHERE " + strings.Join(where, " AND ") + " ORDER BY `completed_ts` DESC"
	if find.Limit != nil {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*store.QuizAttempt, 0)
	for rows.Next() {
		attempt := &store.QuizAttempt{}
		if err := rows.Scan(
			&attempt.ID,
			&attempt.UID,
			&attempt.StudentID,
			&attempt.QuizTitle,
			&attempt.Score,
			&attempt.TotalQuestions,
			&attempt.Accuracy,
			&attempt.HintUsageCount,
			&attempt.ConsecutiveWrong,
			&attempt.MistakeRepetitions,
			&attempt.PostRevisionAccuracy,
			&attempt.TimePerQuestion,
			&attempt.Answers,
			&attempt.CompletedTs,
			&attempt.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
