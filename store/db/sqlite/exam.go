package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func (d *DB) CreateExam(ctx context.Context, create *store.Exam) (*store.Exam, error) {
	fields := []string{"`uid`", "`student_id`", "`topic`", "`session_id`", "`status`", "`payload`", "`score_report`"}
	args := []any{create.UID, create.StudentID, create.Topic, create.SessionID, create.Status, create.Payload, create.ScoreReport}

	stmt := "INSERT INTO `exam` (" + strings.Join(fields, ", ") + ") VALUES (" + placeholders(len(args)) + ") RETURNING `id`, `created_ts`, `updated_ts`"
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, err
	}

	return create, nil
}

func (d *DB) ListExams(ctx context.Context, find *store.FindExam) ([]*store.Exam, error) {
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
	if v := find.Status; v != nil {
		where, args = append(where, fmt.Sprintf("`status` = %s", placeholder(len(args)+1))), append(args, *v)
	}

	stmt := "SELECT `id`, `uid`, `student_id`, `topic`, `session_id`, `status`, `payload`, `score_report`, `created_ts`, `updated_ts` FROM `exam` WHERE " + strings.Join(where, " AND ") + " ORDER BY `created_ts` DESC"
	if find.Limit != nil {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*store.Exam, 0)
	for rows.Next() {
		exam := &store.Exam{}
		if err := rows.Scan(
			&exam.ID,
			&exam.UID,
			&exam.StudentID,
			&exam.Topic,
			&exam.SessionID,
			&exam.Status,
			&exam.Payload,
			&exam.ScoreReport,
			&exam.CreatedTs,
			&exam.UpdatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, exam)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) UpdateExam(ctx context.Context, update *store.UpdateExam) (*store.Exam, error) {
	set, args := []string{}, []any{}

	set, args = append(set, fmt.Sprintf("`updated_ts` = %s", placeholder(len(args)+1))), append(args, update.UpdatedTs)
	if v := update.Status; v != nil {
		set, args = append(set, fmt.Sprintf("`status` = %s", placeholder(len(args)+1))), append(args, *v)
	}
	if v := update.ScoreReport; v != nil {
		set, args = append(set, fmt.Sprintf("`score_report` = %s", placeholder(len(args)+1))), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := "UPDATE `exam` SET " + strings.Join(set, ", ") + " WHERE `id` = " + placeholder(len(args)) + " RETURNING `id`, `uid`, `student_id`, `topic`, `session_id`, `status`, `payload`, `score_report`, `created_ts`, `updated_ts`"
	exam := &store.Exam{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&exam.ID,
		&exam.UID,
		&exam.StudentID,
		&exam.Topic,
		&exam.SessionID,
		&exam.Status,
		&exam.Payload,
		&exam.ScoreReport,
		&exam.CreatedTs,
		&exam.UpdatedTs,
	); err != nil {
		return nil, err
	}

	return exam, nil
}
