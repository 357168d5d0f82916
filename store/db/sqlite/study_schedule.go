package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func (d *DB) CreateStudySchedule(ctx context.Context, create *store.StudySchedule) (*store.StudySchedule, error) {
	fields := []string{"`uid`", "`student_id`", "`chapter`", "`session_id`", "`payload`"}
	args := []any{create.UID, create.StudentID, create.Chapter, create.SessionID, create.Payload}

	stmt := "INSERT INTO `study_schedule` (" + strings.Join(fields, ", ") + ") VALUES (" + placeholders(len(args)) + ") RETURNING `id`, `created_ts`"
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, err
	}

	return create, nil
}

func (d *DB) ListStudySchedules(ctx context.Context, find *store.FindStudySchedule) ([]*store.StudySchedule, error) {
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

	stmt := "SELECT `id`, `uid`, `student_id`, `chapter`, `session_id`, `payload`, `created_ts` FROM `study_schedule` WHERE " + strings.Join(where, " AND ") + " ORDER BY `created_ts` DESC"
	if find.Limit != nil {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*store.StudySchedule, 0)
	for rows.Next() {
		schedule := &store.StudySchedule{}
		if err := rows.Scan(
			&schedule.ID,
			&schedule.UID,
			&schedule.StudentID,
			&schedule.Chapter,
			&schedule.SessionID,
			&schedule.Payload,
			&schedule.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) DeleteStudySchedule(ctx context.Context, delete *store.DeleteStudySchedule) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `study_schedule` WHERE `id` = ?", delete.ID)
	return err
}
