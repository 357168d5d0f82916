package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func (d *DB) CreateLesson(ctx context.Context, create *store.Lesson) (*store.Lesson, error) {
	fields := []string{"`uid`", "`student_id`", "`topic`", "`mastery_level`", "`summary`", "`guidance`", "`manim_code`", "`render_status`"}
	args := []any{create.UID, create.StudentID, create.Topic, create.MasteryLevel, create.Summary, create.Guidance, create.ManimCode, create.RenderStatus}

	stmt := "INSERT INTO `lesson` (" + strings.Join(fields, ", ") + ") VALUES (" + placeholders(len(args)) + ") RETURNING `id`, `created_ts`"
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, err
	}

	return create, nil
}

func (d *DB) ListLessons(ctx context.Context, find *store.FindLesson) ([]*store.Lesson, error) {
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
	if v := find.Topic; v != nil {
		where, args = append(where, fmt.Sprintf("`topic` = %s", placeholder(len(args)+1))), append(args, *v)
	}

	stmt := "SELECT `id`, `uid`, `student_id`, `topic`, `mastery_level`, `summary`, `guidance`, `manim_code`, `render_status`, `created_ts` FROM `lesson` WHERE " + strings.Join(where, " AND ") + " ORDER BY `created_ts` DESC"
	if find.Limit != nil {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*store.Lesson, 0)
	for rows.Next() {
		lesson := &store.Lesson{}
		if err := rows.Scan(
			&lesson.ID,
			&lesson.UID,
			&lesson.StudentID,
			&lesson.Topic,
			&lesson.MasteryLevel,
			&lesson.Summary,
			&lesson.Guidance,
			&lesson.ManimCode,
			&lesson.RenderStatus,
			&lesson.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) UpdateLesson(ctx context.Context, update *store.UpdateLesson) (*store.Lesson, error) {
	set, args := []string{}, []any{}

	if v := update.RenderStatus; v != nil {
		set, args = append(set, fmt.Sprintf("`render_status` = %s", placeholder(len(args)+1))), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := "UPDATE `lesson` SET " + strings.Join(set, ", ") + " WHERE `id` = " + placeholder(len(args)) + " RETURNING `id`, `uid`, `student_id`, `topic`, `mastery_level`, `summary`, `guidance`, `manim_code`, `render_status`, `created_ts`"
	lesson := &store.Lesson{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&lesson.ID,
		&lesson.UID,
		&lesson.StudentID,
		&lesson.Topic,
		&lesson.MasteryLevel,
		&lesson.Summary,
		&lesson.Guidance,
		&lesson.ManimCode,
		&lesson.RenderStatus,
		&lesson.CreatedTs,
	); err != nil {
		return nil, err
	}

	return lesson, nil
}
