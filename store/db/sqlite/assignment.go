package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func (d *DB) CreateAssignment(ctx context.Context, create *store.Assignment) (*store.Assignment, error) {
	fields := []string{"`uid`", "`student_id`", "`topic`", "`session_id`", "`payload`"}
	args := []any{create.UID, create.StudentID, create.Topic, create.SessionID, create.Payload}

	stmt := "INSERT INTO `assignment` (" + strings.Join(fields, ", ") + ") VALUES (" + placeholders(len(args)) + ") RETURNING `id`, `created_ts`"
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, err
	}

	return create, nil
}

func (d *DB) ListAssignments(ctx context.Context, find *store.FindAssignment) ([]*store.Assignment, error) {
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

	stmt := "SELECT `id`, `uid`, `student_id`, `topic`, `session_id`, `payload`, `created_ts` FROM `assignment` WHERE " + strings.Join(where, " AND ") + " ORDER BY `created_ts` DESC"
	if find.Limit != nil {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*store.Assignment, 0)
	for rows.Next() {
		assignment := &store.Assignment{}
		if err := rows.Scan(
			&assignment.ID,
			&assignment.UID,
			&assignment.StudentID,
			&assignment.Topic,
			&assignment.SessionID,
			&assignment.Payload,
			&assignment.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) DeleteAssignment(ctx context.Context, delete *store.DeleteAssignment) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `assignment` WHERE `id` = ?", delete.ID)
	return err
}
