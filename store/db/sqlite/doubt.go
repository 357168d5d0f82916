package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func (d *DB) CreateDoubt(ctx context.Context, create *store.Doubt) (*store.Doubt, error) {
	fields := []string{"`uid`", "`student_id`", "`session_id`", "`external_user_id`", "`question`", "`extracted_image_data`", "`payload`", "`turns`"}
	args := []any{create.UID, create.StudentID, create.SessionID, create.ExternalUserID, create.Question, create.ExtractedImageData, create.Payload, create.Turns}

	stmt := "INSERT INTO `doubt` (" + strings.Join(fields, ", ") + ") VALUES (" + placeholders(len(args)) + ") RETURNING `id`, `created_ts`, `updated_ts`"
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, err
	}

	return create, nil
}

func (d *DB) ListDoubts(ctx context.Context, find *store.FindDoubt) ([]*store.Doubt, error) {
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

	stmt := "SELECT `id`, `uid`, `student_id`, `session_id`, `external_user_id`, `question`, `extracted_image_data`, `payload`, `turns`, `created_ts`, `updated_ts` FROM `doubt` WHERE " + strings.Join(where, " AND ") + " ORDER BY `created_ts` DESC"
	if find.Limit != nil {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*store.Doubt, 0)
	for rows.Next() {
		doubt := &store.Doubt{}
		if err := rows.Scan(
			&doubt.ID,
			&doubt.UID,
			&doubt.StudentID,
			&doubt.SessionID,
			&doubt.ExternalUserID,
			&doubt.Question,
			&doubt.ExtractedImageData,
			&doubt.Payload,
			&doubt.Turns,
			&doubt.CreatedTs,
			&doubt.UpdatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, doubt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) UpdateDoubt(ctx context.Context, update *store.UpdateDoubt) (*store.Doubt, error) {
	set, args := []string{}, []any{}

	set, args = append(set, fmt.Sprintf("`updated_ts` = %s", placeholder(len(args)+1))), append(args, update.UpdatedTs)
	if v := update.Payload; v != nil {
		set, args = append(set, fmt.Sprintf("`payload` = %s", placeholder(len(args)+1))), append(args, *v)
	}
	if v := update.Turns; v != nil {
		set, args = append(set, fmt.Sprintf("`turns` = %s", placeholder(len(args)+1))), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := "UPDATE `doubt` SET " + strings.Join(set, ", ") + " WHERE `id` = " + placeholder(len(args)) + " RETURNING `id`, `uid`, `student_id`, `session_id`, `external_user_id`, `question`, `extracted_image_data`, `payload`, `turns`, `created_ts`, `updated_ts`"
	doubt := &store.Doubt{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&doubt.ID,
		&doubt.UID,
		&doubt.StudentID,
		&doubt.SessionID,
		&doubt.ExternalUserID,
		&doubt.Question,
		&doubt.ExtractedImageData,
		&doubt.Payload,
		&doubt.Turns,
		&doubt.CreatedTs,
		&doubt.UpdatedTs,
	); err != nil {
		return nil, err
	}

	return doubt, nil
}

func (d *DB) DeleteDoubt(ctx context.Context, delete *store.DeleteDoubt) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `doubt` WHERE `id` = ?", delete.ID)
	return err
}
