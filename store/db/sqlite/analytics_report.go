package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

func (d *DB) CreateAnalyticsReport(ctx context.Context, create *store.AnalyticsReport) (*store.AnalyticsReport, error) {
	fields := []string{"`uid`", "`student_id`", "`student_name`", "`session_id`", "`performance_status`", "`risk_level`", "`weak_concepts`", "`recommended_action`", "`full_analysis`"}
	args := []any{create.UID, create.StudentID, create.StudentName, create.SessionID, create.PerformanceStatus, create.RiskLevel, create.WeakConcepts, create.RecommendedAction, create.FullAnalysis}

	stmt := "INSERT INTO `analytics_report` (" + strings.Join(fields, ", ") + ") VALUES (" + placeholders(len(args)) + ") RETURNING `id`, `created_ts`"
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, err
	}

	return create, nil
}

func (d *DB) ListAnalyticsReports(ctx context.Context, find *store.FindAnalyticsReport) ([]*store.AnalyticsReport, error) {
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

	stmt := "SELECT `id`, `uid`, `student_id`, `student_name`, `session_id`, `performance_status`, `risk_level`, `weak_concepts`, `recommended_action`, `full_analysis`, `created_ts` FROM `analytics_report` WHERE " + strings.Join(where, " AND ") + " ORDER BY `created_ts` DESC"
	if find.Limit != nil {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*store.AnalyticsReport, 0)
	for rows.Next() {
		report := &store.AnalyticsReport{}
		if err := rows.Scan(
			&report.ID,
			&report.UID,
			&report.StudentID,
			&report.StudentName,
			&report.SessionID,
			&report.PerformanceStatus,
			&report.RiskLevel,
			&report.WeakConcepts,
			&report.RecommendedAction,
			&report.FullAnalysis,
			&report.CreatedTs,
		); err != nil {
			return nil, err
		}
		list = append(list, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (d *DB) DeleteAnalyticsReport(ctx context.Context, delete *store.DeleteAnalyticsReport) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM `analytics_report` WHERE `id` = ?", delete.ID)
	return err
}
