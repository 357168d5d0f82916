package sqlite

import (
	"context"

	"github.com/pkg/errors"
)

const latestSchema = `
CREATE TABLE IF NOT EXISTS quiz_attempt (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	quiz_title TEXT NOT NULL DEFAULT '',
	score INTEGER NOT NULL DEFAULT 0,
	total_questions INTEGER NOT NULL DEFAULT 0,
	accuracy REAL NOT NULL DEFAULT 0,
	hint_usage_count INTEGER NOT NULL DEFAULT 0,
	consecutive_wrong INTEGER NOT NULL DEFAULT 0,
	mistake_repetitions INTEGER NOT NULL DEFAULT 0,
	post_revision_accuracy REAL NOT NULL DEFAULT 0,
	time_per_question TEXT NOT NULL DEFAULT '[]',
	answers TEXT NOT NULL DEFAULT '[]',
	completed_ts BIGINT NOT NULL DEFAULT 0,
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_quiz_attempt_student_id ON quiz_attempt (student_id);

CREATE TABLE IF NOT EXISTS analytics_report (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	student_name TEXT NOT NULL DEFAULT '',
	session_id TEXT NOT NULL DEFAULT '',
	performance_status TEXT NOT NULL DEFAULT '',
	risk_level TEXT NOT NULL DEFAULT '',
	weak_concepts TEXT NOT NULL DEFAULT '[]',
	recommended_action TEXT NOT NULL DEFAULT '',
	full_analysis TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_analytics_report_student_id ON analytics_report (student_id);

CREATE TABLE IF NOT EXISTS assignment (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	session_id TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL DEFAULT '{}',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_assignment_student_id ON assignment (student_id);

CREATE TABLE IF NOT EXISTS exam (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	session_id TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'GENERATED',
	payload TEXT NOT NULL DEFAULT '{}',
	score_report TEXT NOT NULL DEFAULT '',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
	updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_exam_student_id ON exam (student_id);

CREATE TABLE IF NOT EXISTS doubt (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	session_id TEXT NOT NULL DEFAULT '',
	external_user_id TEXT NOT NULL DEFAULT '',
	question TEXT NOT NULL DEFAULT '',
	extracted_image_data TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL DEFAULT '{}',
	turns INTEGER NOT NULL DEFAULT 1,
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
	updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_doubt_student_id ON doubt (student_id);

CREATE TABLE IF NOT EXISTS lesson (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	mastery_level TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	guidance TEXT NOT NULL DEFAULT '',
	manim_code TEXT NOT NULL DEFAULT '',
	render_status TEXT NOT NULL DEFAULT 'pending',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_lesson_student_id ON lesson (student_id);

CREATE TABLE IF NOT EXISTS study_schedule (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uid TEXT NOT NULL UNIQUE,
	student_id TEXT NOT NULL,
	chapter TEXT NOT NULL DEFAULT '',
	session_id TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL DEFAULT '{}',
	created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_study_schedule_student_id ON study_schedule (student_id);
`

// Migrate applies the latest schema to the database. Statements are
// idempotent so migration can run on every startup.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, latestSchema); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}
	return nil
}
