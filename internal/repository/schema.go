package repository

import (
	"github.com/jmoiron/sqlx"
)

// Schema is applied once at startup. The original portal created the
// notifications table lazily on first use, which races under concurrent
// first requests; provisioning everything here removes that window.
const schema = `
CREATE TABLE IF NOT EXISTS citizens (
	citizen_id  UUID PRIMARY KEY,
	phone       VARCHAR(10) NOT NULL UNIQUE,
	full_name   TEXT NOT NULL,
	otp_code    VARCHAR(10),
	is_verified BOOLEAN NOT NULL DEFAULT FALSE,
	is_blocked  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS panchayat_admins (
	admin_id      UUID PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name     TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS super_admins (
	super_admin_id UUID PRIMARY KEY,
	username       TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	full_name      TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS issues (
	issue_id              UUID PRIMARY KEY,
	citizen_id            UUID NOT NULL REFERENCES citizens(citizen_id),
	title                 TEXT NOT NULL,
	description           TEXT NOT NULL,
	category              TEXT NOT NULL,
	location              TEXT NOT NULL,
	latitude              DOUBLE PRECISION,
	longitude             DOUBLE PRECISION,
	accuracy              DOUBLE PRECISION,
	photo_path            TEXT,
	resolution_photo_path TEXT,
	status                TEXT NOT NULL DEFAULT 'Pending',
	assigned_to           UUID REFERENCES panchayat_admins(admin_id),
	admin_notes           TEXT,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_issues_citizen ON issues(citizen_id);
CREATE INDEX IF NOT EXISTS idx_issues_assigned ON issues(assigned_to);

CREATE TABLE IF NOT EXISTS notifications (
	notification_id UUID PRIMARY KEY,
	citizen_id      UUID REFERENCES citizens(citizen_id),
	admin_id        UUID REFERENCES panchayat_admins(admin_id),
	super_admin_id  UUID REFERENCES super_admins(super_admin_id),
	type            TEXT NOT NULL,
	title           TEXT NOT NULL,
	message         TEXT NOT NULL,
	data            JSONB,
	is_read         BOOLEAN NOT NULL DEFAULT FALSE,
	read_at         TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT notifications_one_recipient CHECK (
		(citizen_id IS NOT NULL)::int + (admin_id IS NOT NULL)::int + (super_admin_id IS NOT NULL)::int = 1
	)
);
CREATE INDEX IF NOT EXISTS idx_notifications_citizen ON notifications(citizen_id) WHERE citizen_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_notifications_admin ON notifications(admin_id) WHERE admin_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS notification_templates (
	template_id      UUID PRIMARY KEY,
	type             TEXT NOT NULL UNIQUE,
	title_template   TEXT NOT NULL,
	message_template TEXT NOT NULL,
	is_active        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS citizen_achievements (
	achievement_id   UUID PRIMARY KEY,
	owner_id         UUID NOT NULL REFERENCES citizens(citizen_id),
	achievement_type TEXT NOT NULL,
	awarded_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (owner_id, achievement_type)
);

CREATE TABLE IF NOT EXISTS admin_achievements (
	achievement_id   UUID PRIMARY KEY,
	owner_id         UUID NOT NULL REFERENCES panchayat_admins(admin_id),
	achievement_type TEXT NOT NULL,
	awarded_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (owner_id, achievement_type)
);

CREATE TABLE IF NOT EXISTS sessions (
	session_id UUID PRIMARY KEY,
	account_id UUID NOT NULL,
	role       TEXT NOT NULL,
	token_hash TEXT NOT NULL UNIQUE,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	revoked_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions(account_id);
`

const seedTemplates = `
INSERT INTO notification_templates (template_id, type, title_template, message_template) VALUES
	(gen_random_uuid(), 'issue_status', 'Issue Update', 'Your issue "{title}" is now {status}.'),
	(gen_random_uuid(), 'issue_assigned', 'Issue Assigned', 'Issue "{title}" has been assigned to you.'),
	(gen_random_uuid(), 'issue_resolved', 'Issue Resolved', 'Your issue "{title}" has been resolved. {notes}'),
	(gen_random_uuid(), 'new_issue', 'New Issue Reported', '{citizen} reported a new {category} issue: "{title}".'),
	(gen_random_uuid(), 'achievement_earned', 'Achievement Unlocked', 'Congratulations! You earned the "{badge}" badge.')
ON CONFLICT (type) DO NOTHING;
`

// Migrate provisions the schema and seeds the read-only notification
// templates. Safe to run on every startup.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	_, err := db.Exec(seedTemplates)
	return err
}
