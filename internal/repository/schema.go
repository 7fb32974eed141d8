package repository

import "context"

// Le schéma vit ici plutôt que dans un outil de migration : trois tables
// suffisent et cmd/seed peut initialiser une base vierge.
const schemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'nurse',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS nurses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		user_id TEXT REFERENCES users (id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS schedules (
		id BIGSERIAL PRIMARY KEY,
		nurse_id TEXT NOT NULL REFERENCES nurses (id) ON DELETE CASCADE,
		year INT NOT NULL,
		month INT NOT NULL,
		day INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'none',
		notes JSONB NOT NULL DEFAULT '[]',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (nurse_id, year, month, day)
	);
`

func (r *Repository) InitSchema(ctx context.Context) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, schemaSQL); err != nil {
		return wrapError("impossible d'initialiser le schéma", err)
	}
	return nil
}
