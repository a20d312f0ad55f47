package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'usuario',
		visible BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT users_role_check CHECK (role IN ('usuario', 'jugador', 'capitan', 'admin'))
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(75) NOT NULL,
		name_key VARCHAR(300) NOT NULL,
		captain_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT teams_name_key_unique UNIQUE (name_key)
	)`,

	// users.team_id is added after teams exists to break the reference cycle
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS team_id UUID REFERENCES teams(id) ON DELETE SET NULL`,

	`CREATE TABLE IF NOT EXISTS venues (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		address VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS invitations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		inviter_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		invitee_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT invitations_status_check CHECK (status IN ('pending', 'accepted', 'rejected'))
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS invitations_pending_unique
		ON invitations(team_id, invitee_id) WHERE status = 'pending'`,

	`CREATE TABLE IF NOT EXISTS matches (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		local_team_id UUID NOT NULL REFERENCES teams(id),
		visiting_team_id UUID REFERENCES teams(id),
		venue_id UUID NOT NULL REFERENCES venues(id),
		scheduled_at TIMESTAMP WITH TIME ZONE NOT NULL,
		result_status VARCHAR(30) NOT NULL DEFAULT 'sin_cargar',
		goals_local INTEGER,
		goals_visiting INTEGER,
		local_creator_id UUID NOT NULL REFERENCES users(id),
		visiting_creator_id UUID REFERENCES users(id),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT matches_distinct_teams CHECK (visiting_team_id IS NULL OR visiting_team_id <> local_team_id),
		CONSTRAINT matches_result_pair CHECK ((goals_local IS NULL) = (goals_visiting IS NULL)),
		CONSTRAINT matches_result_status_check CHECK (result_status IN ('sin_cargar', 'confirmacion_pendiente', 'confirmado', 'indefinido'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_users_team_id ON users(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_teams_captain_id ON teams(captain_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_invitee_id ON invitations(invitee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invitations_team_id ON invitations(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_local_team_id ON matches(local_team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_visiting_team_id ON matches(visiting_team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_scheduled_at ON matches(scheduled_at)`,

	// Available-player search by name
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	`CREATE INDEX IF NOT EXISTS idx_users_name_search ON users USING gin (name gin_trgm_ops)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
