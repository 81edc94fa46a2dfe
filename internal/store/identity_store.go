package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/devlink-app/devlink-backend/internal/models"
)

// PostgresIdentityStore keeps account records in PostgreSQL.
type PostgresIdentityStore struct {
	db *sql.DB
}

var _ IdentityStore = (*PostgresIdentityStore)(nil)

func NewPostgresIdentityStore(db *sql.DB) *PostgresIdentityStore {
	return &PostgresIdentityStore{db: db}
}

func (s *PostgresIdentityStore) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, name, email, avatar, password_hash
		FROM identities WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanIdentity(row)
}

func (s *PostgresIdentityStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, name, email, avatar, password_hash
		FROM identities WHERE id = $1
	`, id)
	return scanIdentity(row)
}

func (s *PostgresIdentityStore) Create(ctx context.Context, identity *models.Identity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identities (id, created_at, name, email, avatar, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, identity.ID, identity.CreatedAt, identity.Name, identity.Email, identity.Avatar, identity.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}
	return nil
}

func (s *PostgresIdentityStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM identities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}

func scanIdentity(row *sql.Row) (*models.Identity, error) {
	var identity models.Identity
	var avatar sql.NullString
	err := row.Scan(&identity.ID, &identity.CreatedAt, &identity.Name, &identity.Email, &avatar, &identity.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan identity: %w", err)
	}
	identity.Avatar = avatar.String
	return &identity, nil
}
