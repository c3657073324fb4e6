package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"entregas/internal/domain"
	"entregas/internal/port"
)

type credentialRepo struct {
	db *sqlx.DB
}

// NewCredentialRepo creates a new PostgreSQL-backed CredentialRepository.
func NewCredentialRepo(db *sqlx.DB) port.CredentialRepository {
	return &credentialRepo{db: db}
}

func (r *credentialRepo) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	var cred domain.Credential
	err := r.db.GetContext(ctx, &cred,
		"SELECT usuario, senha, empresa FROM login WHERE usuario = $1", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("credentialRepo.GetByUsername: %w", err)
	}
	return &cred, nil
}
