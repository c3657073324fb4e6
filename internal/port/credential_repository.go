package port

import (
	"context"

	"entregas/internal/domain"
)

// CredentialRepository looks up login rows.
type CredentialRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Credential, error)
}
