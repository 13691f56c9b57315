package repositories

import (
	"context"

	"team-seed.backend/internal/domain/entities"
)

type TeamMemberRepository interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, member *entities.TeamMember) error
	GetByID(ctx context.Context, id string) (*entities.TeamMember, error)
	List(ctx context.Context) ([]*entities.TeamMember, error)
}
