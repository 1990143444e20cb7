package repository

import (
	"context"

	"github.com/ischaojie/soulapi/internal/domain/entity"
)

// PsychologyPatch is a typed partial update for psychology entries.
type PsychologyPatch struct {
	Classify  *string
	Knowledge *string
}

// PsychologyRepository defines persistence for psychology knowledge entries.
// GetRandomOne selects one row uniformly at random and returns ErrNotFound
// when the table is empty.
type PsychologyRepository interface {
	Create(ctx context.Context, p *entity.Psychology) error
	GetByID(ctx context.Context, id int64) (*entity.Psychology, error)
	GetRandomOne(ctx context.Context) (*entity.Psychology, error)
	Update(ctx context.Context, id int64, patch PsychologyPatch) (*entity.Psychology, error)
	Remove(ctx context.Context, id int64) (*entity.Psychology, error)
	List(ctx context.Context, skip, limit int) ([]entity.Psychology, error)
}
