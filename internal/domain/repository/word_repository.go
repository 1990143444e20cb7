package repository

import (
	"context"

	"github.com/ischaojie/soulapi/internal/domain/entity"
)

// WordPatch is a typed partial update for vocabulary entries.
type WordPatch struct {
	Origin        *string
	Pronunciation *string
	Translation   *string
}

// WordRepository defines persistence for vocabulary entries. Origin is
// unique; Create returns ErrConflict on a duplicate.
type WordRepository interface {
	Create(ctx context.Context, w *entity.Word) error
	GetByID(ctx context.Context, id int64) (*entity.Word, error)
	GetByOrigin(ctx context.Context, origin string) (*entity.Word, error)
	GetRandomOne(ctx context.Context) (*entity.Word, error)
	Update(ctx context.Context, id int64, patch WordPatch) (*entity.Word, error)
	Remove(ctx context.Context, id int64) (*entity.Word, error)
	List(ctx context.Context, skip, limit int) ([]entity.Word, error)
}
