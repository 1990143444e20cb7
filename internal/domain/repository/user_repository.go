package repository

import (
	"context"

	"github.com/ischaojie/soulapi/internal/domain/entity"
)

// UserPatch is a typed partial update. Nil fields are left untouched.
type UserPatch struct {
	FullName       *string
	HashedPassword *string
	IsActive       *bool
	IsSuperuser    *bool
	IsConfirmed    *bool
}

// UserRepository defines the persistence contract for user accounts.
// Emails are unique case-insensitively: Create must reject a case variant
// of an existing email with ErrConflict, matching the lower(email) lookup
// in GetByEmail. Single-record create/update are atomic.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*entity.User, error)
	List(ctx context.Context, skip, limit int) ([]entity.User, error)
}
