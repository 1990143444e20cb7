package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, email, full_name, hashed_password, is_active, is_superuser, is_confirmed, created_at, updated_at"

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword,
		&u.IsActive, &u.IsSuperuser, &u.IsConfirmed, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, hashed_password, is_active, is_superuser, is_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.FullName, u.HashedPassword, u.IsActive, u.IsSuperuser, u.IsConfirmed)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, id int64, patch repository.UserPatch) (*entity.User, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.HashedPassword != nil {
		add("hashed_password", *patch.HashedPassword)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.IsSuperuser != nil {
		add("is_superuser", *patch.IsSuperuser)
	}
	if patch.IsConfirmed != nil {
		add("is_confirmed", *patch.IsConfirmed)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users SET %s, updated_at = now()
		WHERE id = $%d
		RETURNING `+userColumns, strings.Join(sets, ", "), len(args))
	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY id OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword,
			&u.IsActive, &u.IsSuperuser, &u.IsConfirmed, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
