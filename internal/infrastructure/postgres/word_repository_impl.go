package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
)

type WordRepository struct {
	pool *pgxpool.Pool
}

func NewWordRepository(pool *pgxpool.Pool) *WordRepository {
	return &WordRepository{pool: pool}
}

const wordColumns = "id, origin, pronunciation, translation, created_at, updated_at"

func scanWord(row pgx.Row) (*entity.Word, error) {
	w := &entity.Word{}
	if err := row.Scan(&w.ID, &w.Origin, &w.Pronunciation, &w.Translation, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *WordRepository) Create(ctx context.Context, w *entity.Word) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO words (origin, pronunciation, translation)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, w.Origin, w.Pronunciation, w.Translation)

	if err := row.Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *WordRepository) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+wordColumns+` FROM words WHERE id = $1`, id)
	return scanWord(row)
}

func (r *WordRepository) GetByOrigin(ctx context.Context, origin string) (*entity.Word, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+wordColumns+` FROM words WHERE origin = $1`, origin)
	return scanWord(row)
}

func (r *WordRepository) GetRandomOne(ctx context.Context) (*entity.Word, error) {
	row := r.pool.QueryRow(ctx, `SELECT ` + wordColumns + ` FROM words ORDER BY random() LIMIT 1`)
	return scanWord(row)
}

func (r *WordRepository) Update(ctx context.Context, id int64, patch repository.WordPatch) (*entity.Word, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Origin != nil {
		add("origin", *patch.Origin)
	}
	if patch.Pronunciation != nil {
		add("pronunciation", *patch.Pronunciation)
	}
	if patch.Translation != nil {
		add("translation", *patch.Translation)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE words SET %s, updated_at = now()
		WHERE id = $%d
		RETURNING `+wordColumns, strings.Join(sets, ", "), len(args))
	w, err := scanWord(r.pool.QueryRow(ctx, query, args...))
	if err != nil && isUniqueViolation(err) {
		return nil, repository.ErrConflict
	}
	return w, err
}

func (r *WordRepository) Remove(ctx context.Context, id int64) (*entity.Word, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM words WHERE id = $1 RETURNING `+wordColumns, id)
	return scanWord(row)
}

func (r *WordRepository) List(ctx context.Context, skip, limit int) ([]entity.Word, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+wordColumns+` FROM words ORDER BY id OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Word
	for rows.Next() {
		var w entity.Word
		if err := rows.Scan(&w.ID, &w.Origin, &w.Pronunciation, &w.Translation, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

var _ repository.WordRepository = (*WordRepository)(nil)
