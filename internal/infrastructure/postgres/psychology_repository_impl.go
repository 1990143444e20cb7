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

type PsychologyRepository struct {
	pool *pgxpool.Pool
}

func NewPsychologyRepository(pool *pgxpool.Pool) *PsychologyRepository {
	return &PsychologyRepository{pool: pool}
}

const psychologyColumns = "id, classify, knowledge, created_at, updated_at"

func scanPsychology(row pgx.Row) (*entity.Psychology, error) {
	p := &entity.Psychology{}
	if err := row.Scan(&p.ID, &p.Classify, &p.Knowledge, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PsychologyRepository) Create(ctx context.Context, p *entity.Psychology) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO psychologies (classify, knowledge)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, p.Classify, p.Knowledge)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PsychologyRepository) GetByID(ctx context.Context, id int64) (*entity.Psychology, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+psychologyColumns+` FROM psychologies WHERE id = $1`, id)
	return scanPsychology(row)
}

// GetRandomOne selects a single row in random order; the backing store's
// random() primitive gives each row a uniform chance.
func (r *PsychologyRepository) GetRandomOne(ctx context.Context) (*entity.Psychology, error) {
	row := r.pool.QueryRow(ctx, `SELECT ` + psychologyColumns + ` FROM psychologies ORDER BY random() LIMIT 1`)
	return scanPsychology(row)
}

func (r *PsychologyRepository) Update(ctx context.Context, id int64, patch repository.PsychologyPatch) (*entity.Psychology, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Classify != nil {
		add("classify", *patch.Classify)
	}
	if patch.Knowledge != nil {
		add("knowledge", *patch.Knowledge)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE psychologies SET %s, updated_at = now()
		WHERE id = $%d
		RETURNING `+psychologyColumns, strings.Join(sets, ", "), len(args))
	return scanPsychology(r.pool.QueryRow(ctx, query, args...))
}

func (r *PsychologyRepository) Remove(ctx context.Context, id int64) (*entity.Psychology, error) {
	row := r.pool.QueryRow(ctx, `DELETE FROM psychologies WHERE id = $1 RETURNING `+psychologyColumns, id)
	return scanPsychology(row)
}

func (r *PsychologyRepository) List(ctx context.Context, skip, limit int) ([]entity.Psychology, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+psychologyColumns+` FROM psychologies ORDER BY id OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Psychology
	for rows.Next() {
		var p entity.Psychology
		if err := rows.Scan(&p.ID, &p.Classify, &p.Knowledge, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PsychologyRepository = (*PsychologyRepository)(nil)
