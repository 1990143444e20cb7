package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
)

// Redis key for the word of the day.
const wordDailyKey = "word_daily"

// WordService serves vocabulary entries.
type WordService struct {
	Repo  repository.WordRepository
	Daily *DailyPick[entity.Word]
}

func NewWordService(repo repository.WordRepository, cache FieldCache, logger *logrus.Logger) *WordService {
	return &WordService{
		Repo: repo,
		Daily: &DailyPick[entity.Word]{
			Cache:  cache,
			Key:    wordDailyKey,
			ByID:   repo.GetByID,
			Random: repo.GetRandomOne,
			ID:     func(w *entity.Word) int64 { return w.ID },
			Logger: logger,
		},
	}
}

func (s *WordService) List(ctx context.Context, skip, limit int) ([]entity.Word, error) {
	return s.Repo.List(ctx, skip, limit)
}

func (s *WordService) Get(ctx context.Context, id int64) (*entity.Word, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *WordService) GetRandom(ctx context.Context) (*entity.Word, error) {
	return s.Repo.GetRandomOne(ctx)
}

func (s *WordService) GetDaily(ctx context.Context) (*entity.Word, error) {
	return s.Daily.Today(ctx)
}

// Create inserts a new word; a duplicate origin is a conflict. The origin
// is checked up front for a clean error, the unique index stays the
// authority under concurrent creates.
func (s *WordService) Create(ctx context.Context, origin, pronunciation, translation string) (*entity.Word, error) {
	if _, err := s.Repo.GetByOrigin(ctx, origin); err == nil {
		return nil, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	w := &entity.Word{Origin: origin, Pronunciation: pronunciation, Translation: translation}
	if err := s.Repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WordService) Update(ctx context.Context, id int64, patch repository.WordPatch) (*entity.Word, error) {
	return s.Repo.Update(ctx, id, patch)
}

func (s *WordService) Remove(ctx context.Context, id int64) (*entity.Word, error) {
	return s.Repo.Remove(ctx, id)
}
