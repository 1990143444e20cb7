package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
)

// Redis key for the psychology entry of the day.
const psychologyDailyKey = "psychology_daily"

// PsychologyService serves psychology knowledge entries, including the
// random and daily-pick reads.
type PsychologyService struct {
	Repo  repository.PsychologyRepository
	Daily *DailyPick[entity.Psychology]
}

func NewPsychologyService(repo repository.PsychologyRepository, cache FieldCache, logger *logrus.Logger) *PsychologyService {
	return &PsychologyService{
		Repo: repo,
		Daily: &DailyPick[entity.Psychology]{
			Cache:  cache,
			Key:    psychologyDailyKey,
			ByID:   repo.GetByID,
			Random: repo.GetRandomOne,
			ID:     func(p *entity.Psychology) int64 { return p.ID },
			Logger: logger,
		},
	}
}

func (s *PsychologyService) List(ctx context.Context, skip, limit int) ([]entity.Psychology, error) {
	return s.Repo.List(ctx, skip, limit)
}

func (s *PsychologyService) Get(ctx context.Context, id int64) (*entity.Psychology, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *PsychologyService) GetRandom(ctx context.Context) (*entity.Psychology, error) {
	return s.Repo.GetRandomOne(ctx)
}

func (s *PsychologyService) GetDaily(ctx context.Context) (*entity.Psychology, error) {
	return s.Daily.Today(ctx)
}

func (s *PsychologyService) Create(ctx context.Context, classify, knowledge string) (*entity.Psychology, error) {
	p := &entity.Psychology{Classify: classify, Knowledge: knowledge}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PsychologyService) Update(ctx context.Context, id int64, patch repository.PsychologyPatch) (*entity.Psychology, error) {
	return s.Repo.Update(ctx, id, patch)
}

func (s *PsychologyService) Remove(ctx context.Context, id int64) (*entity.Psychology, error) {
	return s.Repo.Remove(ctx, id)
}
