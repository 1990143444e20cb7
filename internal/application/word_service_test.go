package application

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
)

// fakeWordStore appends blindly on Create; duplicate detection must come
// from the service's origin pre-check.
type fakeWordStore struct {
	nextID int64
	words  []entity.Word
}

func (s *fakeWordStore) Create(_ context.Context, w *entity.Word) error {
	s.nextID++
	w.ID = s.nextID
	s.words = append(s.words, *w)
	return nil
}

func (s *fakeWordStore) GetByID(_ context.Context, id int64) (*entity.Word, error) {
	for i := range s.words {
		if s.words[i].ID == id {
			cp := s.words[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeWordStore) GetByOrigin(_ context.Context, origin string) (*entity.Word, error) {
	for i := range s.words {
		if strings.EqualFold(s.words[i].Origin, origin) {
			cp := s.words[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeWordStore) GetRandomOne(_ context.Context) (*entity.Word, error) {
	if len(s.words) == 0 {
		return nil, repository.ErrNotFound
	}
	cp := s.words[0]
	return &cp, nil
}

func (s *fakeWordStore) Update(_ context.Context, id int64, patch repository.WordPatch) (*entity.Word, error) {
	for i := range s.words {
		if s.words[i].ID == id {
			if patch.Origin != nil {
				s.words[i].Origin = *patch.Origin
			}
			if patch.Pronunciation != nil {
				s.words[i].Pronunciation = *patch.Pronunciation
			}
			if patch.Translation != nil {
				s.words[i].Translation = *patch.Translation
			}
			cp := s.words[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeWordStore) Remove(_ context.Context, id int64) (*entity.Word, error) {
	for i := range s.words {
		if s.words[i].ID == id {
			cp := s.words[i]
			s.words = append(s.words[:i], s.words[i+1:]...)
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeWordStore) List(_ context.Context, skip, limit int) ([]entity.Word, error) {
	if skip >= len(s.words) {
		return []entity.Word{}, nil
	}
	out := s.words[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func TestWordServiceCreateChecksOrigin(t *testing.T) {
	store := &fakeWordStore{}
	svc := NewWordService(store, newFakeCache(), logrus.New())
	ctx := context.Background()

	w, err := svc.Create(ctx, "ephemeral", "", "短暂的")
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.ID)

	_, err = svc.Create(ctx, "ephemeral", "", "again")
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Len(t, store.words, 1)
}

func TestWordServiceCreateUnknownOriginProceeds(t *testing.T) {
	store := &fakeWordStore{}
	svc := NewWordService(store, newFakeCache(), logrus.New())

	w, err := svc.Create(context.Background(), "serendipity", "", "")
	require.NoError(t, err)
	assert.Equal(t, "serendipity", w.Origin)
}
