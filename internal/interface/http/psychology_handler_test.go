package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ischaojie/soulapi/internal/application"
	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
	"github.com/ischaojie/soulapi/pkg/validation"
)

type memPsychologies struct {
	nextID int64
	items  map[int64]*entity.Psychology
}

func newMemPsychologies() *memPsychologies {
	return &memPsychologies{nextID: 1, items: map[int64]*entity.Psychology{}}
}

func (r *memPsychologies) Create(_ context.Context, p *entity.Psychology) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memPsychologies) GetByID(_ context.Context, id int64) (*entity.Psychology, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPsychologies) GetRandomOne(_ context.Context) (*entity.Psychology, error) {
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.items[id]; ok {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memPsychologies) Update(_ context.Context, id int64, patch repository.PsychologyPatch) (*entity.Psychology, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Classify != nil {
		p.Classify = *patch.Classify
	}
	if patch.Knowledge != nil {
		p.Knowledge = *patch.Knowledge
	}
	cp := *p
	return &cp, nil
}

func (r *memPsychologies) Remove(_ context.Context, id int64) (*entity.Psychology, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.items, id)
	return p, nil
}

func (r *memPsychologies) List(_ context.Context, skip, limit int) ([]entity.Psychology, error) {
	out := make([]entity.Psychology, 0, len(r.items))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.items[id]; ok {
			out = append(out, *p)
		}
	}
	if skip >= len(out) {
		return []entity.Psychology{}, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func testPsychologySetup(t *testing.T) (*gin.Engine, *memPsychologies) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	repo := newMemPsychologies()
	logger := logrus.New()
	svc := application.NewPsychologyService(repo, newFakeFieldCache(), logger)
	h := NewPsychologyHandler(svc, logger)

	r := gin.New()
	r.GET("/psychologies", h.List)
	r.GET("/psychologies/random", h.Random)
	r.GET("/psychologies/daily", h.Daily)
	r.GET("/psychologies/:pid", h.Get)
	r.POST("/psychologies", h.Create)
	r.PUT("/psychologies/:pid", h.Update)
	r.DELETE("/psychologies/:pid", h.Delete)
	return r, repo
}

// fakeFieldCache keeps daily-pick state in memory for handler tests.
type fakeFieldCache struct {
	fields map[string]map[string]string
}

func newFakeFieldCache() *fakeFieldCache {
	return &fakeFieldCache{fields: map[string]map[string]string{}}
}

func (f *fakeFieldCache) GetFields(_ context.Context, key string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range f.fields[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeFieldCache) SetFields(_ context.Context, key string, fields map[string]string) error {
	if f.fields[key] == nil {
		f.fields[key] = map[string]string{}
	}
	for k, v := range fields {
		f.fields[key][k] = v
	}
	return nil
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPsychologyCreateAndGet(t *testing.T) {
	r, _ := testPsychologySetup(t)

	w := doRequest(r, http.MethodPost, "/psychologies", `{"classify":"normal","knowledge":"sleep matters"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "normal", resp.Data["classify"])

	w = doRequest(r, http.MethodGet, "/psychologies/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sleep matters")
}

func TestPsychologyCreateRejectsUnknownClassify(t *testing.T) {
	r, _ := testPsychologySetup(t)

	w := doRequest(r, http.MethodPost, "/psychologies", `{"classify":"astrology","knowledge":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPsychologyGetNotFound(t *testing.T) {
	r, _ := testPsychologySetup(t)

	w := doRequest(r, http.MethodGet, "/psychologies/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "psychology knowledge not found")
}

func TestPsychologyBadID(t *testing.T) {
	r, _ := testPsychologySetup(t)

	w := doRequest(r, http.MethodGet, "/psychologies/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPsychologyRandomEmpty(t *testing.T) {
	r, _ := testPsychologySetup(t)

	w := doRequest(r, http.MethodGet, "/psychologies/random", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPsychologyDailyStable(t *testing.T) {
	r, repo := testPsychologySetup(t)
	require.NoError(t, repo.Create(context.Background(), &entity.Psychology{Classify: "normal", Knowledge: "a"}))

	w1 := doRequest(r, http.MethodGet, "/psychologies/daily", "")
	require.Equal(t, http.StatusOK, w1.Code)
	w2 := doRequest(r, http.MethodGet, "/psychologies/daily", "")
	require.Equal(t, http.StatusOK, w2.Code)

	var r1, r2 struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &r1))
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &r2))
	assert.Equal(t, r1.Data["id"], r2.Data["id"])
}

func TestPsychologyDailyEmpty(t *testing.T) {
	r, _ := testPsychologySetup(t)

	w := doRequest(r, http.MethodGet, "/psychologies/daily", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPsychologyUpdate(t *testing.T) {
	r, repo := testPsychologySetup(t)
	require.NoError(t, repo.Create(context.Background(), &entity.Psychology{Classify: "normal", Knowledge: "old"}))

	w := doRequest(r, http.MethodPut, "/psychologies/1", `{"knowledge":"new"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new")

	// Untouched field survives a partial update.
	assert.Contains(t, w.Body.String(), "normal")
}

func TestPsychologyUpdateNotFound(t *testing.T) {
	r, _ := testPsychologySetup(t)

	w := doRequest(r, http.MethodPut, "/psychologies/9", `{"knowledge":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPsychologyDelete(t *testing.T) {
	r, repo := testPsychologySetup(t)
	require.NoError(t, repo.Create(context.Background(), &entity.Psychology{Classify: "normal", Knowledge: "gone"}))

	w := doRequest(r, http.MethodDelete, "/psychologies/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gone")

	w = doRequest(r, http.MethodDelete, "/psychologies/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPsychologyListPagination(t *testing.T) {
	r, repo := testPsychologySetup(t)
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Create(context.Background(), &entity.Psychology{Classify: "normal", Knowledge: "k"}))
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}

	w := doRequest(r, http.MethodGet, "/psychologies", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 10) // default limit

	w = doRequest(r, http.MethodGet, "/psychologies?skip=10&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 5)
}
