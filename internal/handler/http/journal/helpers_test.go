package journal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"journal-api/internal/domain/entity"
	"journal-api/internal/handler/http/journal"
	jUC "journal-api/internal/usecase/journal"
)

/* ───────── スタブ実装 ───────── */

type stubRepo struct {
	data   map[int64]entity.Journal
	nextID int64
	err    error
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]entity.Journal{}, nextID: 1}
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Journal, error) {
	if s.err != nil {
		return nil, s.err
	}
	j, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Journal, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*entity.Journal, 0, len(s.data))
	for _, j := range s.data {
		j := j
		out = append(out, &j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, j *entity.Journal) error {
	if s.err != nil {
		return s.err
	}
	j.ID = s.nextID
	j.Article.ID = s.nextID + 1000
	s.nextID++
	s.data[j.ID] = *j
	return nil
}

func (s *stubRepo) Update(_ context.Context, j *entity.Journal) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[j.ID]; !ok {
		return entity.ErrNotFound
	}
	s.data[j.ID] = *j
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.data)), s.err
}

/* ───────── ヘルパ ───────── */

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo  *stubRepo
	mux   *http.ServeMux
	authz int
}

func newFixture(t *testing.T, policy jUC.DatePolicy) *fixture {
	t.Helper()
	f := &fixture{repo: newStub(), mux: http.NewServeMux()}
	svc := &jUC.Service{
		Repo:   f.repo,
		Mapper: jUC.Mapper{Policy: policy, Now: func() time.Time { return fixedNow }},
	}
	journal.Register(f.mux, svc, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.authz++
			next.ServeHTTP(w, r)
		})
	})
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

const natureJSON = `{
  "name": "Nature",
  "topic": "Science",
  "language": "en",
  "foundationDate": "1869-11-04T00:00:00",
  "issn": "0028-0836",
  "recommendedPrice": "19.99",
  "periodic": true,
  "article": {
    "title": "On X-rays",
    "author": "Röntgen",
    "writingDate": "1895-12-28T00:00:00",
    "wordCount": 1200,
    "referenceCount": 3,
    "originalLanguage": true
  }
}`
