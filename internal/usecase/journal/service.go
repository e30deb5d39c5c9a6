package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"journal-api/internal/domain/entity"
	"journal-api/internal/observability/logging"
	"journal-api/internal/observability/metrics"
	"journal-api/internal/observability/tracing"
	"journal-api/internal/repository"
	"journal-api/pkg/journalapi"
)

// Service orchestrates journal persistence through the mapper.
// It holds no state of its own and is safe for concurrent use.
type Service struct {
	Repo   repository.JournalRepository
	Mapper Mapper
	Logger *slog.Logger
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	return logging.WithRequestID(ctx, l)
}

// start opens a span for op and returns a finisher that records the
// outcome on the span and in journal_operations_total.
func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.GetTracer().Start(ctx, "journal."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		defer span.End()
		switch {
		case err == nil:
			metrics.RecordJournalOperation(op, metrics.ResultSuccess)
		case errors.Is(err, entity.ErrNotFound):
			metrics.RecordJournalOperation(op, metrics.ResultNotFound)
		case errors.Is(err, entity.ErrInvalidInput):
			metrics.RecordJournalOperation(op, metrics.ResultInvalid)
			span.RecordError(err)
		default:
			metrics.RecordJournalOperation(op, metrics.ResultError)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
}

func (s *Service) reportFallbacks(ctx context.Context, op string, fields []string) {
	for _, f := range fields {
		metrics.RecordDateFallback(f)
		s.log(ctx).Warn("malformed date replaced with current time",
			slog.String("operation", op),
			slog.String("field", f))
	}
}

// Create stores a new journal with its article and returns it with both
// generated ids.
func (s *Service) Create(ctx context.Context, req journalapi.JournalRequest) (resp journalapi.JournalResponse, err error) {
	ctx, done := s.start(ctx, "create")
	defer func() { done(err) }()

	j, fallbacks, err := s.Mapper.ToEntity(req)
	if err != nil {
		return journalapi.JournalResponse{}, err
	}
	s.reportFallbacks(ctx, "create", fallbacks)

	if err = s.Repo.Create(ctx, j); err != nil {
		return journalapi.JournalResponse{}, fmt.Errorf("create journal: %w", err)
	}
	j.Link()

	s.log(ctx).Info("journal created",
		slog.Int64("journal_id", j.ID),
		slog.Int64("article_id", j.Article.ID))
	return s.Mapper.ToResponse(j), nil
}

// List returns every stored journal. An empty store yields an empty,
// non-nil slice. Order is whatever the repository returns.
func (s *Service) List(ctx context.Context) (out []journalapi.JournalResponse, err error) {
	ctx, done := s.start(ctx, "list")
	defer func() { done(err) }()

	journals, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	out = make([]journalapi.JournalResponse, 0, len(journals))
	for _, j := range journals {
		out = append(out, s.Mapper.ToResponse(j))
	}
	return out, nil
}

// find loads a journal or returns ErrJournalNotFound.
func (s *Service) find(ctx context.Context, id int64) (*entity.Journal, error) {
	if id <= 0 {
		return nil, ErrJournalNotFound
	}
	j, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get journal: %w", err)
	}
	if j == nil {
		return nil, ErrJournalNotFound
	}
	j.Link()
	return j, nil
}

// GetByID returns the journal with the given id.
// Returns ErrJournalNotFound if it does not exist.
func (s *Service) GetByID(ctx context.Context, id int64) (resp journalapi.JournalResponse, err error) {
	ctx, done := s.start(ctx, "get", attribute.Int64("journal.id", id))
	defer func() { done(err) }()

	j, err := s.find(ctx, id)
	if err != nil {
		return journalapi.JournalResponse{}, err
	}
	return s.Mapper.ToResponse(j), nil
}

// UpdateByID overwrites every scalar of the journal and its article.
// The journal id and the article id are preserved.
// Returns ErrJournalNotFound if it does not exist.
func (s *Service) UpdateByID(ctx context.Context, id int64, req journalapi.JournalRequest) (resp journalapi.JournalResponse, err error) {
	ctx, done := s.start(ctx, "update", attribute.Int64("journal.id", id))
	defer func() { done(err) }()

	j, err := s.find(ctx, id)
	if err != nil {
		return journalapi.JournalResponse{}, err
	}

	fallbacks, err := s.Mapper.Apply(j, req)
	if err != nil {
		return journalapi.JournalResponse{}, err
	}
	s.reportFallbacks(ctx, "update", fallbacks)

	if err = s.Repo.Update(ctx, j); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			// deleted concurrently
			return journalapi.JournalResponse{}, ErrJournalNotFound
		}
		return journalapi.JournalResponse{}, fmt.Errorf("update journal: %w", err)
	}

	s.log(ctx).Info("journal updated", slog.Int64("journal_id", j.ID))
	return s.Mapper.ToResponse(j), nil
}

// DeleteByID removes the journal and its article and returns what was removed.
// Returns ErrJournalNotFound if it does not exist.
func (s *Service) DeleteByID(ctx context.Context, id int64) (resp journalapi.JournalResponse, err error) {
	ctx, done := s.start(ctx, "delete", attribute.Int64("journal.id", id))
	defer func() { done(err) }()

	j, err := s.find(ctx, id)
	if err != nil {
		return journalapi.JournalResponse{}, err
	}

	if err = s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return journalapi.JournalResponse{}, ErrJournalNotFound
		}
		return journalapi.JournalResponse{}, fmt.Errorf("delete journal: %w", err)
	}

	s.log(ctx).Info("journal deleted",
		slog.Int64("journal_id", j.ID),
		slog.Int64("article_id", j.Article.ID))
	return s.Mapper.ToResponse(j), nil
}

// Count returns the number of stored journals.
func (s *Service) Count(ctx context.Context) (n int64, err error) {
	ctx, done := s.start(ctx, "count")
	defer func() { done(err) }()

	n, err = s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count journals: %w", err)
	}
	return n, nil
}
