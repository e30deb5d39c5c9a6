package circuitbreaker

import (
	"context"

	"journal-api/internal/domain/entity"
	"journal-api/internal/repository"
	"journal-api/internal/resilience/retry"
)

// JournalRepository guards a repository.JournalRepository with a circuit
// breaker. Reads are retried on transient failures; writes run once.
type JournalRepository struct {
	next  repository.JournalRepository
	cb    *CircuitBreaker
	retry retry.Config
}

// NewJournalRepository wraps next with a breaker built from cfg and the
// default read retry policy.
func NewJournalRepository(next repository.JournalRepository, cfg Config) *JournalRepository {
	return &JournalRepository{
		next:  next,
		cb:    New(cfg),
		retry: retry.DefaultConfig(),
	}
}

// WithRetry replaces the read retry policy.
func (r *JournalRepository) WithRetry(cfg retry.Config) *JournalRepository {
	r.retry = cfg
	return r
}

// Breaker exposes the breaker for health reporting.
func (r *JournalRepository) Breaker() *CircuitBreaker {
	return r.cb
}

// call runs fn through the breaker and narrows the result type.
func call[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// read retries the whole guarded call, so each attempt is seen by the breaker.
func read[T any](ctx context.Context, r *JournalRepository, fn func() (T, error)) (T, error) {
	var out T
	err := retry.WithBackoff(ctx, r.retry, func() error {
		v, err := call(r.cb, fn)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func (r *JournalRepository) Get(ctx context.Context, id int64) (*entity.Journal, error) {
	return read(ctx, r, func() (*entity.Journal, error) { return r.next.Get(ctx, id) })
}

func (r *JournalRepository) List(ctx context.Context) ([]*entity.Journal, error) {
	return read(ctx, r, func() ([]*entity.Journal, error) { return r.next.List(ctx) })
}

func (r *JournalRepository) Count(ctx context.Context) (int64, error) {
	return read(ctx, r, func() (int64, error) { return r.next.Count(ctx) })
}

func (r *JournalRepository) Create(ctx context.Context, j *entity.Journal) error {
	_, err := r.cb.Execute(func() (any, error) { return nil, r.next.Create(ctx, j) })
	return err
}

func (r *JournalRepository) Update(ctx context.Context, j *entity.Journal) error {
	_, err := r.cb.Execute(func() (any, error) { return nil, r.next.Update(ctx, j) })
	return err
}

func (r *JournalRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.cb.Execute(func() (any, error) { return nil, r.next.Delete(ctx, id) })
	return err
}

var _ repository.JournalRepository = (*JournalRepository)(nil)
